package diagnostic

// Reporter is a diagnostics sink. Validators and capability hooks report
// through it without knowing the current path.
type Reporter interface {
	Add(level Level, message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}
