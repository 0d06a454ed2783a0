package diagnostic

import (
	"strings"
)

// Issue is a single path-scoped message produced during a conversion.
type Issue struct {
	// Path is the joined path stack at the time the issue was reported.
	Path string
	// Level is the severity of the issue.
	Level Level
	// Message is the human-readable description.
	Message string
	// Suggestions are likely alternatives (e.g. input keys close to a missing field).
	Suggestions []string
}

// String returns a formatted issue string.
func (i Issue) String() string {
	msg := i.Message
	if len(i.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(i.Suggestions, ", ") + "?)"
	}

	if i.Path != "" {
		return i.Path + ": " + msg
	}

	return msg
}
