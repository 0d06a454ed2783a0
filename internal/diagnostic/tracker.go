package diagnostic

// Tracker wraps a Reporter and remembers the highest level reported through
// it. Delivery to the wrapped reporter is unchanged, so trackers nest: an
// inner tracker forwards into an outer one, which records the level too.
type Tracker struct {
	inner Reporter
	max   Level
	seen  bool
}

// Track wraps r in a new Tracker.
func Track(r Reporter) *Tracker {
	return &Tracker{inner: r}
}

// Add forwards the issue and records its level.
func (t *Tracker) Add(level Level, message string) {
	if !t.seen || level > t.max {
		t.max = level
		t.seen = true
	}

	t.inner.Add(level, message)
}

// Info adds an info issue.
func (t *Tracker) Info(message string) { t.Add(LevelInfo, message) }

// Warn adds a warning issue.
func (t *Tracker) Warn(message string) { t.Add(LevelWarn, message) }

// Error adds an error issue.
func (t *Tracker) Error(message string) { t.Add(LevelError, message) }

// Max returns the highest level seen and false if nothing was reported.
func (t *Tracker) Max() (Level, bool) {
	return t.max, t.seen
}

// Failed reports whether an error-level issue passed through the tracker.
func (t *Tracker) Failed() bool {
	return t.seen && t.max >= LevelError
}
