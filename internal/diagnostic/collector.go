package diagnostic

// Collector accumulates issues for a single conversion and owns its path stack.
// Every issue is stamped with the path at the moment it is added.
//
// A Collector is not safe for concurrent use.
type Collector struct {
	path   []Segment
	issues []Issue
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Push appends a segment to the path stack.
func (c *Collector) Push(seg Segment) {
	c.path = append(c.path, seg)
}

// Pop removes the last segment from the path stack. Popping an empty stack is a no-op.
func (c *Collector) Pop() {
	if len(c.path) == 0 {
		return
	}

	c.path = c.path[:len(c.path)-1]
}

// Path returns the current joined path.
func (c *Collector) Path() string {
	return FormatPath(c.path)
}

// Depth returns the number of segments on the path stack.
func (c *Collector) Depth() int {
	return len(c.path)
}

// Add records an issue at the current path.
func (c *Collector) Add(level Level, message string) {
	c.AddSuggested(level, message, nil)
}

// AddSuggested records an issue with suggested alternatives.
func (c *Collector) AddSuggested(level Level, message string, suggestions []string) {
	c.issues = append(c.issues, Issue{
		Path:        c.Path(),
		Level:       level,
		Message:     message,
		Suggestions: suggestions,
	})
}

// Info adds an info issue.
func (c *Collector) Info(message string) { c.Add(LevelInfo, message) }

// Warn adds a warning issue.
func (c *Collector) Warn(message string) { c.Add(LevelWarn, message) }

// Error adds an error issue.
func (c *Collector) Error(message string) { c.Add(LevelError, message) }

// Issues returns all recorded issues in report order.
func (c *Collector) Issues() []Issue {
	out := make([]Issue, len(c.issues))
	copy(out, c.issues)

	return out
}

// Errors returns the error-level issues.
func (c *Collector) Errors() []Issue {
	return c.filter(LevelError)
}

// Warnings returns the warning-level issues.
func (c *Collector) Warnings() []Issue {
	return c.filter(LevelWarn)
}

// Count returns the number of issues with exactly the given level.
func (c *Collector) Count(level Level) int {
	return len(c.filter(level))
}

// HasErrors returns true if any error-level issue was recorded.
func (c *Collector) HasErrors() bool {
	for _, i := range c.issues {
		if i.Level >= LevelError {
			return true
		}
	}

	return false
}

// MaxLevel returns the highest level recorded and false when there are no issues.
func (c *Collector) MaxLevel() (Level, bool) {
	if len(c.issues) == 0 {
		return LevelInfo, false
	}

	maxLevel := c.issues[0].Level
	for _, i := range c.issues[1:] {
		maxLevel = max(maxLevel, i.Level)
	}

	return maxLevel, true
}

// Err returns an *AggregateError describing every error-level issue, or nil.
func (c *Collector) Err() error {
	errs := c.Errors()
	if len(errs) == 0 {
		return nil
	}

	return &AggregateError{
		Count:       len(errs),
		Issues:      errs,
		Diagnostics: c,
	}
}

func (c *Collector) filter(level Level) []Issue {
	var out []Issue

	for _, i := range c.issues {
		if i.Level == level {
			out = append(out, i)
		}
	}

	return out
}
