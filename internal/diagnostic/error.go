package diagnostic

import (
	"fmt"
	"strings"
)

// AggregateError is returned when a conversion finishes with error-level
// issues and the caller did not take ownership of the diagnostics.
type AggregateError struct {
	// Count is the number of error-level issues.
	Count int
	// Issues are the error-level issues in report order.
	Issues []Issue
	// Diagnostics is the full collector, including infos and warnings.
	Diagnostics *Collector
}

// Error returns the summary message listing every error.
func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}

	return fmt.Sprintf("conversion failed with %d error(s): %s", e.Count, strings.Join(parts, "; "))
}
