package diagnostic

import (
	"strconv"
	"strings"
)

// Segment is one element of a diagnostic path: either a key or an index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a named path segment.
func Key(name string) Segment {
	return Segment{key: name}
}

// Index returns a numeric path segment.
func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether the segment is numeric.
func (s Segment) IsIndex() bool {
	return s.isIndex
}

// String renders the segment on its own ("name" or "[3]").
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}

	return s.key
}

// FormatPath joins segments the way issue paths are displayed.
// Keys are separated by dots except the first; indices are appended as "[n]".
//
// Example: ["items", 2, "name"] -> "items[2].name".
func FormatPath(segments []Segment) string {
	var b strings.Builder

	for i, seg := range segments {
		if seg.isIndex {
			b.WriteString(seg.String())
			continue
		}

		if i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(seg.key)
	}

	return b.String()
}
