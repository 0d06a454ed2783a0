package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PathSegment represents a parsed segment of an alias path.
type PathSegment struct {
	// Name is the segment as written.
	Name string

	// Index is the numeric value of the segment when IsIndex is set.
	Index int

	// IsIndex indicates a numeric segment. It indexes sequences and matches
	// the literal key in objects.
	IsIndex bool
}

// FieldPath represents a parsed alias path like "items[0].name".
type FieldPath struct {
	Segments []PathSegment
}

// String returns the path in dotted form.
func (p FieldPath) String() string {
	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		parts = append(parts, seg.Name)
	}

	return strings.Join(parts, ".")
}

// IsSimple returns true if this is a single-segment path.
func (p FieldPath) IsSimple() bool {
	return len(p.Segments) == 1
}

// ParsePath parses an alias into a FieldPath.
// Supports: "name", "a.b", "items.0", "items[0].name", "0".
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, errors.New("empty path")
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return FieldPath{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		name, rest, bracket := strings.Cut(part, "[")
		if name != "" {
			segments = append(segments, newSegment(name))
		}

		if !bracket {
			continue
		}

		if rest == "" {
			return FieldPath{}, fmt.Errorf("invalid path %q: unterminated index", path)
		}

		// rest is everything after the first '[': "0]", "0][1]"
		for rest != "" {
			idx, after, ok := strings.Cut(rest, "]")
			if !ok {
				return FieldPath{}, fmt.Errorf("invalid path %q: unterminated index", path)
			}

			seg := newSegment(idx)
			if !seg.IsIndex {
				return FieldPath{}, fmt.Errorf("invalid path %q: index %q is not a number", path, idx)
			}

			segments = append(segments, seg)

			if after == "" {
				break
			}

			if !strings.HasPrefix(after, "[") {
				return FieldPath{}, fmt.Errorf("invalid path %q: unexpected %q after index", path, after)
			}

			rest = after[1:]
		}
	}

	return FieldPath{Segments: segments}, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(path string) FieldPath {
	fp, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return fp
}

func newSegment(name string) PathSegment {
	if isDigits(name) {
		if n, err := strconv.Atoi(name); err == nil {
			return PathSegment{Name: name, Index: n, IsIndex: true}
		}
	}

	return PathSegment{Name: name}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
