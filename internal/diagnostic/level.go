package diagnostic

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Level -linecomment -output=level_string.go

// Level is the severity of an issue. Levels are ordered; a higher value is
// more severe.
type Level int

const (
	LevelInfo  Level = iota // info
	LevelWarn               // warn
	LevelError              // error
)

// ParseLevel parses a level name as used in mapping files and CLI flags.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "":
		return LevelError, nil
	default:
		return LevelError, fmt.Errorf("unknown diagnostic level %q", s)
	}
}
