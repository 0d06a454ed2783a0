package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"data-caster/internal/diagnostic"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
	infoLabel  = color.New(color.FgCyan).SprintFunc()
	pathStyle  = color.New(color.Faint).SprintFunc()
	hintStyle  = color.New(color.FgGreen).SprintFunc()
)

// printIssues writes one line per issue, followed by a summary line.
func printIssues(w io.Writer, issues []diagnostic.Issue) {
	counts := map[diagnostic.Level]int{}

	for _, i := range issues {
		counts[i.Level]++

		var b strings.Builder

		b.WriteString(levelLabel(i.Level))

		if i.Path != "" {
			b.WriteString(" " + pathStyle(i.Path))
		}

		b.WriteString(" " + i.Message)

		if len(i.Suggestions) > 0 {
			b.WriteString(" " + hintStyle("(did you mean: "+strings.Join(i.Suggestions, ", ")+"?)"))
		}

		fmt.Fprintln(w, b.String())
	}

	if len(issues) > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s), %d info\n",
			counts[diagnostic.LevelError], counts[diagnostic.LevelWarn], counts[diagnostic.LevelInfo])
	}
}

func levelLabel(l diagnostic.Level) string {
	switch l {
	case diagnostic.LevelError:
		return errorLabel(l.String())
	case diagnostic.LevelWarn:
		return warnLabel(l.String())
	default:
		return infoLabel(l.String())
	}
}

// writeValue encodes v as JSON or YAML.
func writeValue(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		_, err = w.Write(out)

		return err
	}

	return fmt.Errorf("invalid --output %q", format)
}
