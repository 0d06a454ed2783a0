package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrIssues is returned when a command finished but reported error issues.
var ErrIssues = errors.New("errors reported")

type globalFlags struct {
	logLevel  string
	logFormat string
	noColor   bool
}

// Execute runs the root command.
func Execute(ctx context.Context, version, commit string) error {
	return newRootCommand(version, commit).ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "data-caster",
		Short: "Convert loosely structured data into validated records",
		Long: `data-caster maps JSON or YAML documents onto the record types declared in a
mapping file. Each field is looked up by its aliases, validated, transformed
and converted recursively; every problem is reported with its path.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if g.noColor || !isTerminal(cmd.ErrOrStderr()) {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newConvertCommand(g))
	rootCmd.AddCommand(newCheckCommand(g))

	return rootCmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// logger builds the logger for a command; logs go to w.
func (g *globalFlags) logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(g.logLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level: %w", err)
	}

	switch g.logFormat {
	case "console":
		w = zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid --log-format %q", g.logFormat)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
