// Package main provides the CLI entrypoint for data-caster.
//
// data-caster converts JSON or YAML documents into typed records described
// by a YAML mapping file and reports every problem found along the way:
//   - convert: map an input document and print the result
//   - check:   validate a mapping file
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"data-caster/cmd/data-caster/commands"
)

// Version information (set via ldflags during build).
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, Version, Commit); err != nil {
		if errors.Is(err, commands.ErrIssues) {
			os.Exit(1)
		}

		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
