package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"data-caster/internal/common"
	"data-caster/internal/convert"
	"data-caster/internal/diagnostic"
	"data-caster/internal/mapping"
	"data-caster/internal/source"
)

func newConvertCommand(g *globalFlags) *cobra.Command {
	var (
		mappingPath string
		typeName    string
		format      string
		output      string
		maxDepth    int
		noSuggest   bool
		partial     bool
	)

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert an input document into a declared type",
		Long: `Convert reads a JSON or YAML document (a file, or stdin when omitted or "-")
and maps it onto a type declared in the mapping file.

Issues are printed to stderr. The converted value is printed to stdout
unless an error was reported.`,
		Example: `  # Convert a JSON file using the first type of the mapping file
  data-caster convert --mapping cars.yaml car.json

  # Pick the type and print YAML
  data-caster convert -m cars.yaml -t Car -o yaml car.yaml

  # Read from stdin
  cat car.json | data-caster convert -m cars.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			reg := mapping.NewRegistry()

			mf, err := mapping.LoadInto(mappingPath, reg)
			if err != nil {
				return err
			}

			if typeName == "" {
				first, ok := common.First(mf.Types)
				if !ok {
					return fmt.Errorf("%s declares no types", mappingPath)
				}

				typeName = first.Name
			}

			target, ok := reg.Target(typeName)
			if !ok {
				return fmt.Errorf("unknown type %q (declared: %v)", typeName,
					common.Map(mf.Types, func(t mapping.TypeMapping) string { return t.Name }))
			}

			inFormat, err := source.ParseFormat(format)
			if err != nil {
				return err
			}

			var data any
			if len(args) == 0 || args[0] == "-" {
				data, err = source.Read(cmd.InOrStdin(), inFormat)
			} else {
				data, err = source.ReadFile(args[0], inFormat)
			}

			if err != nil {
				return err
			}

			log.Debug().Str("mapping", mappingPath).Str("type", typeName).Msg("converting")

			var diags *diagnostic.Collector

			instance, err := convert.Convert(target, data,
				convert.WithLogger(log),
				convert.WithMaxDepth(maxDepth),
				convert.WithSuggestions(!noSuggest),
				convert.WithOnComplete(func(_ any, d *diagnostic.Collector) { diags = d }),
			)
			if err != nil {
				return err
			}

			printIssues(cmd.ErrOrStderr(), diags.Issues())

			if diags.HasErrors() && !partial {
				return ErrIssues
			}

			if err := writeValue(cmd.OutOrStdout(), instance, output); err != nil {
				return err
			}

			if diags.HasErrors() {
				return ErrIssues
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "mapping file path")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type to convert into (default: first declared type)")
	cmd.Flags().StringVarP(&format, "format", "f", "auto", "input format (auto, json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", convert.DefaultMaxDepth, "maximum nesting depth")
	cmd.Flags().BoolVar(&noSuggest, "no-suggest", false, "disable suggestions for missing fields")
	cmd.Flags().BoolVar(&partial, "partial", false, "print the converted value even when errors were reported")
	_ = cmd.MarkFlagRequired("mapping")

	return cmd
}
