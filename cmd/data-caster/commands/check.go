package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"data-caster/internal/common"
	"data-caster/internal/mapping"
)

func newCheckCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <mapping>...",
		Short: "Validate mapping files",
		Long: `Check parses each mapping file and reports unknown types, transforms and
validators, malformed aliases and conflicting settings without converting
anything. Files are checked independently.`,
		Example: `  data-caster check cars.yaml
  data-caster check --log-level debug mappings/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			failed := false

			for _, path := range args {
				mf, err := mapping.LoadFile(path)
				if err != nil {
					return err
				}

				c := mapping.Validate(mf, mapping.NewRegistry())
				issues := c.Issues()

				log.Debug().Str("mapping", path).Int("types", len(mf.Types)).Int("issues", len(issues)).Msg("checked")

				if len(issues) == 0 {
					names := common.Map(mf.Types, func(t mapping.TypeMapping) string { return t.Name })
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", path, strings.Join(names, ", "))

					continue
				}

				fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", path)
				printIssues(cmd.ErrOrStderr(), issues)

				failed = failed || c.HasErrors()
			}

			if failed {
				return ErrIssues
			}

			return nil
		},
	}

	return cmd
}
