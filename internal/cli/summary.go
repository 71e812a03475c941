package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"berrypedia/internal/formatter"
	"berrypedia/internal/generator"
)

func newSummaryCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a markdown overview of the normalized catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := generator.New(a.cfg, a.log).Items()
			if err != nil {
				return err
			}

			summary := formatter.CatalogSummary(a.cfg.Site.Title, items)

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), summary)
				return nil
			}

			if err := generator.WriteFile(output, []byte(summary)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved to: %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the summary to a file instead of stdout")

	return cmd
}
