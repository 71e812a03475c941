package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"berrypedia/internal/generator"
	"berrypedia/internal/loader"
)

type generateOptions struct {
	output  string
	summary string
	inputs  []string
	strict  bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the knowledge base page from the catalog files.",
		Long: `Loads every input file in order (a later file replaces an earlier one's category), normalizes the
records and writes the page. Missing or unreadable files are skipped with a warning unless --strict is set.
Nothing is written when no records could be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			if flags.Changed("output") {
				a.cfg.Output.Path = opts.output
			}

			if flags.Changed("input") {
				a.cfg.Input.Files = opts.inputs
			}

			if flags.Changed("strict") {
				a.cfg.Input.Strict = opts.strict
			}

			if flags.Changed("summary") {
				a.cfg.Output.SummaryPath = opts.summary
			}

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			report, err := generator.New(a.cfg, a.log).Run()
			printLoadResults(cmd, report)

			if err != nil {
				return err
			}

			fmt.Fprintf(out, "📊 共處理 %s 筆資料\n", humanize.Comma(int64(len(report.Items))))
			fmt.Fprintf(out, "✅ 網頁已生成於: %s (%s, %v)\n", report.OutputPath, humanize.Bytes(uint64(report.Bytes)), report.Duration.Round(time.Millisecond))

			if report.SummaryPath != "" {
				fmt.Fprintf(out, "📝 摘要已寫入: %s\n", report.SummaryPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output HTML file (overrides output.path)")
	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", nil, "input JSON file, repeatable, in merge order (overrides input.files)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any input file is missing or invalid")
	cmd.Flags().StringVar(&opts.summary, "summary", "", "also write a markdown summary to this path")

	return cmd
}

func printLoadResults(cmd *cobra.Command, report *generator.Report) {
	if report == nil {
		return
	}

	errOut := cmd.ErrOrStderr()

	for _, res := range report.Results {
		switch res.Status {
		case loader.StatusLoaded:
			if len(res.Warnings) > 0 {
				fmt.Fprintf(errOut, "⚠️  %s: %d value(s) ignored or coerced\n", res.Path, len(res.Warnings))
			}
		case loader.StatusMissing:
			fmt.Fprintf(errOut, "⚠️  %s: not found\n", res.Path)
		default:
			fmt.Fprintf(errOut, "⚠️  %s: %v\n", res.Path, res.Err)
		}
	}
}
