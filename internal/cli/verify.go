package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"berrypedia/internal/validator"
)

// ErrInvalidDocument is returned when verify finds errors.
var ErrInvalidDocument = errors.New("document failed validation")

func newVerifyCmd(a *app) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "verify <document.html>",
		Short: "Check a generated page: integrity hash, data slot and items.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}

			a.log.Debug("verifying document", "path", path, "bytes", len(content))

			v := validator.NewDocumentValidator()
			v.RequireMetadata = !lenient

			result := v.ValidateDocument(string(content))
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "📂 %s (%s)\n", path, humanize.Bytes(uint64(len(content))))

			if meta := result.Metadata; meta != nil && !meta.LastModify.IsZero() {
				fmt.Fprintf(out, "🕒 generated %s, application %s\n", humanize.Time(meta.LastModify), meta.Version)
			}

			fmt.Fprintln(out, result.String())
			result.PrintErrors(out)
			result.PrintWarnings(out)

			if !result.IsValid {
				return fmt.Errorf("%w: %s (%d errors)", ErrInvalidDocument, path, len(result.Errors))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept documents without a metadata block")

	return cmd
}
