package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"berrypedia/internal/formatter"
	"berrypedia/internal/generator"
)

// ErrUnformatted is returned in dry-run mode when some files would change.
var ErrUnformatted = errors.New("files need formatting")

func newFormatCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format [path...]",
		Short: "Realign the tables of markdown files, such as edited summaries.",
		Long: `Walks the given files or directories (default ".") and realigns every pipe table in *.md files by
display width. Without --write it only reports which files would change and fails if any would.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			out := cmd.OutOrStdout()

			if write {
				fmt.Fprintln(out, "✍️  Write mode ENABLED (files will be modified)")
			} else {
				fmt.Fprintln(out, "👀 Dry-run mode (no changes will be written)")
			}

			var scanned, changed, failed int

			for _, root := range args {
				err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
					if err != nil {
						a.log.Warn("❌ cannot access path", "path", path, "error", err)
						failed++

						return nil
					}

					if d.IsDir() {
						if strings.HasPrefix(d.Name(), ".") && path != root {
							return filepath.SkipDir
						}

						return nil
					}

					if strings.ToLower(filepath.Ext(path)) != ".md" {
						return nil
					}

					scanned++

					wasChanged, procErr := formatFile(path, write)

					switch {
					case procErr != nil:
						fmt.Fprintf(out, "❌ Failed to process %s: %v\n", path, procErr)
						failed++
					case wasChanged && write:
						fmt.Fprintf(out, "✅ Formatted: %s\n", path)
						changed++
					case wasChanged:
						fmt.Fprintf(out, "📝 Would format: %s\n", path)
						changed++
					}

					return nil
				})
				if err != nil {
					return fmt.Errorf("error walking %s: %w", root, err)
				}
			}

			fmt.Fprintf(out, "📈 Scanned: %d, Changed: %d, Errors: %d\n", scanned, changed, failed)

			if failed > 0 {
				return fmt.Errorf("%d file(s) could not be processed", failed)
			}

			if changed > 0 && !write {
				return fmt.Errorf("%w: %d (run with --write to apply)", ErrUnformatted, changed)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write changes to the files")

	return cmd
}

func formatFile(path string, write bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	formatted := formatter.FormatMarkdown(string(content))
	if formatted == string(content) {
		return false, nil
	}

	if write {
		if err := generator.WriteFile(path, []byte(formatted)); err != nil {
			return true, err
		}
	}

	return true, nil
}
