package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"berrypedia/internal/config"
	"berrypedia/internal/logger"
)

// ErrConfigExists is returned when init-config would overwrite a file without --force.
var ErrConfigExists = errors.New("config file already exists")

func newInitConfigCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration to a file.",
		Args:  cobra.MaximumNArgs(1),
		// Skips config loading so a broken config file cannot block writing a fresh one.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = logger.New(cmd.ErrOrStderr(), a.logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.LocalConfigPath
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
			}

			if err := config.Default().SaveConfig(path); err != nil {
				return err
			}

			a.log.Debug("wrote default config", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved to: %s\n", path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
