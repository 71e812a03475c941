// Package cli wires the berrypedia commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"berrypedia/internal/config"
	"berrypedia/internal/logger"
)

// app carries what every command needs after flags are parsed.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	cfgFile  string
	cfgPath  string
	logLevel string
}

// NewRootCommand builds the command tree. Running it without a subcommand generates the site.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "berrypedia",
		Short: "Generate the strawberry knowledge base as a single HTML page.",
		Long: `berrypedia reads strawberry variety, pest/disease and nutrient deficiency records from JSON files
and writes one self-contained HTML page that can be searched and filtered offline.

Without a subcommand it runs "generate" with the configured inputs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.LocalConfigPath+" or $HOME/"+config.HomeConfigName+")")
	rootCmd.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "", "Set log level. Available: debug, info, warn, error")

	gen := newGenerateCmd(a)
	rootCmd.Flags().AddFlagSet(gen.Flags())
	rootCmd.RunE = gen.RunE

	rootCmd.AddCommand(
		gen,
		newQueryCmd(a),
		newSummaryCmd(a),
		newVerifyCmd(a),
		newInitConfigCmd(a),
		newFormatCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, path, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	if err := cfg.ExpandPaths(); err != nil {
		return err
	}

	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}

	a.cfg = cfg
	a.cfgPath = path
	a.log = logger.New(cmd.ErrOrStderr(), level)

	if path != "" {
		a.log.Debug("using config file", "path", path)
	} else {
		a.log.Debug("no config file found, using defaults")
	}

	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
