package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"travelrec/internal/app"
	"travelrec/internal/config"
	"travelrec/internal/observability"
)

// options holds the global flags. Empty values keep the environment
// configuration.
type options struct {
	dataDir    string
	source     string
	vocabulary string
	logLevel   string
	noColor    bool
}

// NewRootCmd builds the recommend command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Travel Recommendation Assistant - restaurants, hotels and vehicle rentals",
		Long: `Answers free-text travel queries such as "cheap Italian restaurants in Bandra"
or "luxury car for 4 passengers" with a ranked list from the Mumbai catalog.

Use "query" for a single JSON result (stdout carries nothing else) and "chat"
for the interactive assistant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory with restaurants.csv, hotels.csv and vehicles.csv (CATALOG_DIR)")
	flags.StringVar(&opts.source, "source", "", "catalog source: csv, postgres or sqlite3 (CATALOG_SOURCE)")
	flags.StringVar(&opts.vocabulary, "vocabulary", "", "YAML file extending the built-in vocabulary (VOCABULARY_FILE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level for stderr diagnostics (LOG_LEVEL)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newQueryCmd(opts), newChatCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the environment configuration and applies flag overrides
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if o.dataDir != "" {
		cfg.Catalog.Dir = o.dataDir
	}
	if o.source != "" {
		cfg.Catalog.Source = o.source
	}
	if o.vocabulary != "" {
		cfg.Engine.VocabularyFile = o.vocabulary
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	// flags can reintroduce invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine builds the in-process engine with logs on the command's stderr
func newEngine(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*app.Engine, zerolog.Logger, error) {
	logger := observability.NewLoggerTo(cmd.ErrOrStderr(), cfg.Logging, "travelrec-cli")
	engine, err := app.NewInProcessEngine(ctx, cfg, logger)
	return engine, logger, err
}
