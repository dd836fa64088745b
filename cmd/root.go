package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/config"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/logging"
)

var (
	// Global flags
	cfgFile       string
	debug         bool
	flagLogFormat string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "Clean and explore Google Play review sentiment",
	Long: `reviewlens cleans the Google Play user reviews dataset and explores the
pre-labelled sentiment per app: summary metrics, word frequencies, a positive
word cloud, sample reviews and cross-app rankings, as a report, a terminal UI
or an HTTP dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(settings().LogFormat, debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.reviewlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so read-only commands still work
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("log-format") && flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
}

// settings returns the loaded configuration, or defaults before loading.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}
