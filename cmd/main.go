// Main entry point for the SpaceScope service
package main

import (
	"fmt"
	"os"

	"spacescope/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configPath string
	debug      bool

	logger *zap.Logger
	cfg    *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "spacescope",
	Short: "SpaceScope aggregates NASA and Open-Meteo feeds behind a Gemini navigator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		logger.Debug("configuration loaded", zap.String("listen_addr", cfg.ListenAddr), zap.Bool("archive", cfg.ArchiveEnabled()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(feedsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
