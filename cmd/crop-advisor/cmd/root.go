// Package cmd implements the CLI commands for crop-advisor.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/crop-advisor/internal/config"
	"github.com/donaldgifford/crop-advisor/pkg/logger"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "crop-advisor",
	Short: "Recommend crops for a farm using a generative text model",
	Long: "An API-first service that turns a farm description into categorized crop " +
		"recommendations. Results are cached by request fingerprint, and a static " +
		"recommendation set is served when the model cannot be reached.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the dotenv file, then the YAML config, and builds the
// process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotenv(envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}
