package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/survey/internal/config"
	"github.com/aretw0/survey/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "survey",
	Short: "Survey runs branching questionnaires",
	Long: `Survey walks a respondent through a catalog of questions whose order depends on
the answers given, and appends each completed submission to a store.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file or directory (default: built-in catalog)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads --config and applies the flag overrides on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if cmd.Flags().Changed("catalog") {
		cfg.Catalog, _ = cmd.Flags().GetString("catalog")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if f := cmd.Flags().Lookup("store"); f != nil && f.Changed {
		cfg.Store.Kind = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	level, _ := cfg.Level()
	logger := logging.New(level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
