package main

import (
	"fmt"

	"github.com/aretw0/survey/internal/cli"
	"github.com/aretw0/survey/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for consistency",
	Long:  `Walks the catalog from its entry question and reports dangling routes, unrouted options and unreachable questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}
		if err := validator.Validate(cat); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog is valid! %d questions ✅\n", cat.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
