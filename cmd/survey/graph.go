package main

import (
	"fmt"

	"github.com/aretw0/survey/internal/cli"
	"github.com/aretw0/survey/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the question graph",
	Long:  `Outputs a Mermaid diagram (graph TD) of the catalog: one node per question, one edge per route.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(cat.Questions(), cat.EntryID(), nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
