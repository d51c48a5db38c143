package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/survey/internal/cli"
	"github.com/aretw0/survey/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes a survey session to AI agents as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		cat, err := cli.LoadCatalog(sc, cfg.Catalog)
		if err != nil {
			return err
		}
		storage, err := cli.OpenStorage(cfg.Store, logger)
		if err != nil {
			return err
		}
		defer storage.Close()

		srv, err := mcp.NewServer(sc, cat, logger, cli.EngineOptions(storage.Gateway(logger), logger, nil)...)
		if err != nil {
			return fmt.Errorf("error initializing mcp server: %w", err)
		}

		switch transport {
		case "stdio":
			// Logs go to stderr so they never corrupt JSON-RPC on stdout.
			logger.Info("starting survey MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("starting survey MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(sc, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("store", "", "Submission store: memory, file, redis or textdb")
}
