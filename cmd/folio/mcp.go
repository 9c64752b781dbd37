package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/internal/logging"
	mcpAdapter "github.com/foliolabs/folio/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the folio assistant as an MCP Server.
This allows AI agents (like Claude Desktop) to chat with the assistant and read the portfolio as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		store, closeStore := newStore(cfg)
		defer closeStore()
		assistant := newAssistant(cfg, store)

		// Keep Stdout clean for JSON-RPC.
		logger := logging.New(slog.LevelDebug)
		slog.SetDefault(logger)

		srv := mcpAdapter.NewServer(assistant.Processor(), assistant.Store(), assistant.PortfolioSource(), folio.Version)

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			slog.Info("Starting Folio MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Folio MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport to use (stdio or sse)")
	mcpCmd.Flags().IntP("port", "p", 8081, "Port for the SSE transport")
}
