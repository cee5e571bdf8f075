// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Builds the dataset once, then serves it over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akeil/wellkit/internal/config"
	"github.com/akeil/wellkit/internal/mcp"
	"github.com/akeil/wellkit/internal/rawstore"
	"github.com/akeil/wellkit/internal/series"
)

var mcpRoot string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server reconstructs the dataset from the raw export once at startup and
then serves it via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "wellkit": {
        "command": "wellkit",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_days          List the calendar days in the dataset
  get_daily_summary  Get the summary scalars for one day
  get_minute_series  Get minute-aligned sensor values for one day

AVAILABLE RESOURCES:

  wellness://summary    Daily summary table for all days
  wellness://latest     Most recent day's summary
  wellness://coverage   Per-day sensor coverage counts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		root := mcpRoot
		if root == "" {
			root = cfg.GetExportRoot()
		}

		store := rawstore.NewFileStore(root)
		ds, err := series.Build(store, cfg.SeriesOptions(), nil)
		if err != nil {
			return fmt.Errorf("reconstruction failed: %w", err)
		}

		server, err := mcp.NewServer(&ds)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpRoot, "root", "", "export root directory (default: config)")
	rootCmd.AddCommand(mcpCmd)
}
