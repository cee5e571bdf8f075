// ABOUTME: CLI command for pulling raw telemetry from the remote account.
// ABOUTME: Writes per-day JSON artifacts plus a run manifest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akeil/wellkit/internal/config"
	"github.com/akeil/wellkit/internal/export"
)

var (
	exportDays int
	exportRoot string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Pull raw telemetry into the local export",
	Long: `Pull raw wellness JSON from the remote account into the export root.

One file per metric per day is written, plus the account-level payloads
(profile, last-used device, body composition, activities list). Files that
already exist are skipped, so interrupted runs can simply be re-run.

AUTHENTICATION:

  WELLKIT_TOKEN         Bearer token for the account API (required)
  WELLKIT_DISPLAY_NAME  Account display name used in API paths

A failing payload is logged and recorded in the run manifest; the run
continues with the remaining artifacts.

EXAMPLES:

  wellkit export                 # Pull the last 3 days
  wellkit export --days 30       # Pull the last month
  wellkit export --root ./export # Use an explicit export root`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := os.Getenv("WELLKIT_TOKEN")
		if token == "" {
			return fmt.Errorf("WELLKIT_TOKEN is not set")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		root := exportRoot
		if root == "" {
			root = cfg.GetExportRoot()
		}

		client := export.NewConnectClient(token, os.Getenv("WELLKIT_DISPLAY_NAME"))
		exporter := export.NewFileExporter(client, root, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		m, err := exporter.Run(ctx, exportDays)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		color.Green("✓ Exported %d files to %s", len(m.Written), root)
		if len(m.Skipped) > 0 {
			fmt.Printf("  %d already present, skipped\n", len(m.Skipped))
		}
		if len(m.Failed) > 0 {
			color.Yellow("⚠ %d artifacts failed, see export_manifest.json", len(m.Failed))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportDays, "days", 3, "number of days to pull (today inclusive)")
	exportCmd.Flags().StringVar(&exportRoot, "root", "", "export root directory (default: config)")
	rootCmd.AddCommand(exportCmd)
}
