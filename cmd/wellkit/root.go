// ABOUTME: Root Cobra command for wellkit CLI.
// ABOUTME: Ties the export, reconstruction, summary, and MCP commands together.
package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wellkit",
	Short: "Wearable telemetry export and reconstruction",
	Long: `Wellkit pulls raw wearable telemetry into a per-day JSON export and
reconstructs it into a minute-aligned multivariate time series.

WHAT IT PRODUCES:

  minutes         One row per minute per day: steps/min, heart rate,
                  stress, sleep movement, body battery, activity level,
                  plus presence flags telling real samples from fill.
  daily_summary   One row per day with the whitelisted summary scalars
                  (steps, calories, heart rate range, sleep phases, ...).

QUICK START:

  $ export WELLKIT_TOKEN=...            # API token for your account
  $ wellkit export --days 7             # Pull the last week of raw JSON
  $ wellkit structure                   # Reconstruct the minute series
  $ wellkit summary                     # Print the daily summary table

OUTPUT FORMATS:

  $ wellkit structure --format csv      # minutes.csv + daily_summary.csv
  $ wellkit structure --format parquet  # same tables, SNAPPY parquet
  $ wellkit structure --format sqlite   # wellkit.db with both tables

MCP INTEGRATION:

  Run 'wellkit mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "wellkit": { "command": "wellkit", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Raw exports land in ~/.local/share/wellkit/export by default, outputs in
  ~/.local/share/wellkit/out. Both are configurable via
  ~/.config/wellkit/config.json.`,
}
