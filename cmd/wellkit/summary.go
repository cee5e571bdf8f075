// ABOUTME: CLI command for printing the daily summary table.
// ABOUTME: Supports table, JSON, and YAML output.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akeil/wellkit/internal/config"
	"github.com/akeil/wellkit/internal/rawstore"
	"github.com/akeil/wellkit/internal/series"
)

var (
	summaryFormat string
	summaryRoot   string
	summaryDays   int
)

// summaryRecord is the serialization shape for one day's summary.
type summaryRecord struct {
	CalendarDate     string   `json:"calendar_date" yaml:"calendar_date"`
	TotalSteps       *float64 `json:"total_steps,omitempty" yaml:"total_steps,omitempty"`
	TotalKilocal     *float64 `json:"total_kilocalories,omitempty" yaml:"total_kilocalories,omitempty"`
	RestingHeartRate *float64 `json:"resting_heart_rate,omitempty" yaml:"resting_heart_rate,omitempty"`
	AvgStressLevel   *float64 `json:"average_stress_level,omitempty" yaml:"average_stress_level,omitempty"`
	SleepingSeconds  *float64 `json:"sleeping_seconds,omitempty" yaml:"sleeping_seconds,omitempty"`
	SleepScore       *float64 `json:"sleep_score,omitempty" yaml:"sleep_score,omitempty"`
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the daily summary table",
	Long: `Print the daily summary scalars for every exported day.

FORMATS:

  table   Aligned columns for the terminal (default)
  json    One JSON document with all days
  yaml    YAML list, one entry per day

EXAMPLES:

  wellkit summary                   # Table of all days
  wellkit summary --days 7          # Only the last week
  wellkit summary --format yaml     # YAML output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		root := summaryRoot
		if root == "" {
			root = cfg.GetExportRoot()
		}

		opts := cfg.SeriesOptions()
		if cmd.Flags().Changed("days") {
			opts.LastNDays = summaryDays
		}

		store := rawstore.NewFileStore(root)
		ds, err := series.Build(store, opts, nil)
		if err != nil {
			return fmt.Errorf("reconstruction failed: %w", err)
		}
		if len(ds.Summaries) == 0 {
			fmt.Println("No days found.")
			return nil
		}

		records := make([]summaryRecord, 0, len(ds.Summaries))
		for _, row := range ds.Summaries {
			records = append(records, summaryRecord{
				CalendarDate:     row.CalendarDate,
				TotalSteps:       row.TotalSteps,
				TotalKilocal:     row.TotalKilocalories,
				RestingHeartRate: row.RestingHeartRate,
				AvgStressLevel:   row.AverageStressLevel,
				SleepingSeconds:  row.SleepingSeconds,
				SleepScore:       row.SleepScore,
			})
		}

		switch summaryFormat {
		case "table", "":
			printSummaryTable(records)
		case "json":
			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		case "yaml":
			data, err := yaml.Marshal(records)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
		default:
			return fmt.Errorf("unknown format: %s (use table, json, or yaml)", summaryFormat)
		}
		return nil
	},
}

func printSummaryTable(records []summaryRecord) {
	faint := color.New(color.Faint)
	fmt.Printf("%-12s %10s %8s %6s %8s %10s %6s\n",
		"DATE", "STEPS", "KCAL", "RHR", "STRESS", "SLEEP", "SCORE")
	for _, r := range records {
		fmt.Printf("%-12s %10s %8s %6s %8s %10s %6s\n",
			r.CalendarDate,
			cell(r.TotalSteps, 0),
			cell(r.TotalKilocal, 0),
			cell(r.RestingHeartRate, 0),
			cell(r.AvgStressLevel, 1),
			sleepCell(r.SleepingSeconds),
			cell(r.SleepScore, 0),
		)
	}
	faint.Printf("%d days\n", len(records))
}

func cell(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func sleepCell(seconds *float64) string {
	if seconds == nil {
		return "-"
	}
	total := int(*seconds)
	return fmt.Sprintf("%dh%02dm", total/3600, (total%3600)/60)
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "f", "table", "output format: table, json, or yaml")
	summaryCmd.Flags().StringVar(&summaryRoot, "root", "", "export root directory (default: config)")
	summaryCmd.Flags().IntVar(&summaryDays, "days", 0, "only include the last N exported days (0 = all)")
	rootCmd.AddCommand(summaryCmd)
}
