// ABOUTME: MCP tool implementations over the wellness dataset.
// ABOUTME: Daily summary lookup, minute-series slices, and day listing.
package mcp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akeil/wellkit/internal/series"
)

const defaultSeriesLimit = 120

func (s *Server) registerTools() {
	// list_days
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_days",
		Description: "List the calendar days available in the dataset",
	}, s.handleListDays)

	// get_daily_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily_summary",
		Description: "Get the daily summary scalars (steps, heart rate, sleep, body battery) for one day",
	}, s.handleGetDailySummary)

	// get_minute_series
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_minute_series",
		Description: "Get minute-aligned sensor values for one day, optionally windowed by time of day",
	}, s.handleGetMinuteSeries)
}

// Tool input/output types

type listDaysOutput struct {
	Days  []string `json:"days"`
	Count int      `json:"count"`
}

type getDailySummaryInput struct {
	Date string `json:"date" jsonschema:"description=Calendar date (YYYY-MM-DD),required"`
}

type dailySummaryOutput struct {
	CalendarDate string             `json:"calendar_date"`
	Fields       map[string]float64 `json:"fields"`
}

type getMinuteSeriesInput struct {
	Date  string `json:"date" jsonschema:"description=Calendar date (YYYY-MM-DD),required"`
	From  string `json:"from,omitempty" jsonschema:"description=Start of window as HH:MM local time"`
	To    string `json:"to,omitempty" jsonschema:"description=End of window as HH:MM local time (exclusive)"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max rows (default 120)"`
}

type minuteRowOutput struct {
	Timestamp     string   `json:"timestamp"`
	StepsPerMin   *float64 `json:"steps_per_min,omitempty"`
	HeartRate     *float64 `json:"heart_rate,omitempty"`
	StressLevel   *float64 `json:"stress_level,omitempty"`
	SleepMovement *float64 `json:"sleep_movement,omitempty"`
	BodyBattery   *float64 `json:"body_battery,omitempty"`
	ActivityLevel string   `json:"activity_level,omitempty"`
}

type minuteSeriesOutput struct {
	CalendarDate string            `json:"calendar_date"`
	Rows         []minuteRowOutput `json:"rows"`
	Truncated    bool              `json:"truncated"`
}

// Tool handlers

func (s *Server) handleListDays(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, listDaysOutput, error) {
	days := make([]string, 0, len(s.ds.Summaries))
	for _, row := range s.ds.Summaries {
		days = append(days, row.CalendarDate)
	}
	return nil, listDaysOutput{Days: days, Count: len(days)}, nil
}

func (s *Server) handleGetDailySummary(ctx context.Context, req *mcp.CallToolRequest, input getDailySummaryInput) (*mcp.CallToolResult, dailySummaryOutput, error) {
	for _, row := range s.ds.Summaries {
		if row.CalendarDate == input.Date {
			return nil, dailySummaryOutput{
				CalendarDate: row.CalendarDate,
				Fields:       summaryFields(row),
			}, nil
		}
	}
	return nil, dailySummaryOutput{}, fmt.Errorf("no summary for date: %s", input.Date)
}

func (s *Server) handleGetMinuteSeries(ctx context.Context, req *mcp.CallToolRequest, input getMinuteSeriesInput) (*mcp.CallToolResult, minuteSeriesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSeriesLimit
	}

	fromMin, err := parseClock(input.From, 0)
	if err != nil {
		return nil, minuteSeriesOutput{}, err
	}
	toMin, err := parseClock(input.To, 24*60)
	if err != nil {
		return nil, minuteSeriesOutput{}, err
	}

	out := minuteSeriesOutput{CalendarDate: input.Date, Rows: []minuteRowOutput{}}
	found := false
	for _, row := range s.ds.Minutes {
		if row.CalendarDate != input.Date {
			continue
		}
		found = true
		minOfDay := row.Timestamp.Hour()*60 + row.Timestamp.Minute()
		if minOfDay < fromMin || minOfDay >= toMin {
			continue
		}
		if len(out.Rows) >= limit {
			out.Truncated = true
			break
		}
		out.Rows = append(out.Rows, minuteRowOutput{
			Timestamp:     row.Timestamp.Format(time.RFC3339),
			StepsPerMin:   omitNaN(row.StepsPerMin),
			HeartRate:     omitNaN(row.HeartRate),
			StressLevel:   omitNaN(row.StressLevel),
			SleepMovement: omitNaN(row.SleepMovement),
			BodyBattery:   omitNaN(row.BodyBattery),
			ActivityLevel: row.ActivityLevel,
		})
	}
	if !found {
		return nil, minuteSeriesOutput{}, fmt.Errorf("no minute data for date: %s", input.Date)
	}
	return nil, out, nil
}

// parseClock converts "HH:MM" to minute-of-day, returning def for empty input.
func parseClock(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q (expected HH:MM)", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func omitNaN(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func summaryFields(row series.SummaryRow) map[string]float64 {
	fields := map[string]float64{}
	add := func(name string, v *float64) {
		if v != nil {
			fields[name] = *v
		}
	}
	add("total_steps", row.TotalSteps)
	add("total_kilocalories", row.TotalKilocalories)
	add("active_kilocalories", row.ActiveKilocalories)
	add("total_distance_meters", row.TotalDistanceMeters)
	add("resting_heart_rate", row.RestingHeartRate)
	add("min_heart_rate", row.MinHeartRate)
	add("max_heart_rate", row.MaxHeartRate)
	add("average_stress_level", row.AverageStressLevel)
	add("body_battery_at_wake_time", row.BodyBatteryAtWakeTime)
	add("body_battery_most_recent_value", row.BodyBatteryMostRecentValue)
	add("sleeping_seconds", row.SleepingSeconds)
	add("deep_sleep_seconds", row.DeepSleepSeconds)
	add("light_sleep_seconds", row.LightSleepSeconds)
	add("rem_sleep_seconds", row.RemSleepSeconds)
	add("sleep_score", row.SleepScore)
	return fields
}
