// ABOUTME: CSV writer for the minute table and the daily summary table.
// ABOUTME: Missing numeric values become empty cells.
package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akeil/wellkit/internal/series"
)

// WriteCSV writes minutes.csv and daily_summary.csv under dir.
func WriteCSV(ds *series.Dataset, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	minutesPath := filepath.Join(dir, "minutes.csv")
	if err := writeMinutesCSV(minutesPath, ds.Minutes); err != nil {
		return nil, err
	}
	summaryPath := filepath.Join(dir, "daily_summary.csv")
	if err := writeSummaryCSV(summaryPath, ds.Summaries); err != nil {
		return nil, err
	}
	return []string{minutesPath, summaryPath}, nil
}

func writeMinutesCSV(path string, rows []series.MinuteRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"timestamp", "calendar_date",
		"steps_per_min", "heart_rate", "stress_level", "sleep_movement", "body_battery",
		"steps_present", "heart_rate_present", "stress_present", "body_battery_present",
		"activity_level",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.CalendarDate,
			formatFloat(r.StepsPerMin),
			formatFloat(r.HeartRate),
			formatFloat(r.StressLevel),
			formatFloat(r.SleepMovement),
			formatFloat(r.BodyBattery),
			strconv.FormatBool(r.StepsPresent),
			strconv.FormatBool(r.HeartRatePresent),
			strconv.FormatBool(r.StressPresent),
			strconv.FormatBool(r.BodyBatteryPresent),
			r.ActivityLevel,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSummaryCSV(path string, rows []series.SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"calendar_date",
		"total_steps", "total_kilocalories", "active_kilocalories", "total_distance_meters",
		"resting_heart_rate", "min_heart_rate", "max_heart_rate",
		"average_stress_level", "body_battery_at_wake_time", "body_battery_most_recent_value",
		"sleeping_seconds", "deep_sleep_seconds", "light_sleep_seconds", "rem_sleep_seconds",
		"sleep_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.CalendarDate,
			formatFloatPtr(r.TotalSteps),
			formatFloatPtr(r.TotalKilocalories),
			formatFloatPtr(r.ActiveKilocalories),
			formatFloatPtr(r.TotalDistanceMeters),
			formatFloatPtr(r.RestingHeartRate),
			formatFloatPtr(r.MinHeartRate),
			formatFloatPtr(r.MaxHeartRate),
			formatFloatPtr(r.AverageStressLevel),
			formatFloatPtr(r.BodyBatteryAtWakeTime),
			formatFloatPtr(r.BodyBatteryMostRecentValue),
			formatFloatPtr(r.SleepingSeconds),
			formatFloatPtr(r.DeepSleepSeconds),
			formatFloatPtr(r.LightSleepSeconds),
			formatFloatPtr(r.RemSleepSeconds),
			formatFloatPtr(r.SleepScore),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
