// ABOUTME: SQLite sink for the reconstructed dataset.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package sink

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akeil/wellkit/internal/series"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS minutes (
    timestamp            TEXT NOT NULL,
    calendar_date        TEXT NOT NULL,
    steps_per_min        REAL,
    heart_rate           REAL,
    stress_level         REAL,
    sleep_movement       REAL,
    body_battery         REAL,
    steps_present        INTEGER NOT NULL,
    heart_rate_present   INTEGER NOT NULL,
    stress_present       INTEGER NOT NULL,
    body_battery_present INTEGER NOT NULL,
    activity_level       TEXT,
    PRIMARY KEY (timestamp, calendar_date)
);

CREATE TABLE IF NOT EXISTS daily_summary (
    calendar_date                  TEXT PRIMARY KEY,
    total_steps                    REAL,
    total_kilocalories             REAL,
    active_kilocalories            REAL,
    total_distance_meters          REAL,
    resting_heart_rate             REAL,
    min_heart_rate                 REAL,
    max_heart_rate                 REAL,
    average_stress_level           REAL,
    body_battery_at_wake_time      REAL,
    body_battery_most_recent_value REAL,
    sleeping_seconds               REAL,
    deep_sleep_seconds             REAL,
    light_sleep_seconds            REAL,
    rem_sleep_seconds              REAL,
    sleep_score                    REAL
);

CREATE INDEX IF NOT EXISTS idx_minutes_date ON minutes(calendar_date);
`

// WriteSQLite writes the dataset into wellkit.db under dir. Existing
// rows for the same keys are replaced, so re-runs are idempotent.
func WriteSQLite(ds *series.Dataset, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "wellkit.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	if err := insertDataset(db, ds); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func insertDataset(db *sql.DB, ds *series.Dataset) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	minuteStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO minutes (
			timestamp, calendar_date,
			steps_per_min, heart_rate, stress_level, sleep_movement, body_battery,
			steps_present, heart_rate_present, stress_present, body_battery_present,
			activity_level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare minutes insert: %w", err)
	}
	defer minuteStmt.Close()

	for _, r := range ds.Minutes {
		_, err := minuteStmt.Exec(
			r.Timestamp.Format(time.RFC3339), r.CalendarDate,
			nullIfNaN(r.StepsPerMin), nullIfNaN(r.HeartRate), nullIfNaN(r.StressLevel),
			nullIfNaN(r.SleepMovement), nullIfNaN(r.BodyBattery),
			r.StepsPresent, r.HeartRatePresent, r.StressPresent, r.BodyBatteryPresent,
			r.ActivityLevel,
		)
		if err != nil {
			return fmt.Errorf("insert minute row: %w", err)
		}
	}

	summaryStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO daily_summary (
			calendar_date,
			total_steps, total_kilocalories, active_kilocalories, total_distance_meters,
			resting_heart_rate, min_heart_rate, max_heart_rate,
			average_stress_level, body_battery_at_wake_time, body_battery_most_recent_value,
			sleeping_seconds, deep_sleep_seconds, light_sleep_seconds, rem_sleep_seconds,
			sleep_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare summary insert: %w", err)
	}
	defer summaryStmt.Close()

	for _, r := range ds.Summaries {
		_, err := summaryStmt.Exec(
			r.CalendarDate,
			nullPtr(r.TotalSteps), nullPtr(r.TotalKilocalories), nullPtr(r.ActiveKilocalories),
			nullPtr(r.TotalDistanceMeters), nullPtr(r.RestingHeartRate), nullPtr(r.MinHeartRate),
			nullPtr(r.MaxHeartRate), nullPtr(r.AverageStressLevel), nullPtr(r.BodyBatteryAtWakeTime),
			nullPtr(r.BodyBatteryMostRecentValue), nullPtr(r.SleepingSeconds),
			nullPtr(r.DeepSleepSeconds), nullPtr(r.LightSleepSeconds), nullPtr(r.RemSleepSeconds),
			nullPtr(r.SleepScore),
		)
		if err != nil {
			return fmt.Errorf("insert summary row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func nullIfNaN(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func nullPtr(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
