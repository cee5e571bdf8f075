// ABOUTME: Parquet writer for the minute table and the daily summary table.
// ABOUTME: Missing minute values stay NaN; missing summary scalars are OPTIONAL.
package sink

import (
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/akeil/wellkit/internal/series"
)

type minuteParquetRow struct {
	TimestampMs  int64  `parquet:"name=timestamp_ms, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	CalendarDate string `parquet:"name=calendar_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`

	StepsPerMin   float64 `parquet:"name=steps_per_min, type=DOUBLE"`
	HeartRate     float64 `parquet:"name=heart_rate, type=DOUBLE"`
	StressLevel   float64 `parquet:"name=stress_level, type=DOUBLE"`
	SleepMovement float64 `parquet:"name=sleep_movement, type=DOUBLE"`
	BodyBattery   float64 `parquet:"name=body_battery, type=DOUBLE"`

	StepsPresent       bool `parquet:"name=steps_present, type=BOOLEAN"`
	HeartRatePresent   bool `parquet:"name=heart_rate_present, type=BOOLEAN"`
	StressPresent      bool `parquet:"name=stress_present, type=BOOLEAN"`
	BodyBatteryPresent bool `parquet:"name=body_battery_present, type=BOOLEAN"`

	ActivityLevel string `parquet:"name=activity_level, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

type summaryParquetRow struct {
	CalendarDate string `parquet:"name=calendar_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`

	TotalSteps                 *float64 `parquet:"name=total_steps, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalKilocalories          *float64 `parquet:"name=total_kilocalories, type=DOUBLE, repetitiontype=OPTIONAL"`
	ActiveKilocalories         *float64 `parquet:"name=active_kilocalories, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalDistanceMeters        *float64 `parquet:"name=total_distance_meters, type=DOUBLE, repetitiontype=OPTIONAL"`
	RestingHeartRate           *float64 `parquet:"name=resting_heart_rate, type=DOUBLE, repetitiontype=OPTIONAL"`
	MinHeartRate               *float64 `parquet:"name=min_heart_rate, type=DOUBLE, repetitiontype=OPTIONAL"`
	MaxHeartRate               *float64 `parquet:"name=max_heart_rate, type=DOUBLE, repetitiontype=OPTIONAL"`
	AverageStressLevel         *float64 `parquet:"name=average_stress_level, type=DOUBLE, repetitiontype=OPTIONAL"`
	BodyBatteryAtWakeTime      *float64 `parquet:"name=body_battery_at_wake_time, type=DOUBLE, repetitiontype=OPTIONAL"`
	BodyBatteryMostRecentValue *float64 `parquet:"name=body_battery_most_recent_value, type=DOUBLE, repetitiontype=OPTIONAL"`
	SleepingSeconds            *float64 `parquet:"name=sleeping_seconds, type=DOUBLE, repetitiontype=OPTIONAL"`
	DeepSleepSeconds           *float64 `parquet:"name=deep_sleep_seconds, type=DOUBLE, repetitiontype=OPTIONAL"`
	LightSleepSeconds          *float64 `parquet:"name=light_sleep_seconds, type=DOUBLE, repetitiontype=OPTIONAL"`
	RemSleepSeconds            *float64 `parquet:"name=rem_sleep_seconds, type=DOUBLE, repetitiontype=OPTIONAL"`
	SleepScore                 *float64 `parquet:"name=sleep_score, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// WriteParquet writes minutes.parquet and daily_summary.parquet under dir.
func WriteParquet(ds *series.Dataset, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	minutesPath := filepath.Join(dir, "minutes.parquet")
	if err := writeMinutesParquet(minutesPath, ds.Minutes); err != nil {
		return nil, err
	}
	summaryPath := filepath.Join(dir, "daily_summary.parquet")
	if err := writeSummaryParquet(summaryPath, ds.Summaries); err != nil {
		return nil, err
	}
	return []string{minutesPath, summaryPath}, nil
}

func writeMinutesParquet(path string, rows []series.MinuteRow) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(minuteParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		row := minuteParquetRow{
			TimestampMs:        r.Timestamp.UnixMilli(),
			CalendarDate:       r.CalendarDate,
			StepsPerMin:        r.StepsPerMin,
			HeartRate:          r.HeartRate,
			StressLevel:        r.StressLevel,
			SleepMovement:      r.SleepMovement,
			BodyBattery:        r.BodyBattery,
			StepsPresent:       r.StepsPresent,
			HeartRatePresent:   r.HeartRatePresent,
			StressPresent:      r.StressPresent,
			BodyBatteryPresent: r.BodyBatteryPresent,
			ActivityLevel:      r.ActivityLevel,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func writeSummaryParquet(path string, rows []series.SummaryRow) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(summaryParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		row := summaryParquetRow{
			CalendarDate:               r.CalendarDate,
			TotalSteps:                 r.TotalSteps,
			TotalKilocalories:          r.TotalKilocalories,
			ActiveKilocalories:         r.ActiveKilocalories,
			TotalDistanceMeters:        r.TotalDistanceMeters,
			RestingHeartRate:           r.RestingHeartRate,
			MinHeartRate:               r.MinHeartRate,
			MaxHeartRate:               r.MaxHeartRate,
			AverageStressLevel:         r.AverageStressLevel,
			BodyBatteryAtWakeTime:      r.BodyBatteryAtWakeTime,
			BodyBatteryMostRecentValue: r.BodyBatteryMostRecentValue,
			SleepingSeconds:            r.SleepingSeconds,
			DeepSleepSeconds:           r.DeepSleepSeconds,
			LightSleepSeconds:          r.LightSleepSeconds,
			RemSleepSeconds:            r.RemSleepSeconds,
			SleepScore:                 r.SleepScore,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}
