// ABOUTME: Per-day frame, summary row, and flattened dataset types.
// ABOUTME: Missing numeric values are NaN; presence flags are always concrete.
package series

import (
	"math"
	"time"

	"github.com/akeil/wellkit/internal/models"
)

// DayFrame is one day's minute-aligned multivariate series. It is built
// once by the assembler and not mutated afterwards.
type DayFrame struct {
	Index        MinuteIndex
	CalendarDate string

	StepsPerMin   []float64
	HeartRate     []float64
	StressLevel   []float64
	SleepMovement []float64
	BodyBattery   []float64

	StepsPresent       []bool
	HeartRatePresent   []bool
	StressPresent      []bool
	BodyBatteryPresent []bool

	ActivityLevel []string
}

func newDayFrame(idx MinuteIndex, date string) *DayFrame {
	n := idx.Len()
	f := &DayFrame{
		Index:        idx,
		CalendarDate: date,

		StepsPerMin:   make([]float64, n),
		HeartRate:     make([]float64, n),
		StressLevel:   make([]float64, n),
		SleepMovement: make([]float64, n),
		BodyBattery:   make([]float64, n),

		StepsPresent:       make([]bool, n),
		HeartRatePresent:   make([]bool, n),
		StressPresent:      make([]bool, n),
		BodyBatteryPresent: make([]bool, n),

		ActivityLevel: make([]string, n),
	}
	for i := 0; i < n; i++ {
		f.StepsPerMin[i] = math.NaN()
		f.HeartRate[i] = math.NaN()
		f.StressLevel[i] = math.NaN()
		f.SleepMovement[i] = math.NaN()
		f.BodyBattery[i] = math.NaN()
	}
	return f
}

// SummaryRow is the flat record of whitelisted daily summary scalars.
// Fields absent from the source blob stay nil.
type SummaryRow struct {
	CalendarDate string

	TotalSteps                 *float64
	TotalKilocalories          *float64
	ActiveKilocalories         *float64
	TotalDistanceMeters        *float64
	RestingHeartRate           *float64
	MinHeartRate               *float64
	MaxHeartRate               *float64
	AverageStressLevel         *float64
	BodyBatteryAtWakeTime      *float64
	BodyBatteryMostRecentValue *float64
	SleepingSeconds            *float64
	DeepSleepSeconds           *float64
	LightSleepSeconds          *float64
	RemSleepSeconds            *float64
	SleepScore                 *float64
}

func newSummaryRow(s *models.DaySummary, date string) SummaryRow {
	return SummaryRow{
		CalendarDate:               date,
		TotalSteps:                 s.TotalSteps,
		TotalKilocalories:          s.TotalKilocalories,
		ActiveKilocalories:         s.ActiveKilocalories,
		TotalDistanceMeters:        s.TotalDistanceMeters,
		RestingHeartRate:           s.RestingHeartRate,
		MinHeartRate:               s.MinHeartRate,
		MaxHeartRate:               s.MaxHeartRate,
		AverageStressLevel:         s.AverageStressLevel,
		BodyBatteryAtWakeTime:      s.BodyBatteryAtWakeTime,
		BodyBatteryMostRecentValue: s.BodyBatteryMostRecentValue,
		SleepingSeconds:            s.SleepingSeconds,
		DeepSleepSeconds:           s.DeepSleepSeconds,
		LightSleepSeconds:          s.LightSleepSeconds,
		RemSleepSeconds:            s.RemSleepSeconds,
		SleepScore:                 s.SleepScore,
	}
}

// MinuteRow is one flattened row of the all-days table.
type MinuteRow struct {
	Timestamp    time.Time
	CalendarDate string

	StepsPerMin   float64
	HeartRate     float64
	StressLevel   float64
	SleepMovement float64
	BodyBattery   float64

	StepsPresent       bool
	HeartRatePresent   bool
	StressPresent      bool
	BodyBatteryPresent bool

	ActivityLevel string
}

// Dataset is the final output: the all-days minute table sorted by
// timestamp plus the deduplicated daily summary table.
type Dataset struct {
	Minutes   []MinuteRow
	Summaries []SummaryRow
}

// Rows flattens a day frame into minute rows in index order.
func (f *DayFrame) Rows() []MinuteRow {
	rows := make([]MinuteRow, 0, f.Index.Len())
	for i := 0; i < f.Index.Len(); i++ {
		rows = append(rows, MinuteRow{
			Timestamp:          f.Index.At(i),
			CalendarDate:       f.CalendarDate,
			StepsPerMin:        f.StepsPerMin[i],
			HeartRate:          f.HeartRate[i],
			StressLevel:        f.StressLevel[i],
			SleepMovement:      f.SleepMovement[i],
			BodyBattery:        f.BodyBattery[i],
			StepsPresent:       f.StepsPresent[i],
			HeartRatePresent:   f.HeartRatePresent[i],
			StressPresent:      f.StressPresent[i],
			BodyBatteryPresent: f.BodyBatteryPresent[i],
			ActivityLevel:      f.ActivityLevel[i],
		})
	}
	return rows
}
