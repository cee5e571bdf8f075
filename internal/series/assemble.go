// ABOUTME: Day assembler: window, minute index, reindexing, interpolation.
// ABOUTME: Metric failures degrade to missing columns; only summary failure skips a day.
package series

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/akeil/wellkit/internal/models"
	"github.com/akeil/wellkit/internal/rawstore"
)

// Options is the reconstruction configuration surface.
type Options struct {
	// Freq is the resampling frequency. Zero means one minute.
	Freq time.Duration
	// InterpolateGaps enables bounded gap interpolation for heart rate
	// and stress.
	InterpolateGaps bool
	// MaxGapMinutes bounds the elapsed span a gap may have and still be
	// interpolated. Zero means 5.
	MaxGapMinutes int
	// LastNDays limits processing to the most recent N calendar days.
	// Zero or negative means all days.
	LastNDays int
}

// DefaultOptions returns the standard reconstruction settings.
func DefaultOptions() Options {
	return Options{
		Freq:            time.Minute,
		InterpolateGaps: true,
		MaxGapMinutes:   5,
		LastNDays:       3,
	}
}

func (o Options) freq() time.Duration {
	if o.Freq <= 0 {
		return time.Minute
	}
	return o.Freq
}

func (o Options) maxGap() time.Duration {
	m := o.MaxGapMinutes
	if m <= 0 {
		m = 5
	}
	return time.Duration(m) * time.Minute
}

// Builder assembles per-day frames from a raw artifact store.
type Builder struct {
	store rawstore.Store
	opts  Options
	log   *log.Logger
}

// NewBuilder creates a Builder. A nil logger uses the package default.
func NewBuilder(store rawstore.Store, opts Options, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{store: store, opts: opts, log: logger}
}

// BuildDay assembles one calendar day's frame and summary row.
func (b *Builder) BuildDay(date string) (*DayFrame, SummaryRow, error) {
	raw, err := b.store.Read(models.KindSummary, date)
	if err != nil {
		return nil, SummaryRow{}, fmt.Errorf("summary %s: %w", date, err)
	}
	summary, err := models.ParseDaySummary(raw)
	if err != nil {
		return nil, SummaryRow{}, fmt.Errorf("summary %s: %w", date, err)
	}
	calendarDate := summary.CalendarDate
	if calendarDate == "" {
		calendarDate = date
	}

	loc := ResolveLocation(summary)
	start, end, err := b.dayWindow(summary, calendarDate, loc)
	if err != nil {
		return nil, SummaryRow{}, err
	}

	freq := b.opts.freq()
	idx := NewMinuteIndex(start, end, freq)
	frame := newDayFrame(idx, calendarDate)

	steps := b.readStepIntervals(date)
	reindexValues(frame.StepsPerMin, NormalizeSteps(steps, loc, freq), idx)
	reindexLabels(frame.ActivityLevel, NormalizeActivityLevels(steps, loc, freq), idx)
	for i, v := range frame.StepsPerMin {
		frame.StepsPresent[i] = !math.IsNaN(v)
	}

	hr := b.readPoints(models.KindHeartRate, date, "heartRateValues")
	hrBuckets := NormalizePoints(hr, loc, freq)
	reindexValues(frame.HeartRate, hrBuckets.Values, idx)
	reindexPresence(frame.HeartRatePresent, hrBuckets.Present, idx)

	stress := b.readPoints(models.KindStress, date, "stressValuesArray")
	stressBuckets := NormalizePoints(stress, loc, freq)
	reindexValues(frame.StressLevel, stressBuckets.Values, idx)
	reindexPresence(frame.StressPresent, stressBuckets.Present, idx)

	sleep := b.readSleepMovement(date)
	reindexValues(frame.SleepMovement, NormalizeSleepMovement(sleep, loc, freq), idx)

	battery := b.readBattery(date)
	batteryBuckets := NormalizeBattery(battery, loc, freq)
	reindexValues(frame.BodyBattery, batteryBuckets.Values, idx)
	reindexPresence(frame.BodyBatteryPresent, batteryBuckets.Present, idx)

	if b.opts.InterpolateGaps {
		interpolateGaps(frame.HeartRate, freq, b.opts.maxGap())
		interpolateGaps(frame.StressLevel, freq, b.opts.maxGap())
	}

	return frame, newSummaryRow(summary, calendarDate), nil
}

// dayWindow computes the local time window: the wellness GMT pair when
// present, else the full local calendar day.
func (b *Builder) dayWindow(s *models.DaySummary, calendarDate string, loc *time.Location) (time.Time, time.Time, error) {
	if s.WellnessStartTimeGmt != "" && s.WellnessEndTimeGmt != "" {
		start, serr := models.ParseTimestamp(s.WellnessStartTimeGmt)
		end, eerr := models.ParseTimestamp(s.WellnessEndTimeGmt)
		if serr == nil && eerr == nil {
			return start.In(loc), end.In(loc), nil
		}
	}

	midnight, err := time.ParseInLocation("2006-01-02", calendarDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("day window for %q: %w", calendarDate, err)
	}
	return midnight, midnight.Add(24 * time.Hour), nil
}

// readBlob fetches one artifact, degrading absence and read failures to
// nil. Only absence is silent; anything else gets a warning.
func (b *Builder) readBlob(kind models.Kind, date string) []byte {
	raw, err := b.store.Read(kind, date)
	if err != nil {
		if !errors.Is(err, rawstore.ErrNotFound) {
			b.log.Warn("artifact unreadable", "kind", kind, "date", date, "err", err)
		}
		return nil
	}
	return raw
}

func (b *Builder) readStepIntervals(date string) []models.StepInterval {
	raw := b.readBlob(models.KindSteps, date)
	if raw == nil {
		return nil
	}
	intervals, err := models.DecodeStepIntervals(raw)
	if err != nil {
		b.log.Warn("artifact malformed", "kind", models.KindSteps, "date", date, "err", err)
		return nil
	}
	return intervals
}

func (b *Builder) readPoints(kind models.Kind, date, key string) []models.SamplePoint {
	raw := b.readBlob(kind, date)
	if raw == nil {
		return nil
	}
	points, err := models.DecodePointPayload(raw, key)
	if err != nil {
		b.log.Warn("artifact malformed", "kind", kind, "date", date, "err", err)
		return nil
	}
	return points
}

func (b *Builder) readSleepMovement(date string) []models.SleepMovement {
	raw := b.readBlob(models.KindSleep, date)
	if raw == nil {
		return nil
	}
	moves, err := models.DecodeSleepMovement(raw)
	if err != nil {
		b.log.Warn("artifact malformed", "kind", models.KindSleep, "date", date, "err", err)
		return nil
	}
	return moves
}

func (b *Builder) readBattery(date string) []models.SamplePoint {
	raw := b.readBlob(models.KindBodyBattery, date)
	if raw == nil {
		return nil
	}
	points, err := models.DecodeBatteryPayload(raw)
	if err != nil {
		b.log.Warn("artifact malformed", "kind", models.KindBodyBattery, "date", date, "err", err)
		return nil
	}
	return points
}

// reindexValues copies bucket values onto the minute grid. Positions with
// no bucket stay NaN.
func reindexValues(dst []float64, src map[int64]float64, idx MinuteIndex) {
	for i := 0; i < idx.Len(); i++ {
		if v, ok := src[timeKey(idx.At(i))]; ok {
			dst[i] = v
		}
	}
}

// reindexPresence copies presence onto the grid. Positions with no bucket
// are false, never missing.
func reindexPresence(dst []bool, src map[int64]bool, idx MinuteIndex) {
	for i := 0; i < idx.Len(); i++ {
		dst[i] = src[timeKey(idx.At(i))]
	}
}

func reindexLabels(dst []string, src map[int64]string, idx MinuteIndex) {
	for i := 0; i < idx.Len(); i++ {
		dst[i] = src[timeKey(idx.At(i))]
	}
}

// interpolateGaps fills interior missing runs by time-weighted linear
// interpolation between the bounding observations. A run is filled only
// when its elapsed span is within maxGap; longer gaps stay missing.
// Leading and trailing runs have no bounding value and are never filled.
func interpolateGaps(vals []float64, freq time.Duration, maxGap time.Duration) {
	prev := -1
	for i := 0; i < len(vals); i++ {
		if math.IsNaN(vals[i]) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			gap := time.Duration(i-prev-1) * freq
			if gap <= maxGap {
				span := float64(i - prev)
				for j := prev + 1; j < i; j++ {
					frac := float64(j-prev) / span
					vals[j] = vals[prev] + (vals[i]-vals[prev])*frac
				}
			}
		}
		prev = i
	}
}
