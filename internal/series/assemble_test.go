// ABOUTME: Tests for the day assembler and full reconstruction pipeline.
// ABOUTME: End-to-end scenarios over an in-memory artifact store.
package series

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/akeil/wellkit/internal/models"
	"github.com/akeil/wellkit/internal/rawstore"
)

// memStore is an in-memory Store for tests.
type memStore map[string][]byte

func (m memStore) key(kind models.Kind, date string) string {
	return string(kind) + "/" + date
}

func (m memStore) Read(kind models.Kind, date string) ([]byte, error) {
	data, ok := m[m.key(kind, date)]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, date, rawstore.ErrNotFound)
	}
	return rawstore.StripComments(data), nil
}

func (m memStore) Dates() ([]string, error) {
	var dates []string
	for k := range m {
		if strings.HasPrefix(k, "summary/") {
			dates = append(dates, strings.TrimPrefix(k, "summary/"))
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m memStore) put(kind models.Kind, date, content string) {
	m[m.key(kind, date)] = []byte(content)
}

func summaryBlob(date string) string {
	return fmt.Sprintf(`{
		"calendarDate": %q,
		"wellnessStartTimeLocal": "%sT00:00:00.0",
		"wellnessStartTimeGmt": "%sT00:00:00.0",
		"wellnessEndTimeGmt": "%sT00:00:00.0",
		"totalSteps": 8211,
		"restingHeartRate": 52,
		"sleepScore": 81
	}`, date, date, date, nextDate(date))
}

func nextDate(date string) string {
	d, _ := time.Parse("2006-01-02", date)
	return d.AddDate(0, 0, 1).Format("2006-01-02")
}

func TestBuildDayStepsScenario(t *testing.T) {
	// 3 intervals: 10 min / 100 steps, 20 min / 50 steps, 5 min / 0 steps.
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10", summaryBlob("2024-03-10"))
	store.put(models.KindSteps, "2024-03-10", `[
		{"startGMT": "2024-03-10T00:00:00.0", "endGMT": "2024-03-10T00:10:00.0", "steps": 100, "primaryActivityLevel": "active"},
		{"startGMT": "2024-03-10T00:10:00.0", "endGMT": "2024-03-10T00:30:00.0", "steps": 50, "primaryActivityLevel": "sedentary"},
		{"startGMT": "2024-03-10T00:30:00.0", "endGMT": "2024-03-10T00:35:00.0", "steps": 0, "primaryActivityLevel": "sleeping"}
	]`)

	frame, _, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}
	if frame.Index.Len() != 1440 {
		t.Fatalf("index length = %d, want 1440", frame.Index.Len())
	}

	for i := 0; i < 10; i++ {
		if frame.StepsPerMin[i] != 10.0 {
			t.Errorf("minute %d: steps = %v, want 10.0", i, frame.StepsPerMin[i])
		}
		if frame.ActivityLevel[i] != "active" {
			t.Errorf("minute %d: activity = %q, want active", i, frame.ActivityLevel[i])
		}
	}
	for i := 10; i < 30; i++ {
		if frame.StepsPerMin[i] != 2.5 {
			t.Errorf("minute %d: steps = %v, want 2.5", i, frame.StepsPerMin[i])
		}
	}
	for i := 30; i < 35; i++ {
		if frame.StepsPerMin[i] != 0.0 {
			t.Errorf("minute %d: steps = %v, want 0.0", i, frame.StepsPerMin[i])
		}
	}
	for i := 35; i < frame.Index.Len(); i++ {
		if !math.IsNaN(frame.StepsPerMin[i]) {
			t.Fatalf("minute %d: steps = %v, want missing", i, frame.StepsPerMin[i])
		}
	}
	presentCount := 0
	for _, p := range frame.StepsPresent {
		if p {
			presentCount++
		}
	}
	if presentCount != 35 {
		t.Errorf("steps present for %d minutes, want 35", presentCount)
	}
}

func TestBuildDayBatteryScenario(t *testing.T) {
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10", summaryBlob("2024-03-10"))
	t0800 := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	t0815 := t0800.Add(15 * time.Minute)
	store.put(models.KindBodyBattery, "2024-03-10",
		fmt.Sprintf(`[[%d, 80], [%d, 75]]`, t0800.UnixMilli(), t0815.UnixMilli()))

	frame, _, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}

	slot := func(ts time.Time) int {
		i, ok := frame.Index.Slot(ts)
		if !ok {
			t.Fatalf("instant %v not on grid", ts)
		}
		return i
	}

	if !frame.BodyBatteryPresent[slot(t0800)] || !frame.BodyBatteryPresent[slot(t0815)] {
		t.Error("sample buckets should be present")
	}
	presentCount := 0
	for _, p := range frame.BodyBatteryPresent {
		if p {
			presentCount++
		}
	}
	if presentCount != 2 {
		t.Errorf("battery present for %d minutes, want 2", presentCount)
	}
	if v := frame.BodyBattery[slot(t0800.Add(7*time.Minute))]; v != 80 {
		t.Errorf("battery at 08:07 = %v, want 80 (carried)", v)
	}
	if v := frame.BodyBattery[slot(t0815)]; v != 75 {
		t.Errorf("battery at 08:15 = %v, want 75", v)
	}
	if v := frame.BodyBattery[slot(t0800.Add(-time.Minute))]; !math.IsNaN(v) {
		t.Errorf("battery before first sample = %v, want missing", v)
	}
}

func TestBuildDayInterpolationBounded(t *testing.T) {
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10", summaryBlob("2024-03-10"))

	base := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)
	// Samples with a 4-minute gap (fillable) and a 10-minute gap (not).
	store.put(models.KindHeartRate, "2024-03-10", fmt.Sprintf(
		`{"heartRateValues": [[%d, 60], [%d, 70], [%d, 80]]}`,
		base.UnixMilli(),
		base.Add(5*time.Minute).UnixMilli(),
		base.Add(16*time.Minute).UnixMilli(),
	))

	frame, _, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}
	slot := func(d time.Duration) int {
		i, ok := frame.Index.Slot(base.Add(d))
		if !ok {
			t.Fatalf("instant +%v not on grid", d)
		}
		return i
	}

	// 4 missing minutes between 06:00 and 06:05: time-weighted fill.
	if v := frame.HeartRate[slot(1 * time.Minute)]; math.Abs(v-62) > 1e-9 {
		t.Errorf("hr at +1m = %v, want 62", v)
	}
	if v := frame.HeartRate[slot(4 * time.Minute)]; math.Abs(v-68) > 1e-9 {
		t.Errorf("hr at +4m = %v, want 68", v)
	}
	// 10 missing minutes between 06:05 and 06:16: gap exceeds the max
	// span, so the middle stays missing.
	if v := frame.HeartRate[slot(10 * time.Minute)]; !math.IsNaN(v) {
		t.Errorf("hr inside long gap = %v, want missing", v)
	}
	// presence reflects raw samples only, never interpolation
	if frame.HeartRatePresent[slot(1*time.Minute)] {
		t.Error("interpolated minute must not be marked present")
	}
	if !frame.HeartRatePresent[slot(5*time.Minute)] {
		t.Error("sampled minute must be marked present")
	}
}

func TestBuildDayInterpolationDisabled(t *testing.T) {
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10", summaryBlob("2024-03-10"))
	base := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)
	store.put(models.KindHeartRate, "2024-03-10", fmt.Sprintf(
		`{"heartRateValues": [[%d, 60], [%d, 70]]}`,
		base.UnixMilli(), base.Add(3*time.Minute).UnixMilli(),
	))

	opts := DefaultOptions()
	opts.InterpolateGaps = false
	frame, _, err := NewBuilder(store, opts, nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}
	i, _ := frame.Index.Slot(base.Add(time.Minute))
	if !math.IsNaN(frame.HeartRate[i]) {
		t.Errorf("gap should stay missing when interpolation is off, got %v", frame.HeartRate[i])
	}
}

func TestBuildDayMalformedMetricDegrades(t *testing.T) {
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10", summaryBlob("2024-03-10"))
	store.put(models.KindSteps, "2024-03-10", `{"not": "an array"}`)
	store.put(models.KindStress, "2024-03-10", `not even json`)

	frame, row, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay should degrade metric failures, got %v", err)
	}
	for i := 0; i < frame.Index.Len(); i++ {
		if !math.IsNaN(frame.StepsPerMin[i]) || frame.StepsPresent[i] {
			t.Fatal("malformed steps should degrade to all-missing/false")
		}
		if frame.StressPresent[i] {
			t.Fatal("malformed stress should degrade to all-false presence")
		}
	}
	if row.RestingHeartRate == nil || *row.RestingHeartRate != 52 {
		t.Errorf("summary row should still be extracted, got %+v", row)
	}
}

func TestBuildDaySummaryRowWhitelist(t *testing.T) {
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10", summaryBlob("2024-03-10"))

	_, row, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}
	if row.CalendarDate != "2024-03-10" {
		t.Errorf("CalendarDate = %q", row.CalendarDate)
	}
	if row.TotalSteps == nil || *row.TotalSteps != 8211 {
		t.Errorf("TotalSteps = %v", row.TotalSteps)
	}
	if row.SleepScore == nil || *row.SleepScore != 81 {
		t.Errorf("SleepScore = %v", row.SleepScore)
	}
	if row.TotalKilocalories != nil {
		t.Errorf("absent field should stay nil, got %v", *row.TotalKilocalories)
	}
}

func TestBuildDayCommentedSummary(t *testing.T) {
	store := memStore{}
	store.put(models.KindSummary, "2024-03-10",
		"// annotated export\n"+summaryBlob("2024-03-10"))
	frame, _, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed on commented summary: %v", err)
	}
	if frame.CalendarDate != "2024-03-10" {
		t.Errorf("CalendarDate = %q", frame.CalendarDate)
	}
}

func TestBuildDayFallbackWindow(t *testing.T) {
	store := memStore{}
	// No wellness window: full local calendar day in the event's offset.
	store.put(models.KindSummary, "2024-03-10", `{
		"calendarDate": "2024-03-10",
		"bodyBatteryActivityEventList": [{"timezoneOffset": 3600000}]
	}`)
	frame, _, err := NewBuilder(store, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err != nil {
		t.Fatalf("BuildDay failed: %v", err)
	}
	if frame.Index.Len() != 1440 {
		t.Errorf("full-day fallback length = %d, want 1440", frame.Index.Len())
	}
	wantStart := time.Date(2024, 3, 10, 0, 0, 0, 0, time.FixedZone("UTC+01:00", 3600))
	if !frame.Index.Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", frame.Index.Start, wantStart)
	}
}

func TestBuildDayMissingSummary(t *testing.T) {
	_, _, err := NewBuilder(memStore{}, DefaultOptions(), nil).BuildDay("2024-03-10")
	if err == nil {
		t.Fatal("missing summary must fail the day")
	}
}
