// ABOUTME: Tests for payload schema decoders.
// ABOUTME: Covers fallback keys, shape priority, and unparseable variants.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseDaySummaryFallbackKeys(t *testing.T) {
	raw := []byte(`{
		"date": "2024-03-10",
		"startTimestampGMT": "2024-03-10T06:00:00.0",
		"endTimestampGMT": "2024-03-11T06:00:00.0",
		"totalSteps": 8211,
		"restingHeartRate": 52
	}`)

	s, err := ParseDaySummary(raw)
	if err != nil {
		t.Fatalf("ParseDaySummary failed: %v", err)
	}
	if s.CalendarDate != "2024-03-10" {
		t.Errorf("CalendarDate = %q, want 2024-03-10", s.CalendarDate)
	}
	if s.WellnessStartTimeGmt != "2024-03-10T06:00:00.0" {
		t.Errorf("WellnessStartTimeGmt = %q", s.WellnessStartTimeGmt)
	}
	if s.TotalSteps == nil || *s.TotalSteps != 8211 {
		t.Errorf("TotalSteps = %v, want 8211", s.TotalSteps)
	}
	if s.SleepScore != nil {
		t.Errorf("SleepScore should be nil when absent, got %v", *s.SleepScore)
	}
}

func TestParseDaySummaryBatteryEventOffset(t *testing.T) {
	raw := []byte(`{
		"calendarDate": "2024-03-10",
		"bodyBatteryActivityEventList": [{"timezoneOffset": 7200000}]
	}`)

	s, err := ParseDaySummary(raw)
	if err != nil {
		t.Fatalf("ParseDaySummary failed: %v", err)
	}
	if s.TimezoneOffsetMs == nil || *s.TimezoneOffsetMs != 7200000 {
		t.Errorf("TimezoneOffsetMs = %v, want 7200000", s.TimezoneOffsetMs)
	}
}

func TestDecodePointPayloadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"preferred key", `{"heartRateValues": [[1710050400000, 61], [1710050460000, 62]]}`, 2},
		{"fallback key", `{"stressValuesArray": [[1710050400000, 25]]}`, 1},
		{"bare array", `[[1710050400000, 61]]`, 1},
		{"null entries skipped", `{"heartRateValues": [[1710050400000, 61], null]}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := DecodePointPayload([]byte(tt.raw), "heartRateValues")
			if err != nil {
				t.Fatalf("DecodePointPayload failed: %v", err)
			}
			if len(points) != tt.want {
				t.Errorf("got %d points, want %d", len(points), tt.want)
			}
		})
	}
}

func TestDecodePointPayloadNullValue(t *testing.T) {
	points, err := DecodePointPayload([]byte(`[[1710050400000, null]]`), "heartRateValues")
	if err != nil {
		t.Fatalf("DecodePointPayload failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].Value != nil {
		t.Errorf("expected nil value for null sample")
	}
}

func TestDecodePointPayloadUnparseable(t *testing.T) {
	_, err := DecodePointPayload([]byte(`{"something": 1}`), "heartRateValues")
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
	_, err = DecodePointPayload([]byte(`"nope"`), "heartRateValues")
	if !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable for scalar payload, got %v", err)
	}
}

func TestDecodeBatteryPayloadShapes(t *testing.T) {
	bare := []byte(`[[1710050400000, 80], [1710051300000, 75]]`)
	points, err := DecodeBatteryPayload(bare)
	if err != nil {
		t.Fatalf("bare array decode failed: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("bare array: got %d points, want 2", len(points))
	}

	wrapped := []byte(`[{"bodyBatteryValuesArray": [[1710050400000, 80]]}]`)
	points, err = DecodeBatteryPayload(wrapped)
	if err != nil {
		t.Fatalf("wrapped decode failed: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("wrapped: got %d points, want 1", len(points))
	}

	empty, err := DecodeBatteryPayload([]byte(`[]`))
	if err != nil {
		t.Fatalf("empty decode failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty: got %d points", len(empty))
	}

	if _, err := DecodeBatteryPayload([]byte(`{"not": "a list"}`)); !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable for object payload, got %v", err)
	}
}

func TestDecodeStepIntervals(t *testing.T) {
	raw := []byte(`[
		{"startGMT": "2024-03-10T06:00:00.0", "endGMT": "2024-03-10T06:15:00.0", "steps": 120, "primaryActivityLevel": "active"}
	]`)
	intervals, err := DecodeStepIntervals(raw)
	if err != nil {
		t.Fatalf("DecodeStepIntervals failed: %v", err)
	}
	if len(intervals) != 1 || intervals[0].Steps != 120 {
		t.Errorf("unexpected intervals: %+v", intervals)
	}

	if _, err := DecodeStepIntervals([]byte(`{"x":1}`)); !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable for object payload, got %v", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-03-10T06:00:00.0",
		"2024-03-10T06:00:00",
		"2024-03-10T06:00:00Z",
		"2024-03-10 06:00:00",
	} {
		got, err := ParseTimestamp(s)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) failed: %v", s, err)
		}
		want := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for garbage timestamp")
	}
}

func TestKindPaths(t *testing.T) {
	tests := []struct {
		kind Kind
		dir  string
		file string
	}{
		{KindSummary, "activities", "2024-03-10_summary.json"},
		{KindSteps, "activities", "2024-03-10_steps.json"},
		{KindHeartRate, "heart_rate", "2024-03-10_hr.json"},
		{KindStress, "stress", "2024-03-10_stress.json"},
		{KindSleep, "sleep", "2024-03-10_sleep.json"},
		{KindBodyBattery, "body_battery", "2024-03-10_battery.json"},
		{KindHydration, "hydration", "2024-03-10_hydration.json"},
	}
	for _, tt := range tests {
		if got := tt.kind.Dir(); got != tt.dir {
			t.Errorf("%s.Dir() = %q, want %q", tt.kind, got, tt.dir)
		}
		if got := tt.kind.Filename("2024-03-10"); got != tt.file {
			t.Errorf("%s.Filename() = %q, want %q", tt.kind, got, tt.file)
		}
	}
}
