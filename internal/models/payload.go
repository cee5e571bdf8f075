// ABOUTME: Payload schemas for exported wellness JSON blobs.
// ABOUTME: Versioned decoders try known shapes in priority order.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnparseable marks a payload that matched none of the known shapes.
var ErrUnparseable = errors.New("payload matches no known shape")

// DaySummary is the per-day wellness summary blob. Scalar fields are nil
// when the source omits them.
type DaySummary struct {
	CalendarDate           string
	WellnessStartTimeLocal string
	WellnessStartTimeGmt   string
	WellnessEndTimeGmt     string
	TimezoneOffsetMs       *int64 // from the first body-battery activity event

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

type daySummaryJSON struct {
	CalendarDate           string `json:"calendarDate"`
	Date                   string `json:"date"`
	WellnessStartTimeLocal string `json:"wellnessStartTimeLocal"`
	WellnessStartTimeGmt   string `json:"wellnessStartTimeGmt"`
	StartTimestampGMT      string `json:"startTimestampGMT"`
	WellnessEndTimeGmt     string `json:"wellnessEndTimeGmt"`
	EndTimestampGMT        string `json:"endTimestampGMT"`

	BodyBatteryActivityEventList []batteryEvent `json:"bodyBatteryActivityEventList"`
	BodyBatteryActivityEvent     []batteryEvent `json:"bodyBatteryActivityEvent"`

	TotalSteps                 *float64 `json:"totalSteps"`
	TotalKilocalories          *float64 `json:"totalKilocalories"`
	ActiveKilocalories         *float64 `json:"activeKilocalories"`
	TotalDistanceMeters        *float64 `json:"totalDistanceMeters"`
	RestingHeartRate           *float64 `json:"restingHeartRate"`
	MinHeartRate               *float64 `json:"minHeartRate"`
	MaxHeartRate               *float64 `json:"maxHeartRate"`
	AverageStressLevel         *float64 `json:"averageStressLevel"`
	BodyBatteryAtWakeTime      *float64 `json:"bodyBatteryAtWakeTime"`
	BodyBatteryMostRecentValue *float64 `json:"bodyBatteryMostRecentValue"`
	SleepingSeconds            *float64 `json:"sleepingSeconds"`
	DeepSleepSeconds           *float64 `json:"deepSleepSeconds"`
	LightSleepSeconds          *float64 `json:"lightSleepSeconds"`
	RemSleepSeconds            *float64 `json:"remSleepSeconds"`
	SleepScore                 *float64 `json:"sleepScore"`
}

type batteryEvent struct {
	TimezoneOffset *int64 `json:"timezoneOffset"`
}

// ParseDaySummary decodes a summary blob, resolving fallback keys.
func ParseDaySummary(raw []byte) (*DaySummary, error) {
	var j daySummaryJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}

	s := &DaySummary{
		CalendarDate:           firstNonEmpty(j.CalendarDate, j.Date),
		WellnessStartTimeLocal: j.WellnessStartTimeLocal,
		WellnessStartTimeGmt:   firstNonEmpty(j.WellnessStartTimeGmt, j.StartTimestampGMT),
		WellnessEndTimeGmt:     firstNonEmpty(j.WellnessEndTimeGmt, j.EndTimestampGMT),

		TotalSteps:                 j.TotalSteps,
		TotalKilocalories:          j.TotalKilocalories,
		ActiveKilocalories:         j.ActiveKilocalories,
		TotalDistanceMeters:        j.TotalDistanceMeters,
		RestingHeartRate:           j.RestingHeartRate,
		MinHeartRate:               j.MinHeartRate,
		MaxHeartRate:               j.MaxHeartRate,
		AverageStressLevel:         j.AverageStressLevel,
		BodyBatteryAtWakeTime:      j.BodyBatteryAtWakeTime,
		BodyBatteryMostRecentValue: j.BodyBatteryMostRecentValue,
		SleepingSeconds:            j.SleepingSeconds,
		DeepSleepSeconds:           j.DeepSleepSeconds,
		LightSleepSeconds:          j.LightSleepSeconds,
		RemSleepSeconds:            j.RemSleepSeconds,
		SleepScore:                 j.SleepScore,
	}

	events := j.BodyBatteryActivityEventList
	if len(events) == 0 {
		events = j.BodyBatteryActivityEvent
	}
	if len(events) > 0 && events[0].TimezoneOffset != nil {
		s.TimezoneOffsetMs = events[0].TimezoneOffset
	}
	return s, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// StepInterval is one counter interval from the steps artifact.
type StepInterval struct {
	StartGMT             string  `json:"startGMT"`
	EndGMT               string  `json:"endGMT"`
	Steps                float64 `json:"steps"`
	PrimaryActivityLevel string  `json:"primaryActivityLevel"`
}

// DecodeStepIntervals decodes the steps artifact (a bare interval array).
func DecodeStepIntervals(raw []byte) ([]StepInterval, error) {
	var intervals []StepInterval
	if err := json.Unmarshal(raw, &intervals); err != nil {
		return nil, fmt.Errorf("steps: %w", ErrUnparseable)
	}
	return intervals, nil
}

// SleepMovement is one bucketed interval of sleep movement.
type SleepMovement struct {
	StartGMT      string  `json:"startGMT"`
	EndGMT        string  `json:"endGMT"`
	ActivityLevel float64 `json:"activityLevel"`
}

type sleepPayload struct {
	SleepMovement []SleepMovement `json:"sleepMovement"`
}

// DecodeSleepMovement decodes the sleep artifact's movement buckets.
func DecodeSleepMovement(raw []byte) ([]SleepMovement, error) {
	var p sleepPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("sleep: %w", ErrUnparseable)
	}
	return p.SleepMovement, nil
}

// SamplePoint is one [epoch_ms, value] pair. Value is nil when the source
// recorded a null sample.
type SamplePoint struct {
	EpochMs int64
	Value   *float64
}

// UnmarshalJSON decodes the two-element pair form.
func (p *SamplePoint) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) < 2 || pair[0] == nil {
		return fmt.Errorf("sample pair needs [epoch_ms, value]")
	}
	p.EpochMs = int64(*pair[0])
	p.Value = pair[1]
	return nil
}

// Time returns the sample instant in the given location.
func (p SamplePoint) Time(loc *time.Location) time.Time {
	return time.UnixMilli(p.EpochMs).In(loc)
}

// DecodePointPayload decodes a point-sample artifact. Shapes are tried in
// priority order: object carrying the preferred key, object carrying one of
// the known fallback keys, then the payload itself as a bare pair array.
func DecodePointPayload(raw []byte, preferredKey string) ([]SamplePoint, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{preferredKey, "heartRateValues", "stressValuesArray"} {
			inner, ok := obj[key]
			if !ok || string(inner) == "null" {
				continue
			}
			return decodeSamplePairs(inner)
		}
		return nil, fmt.Errorf("point payload %q: %w", preferredKey, ErrUnparseable)
	}

	points, err := decodeSamplePairs(raw)
	if err != nil {
		return nil, fmt.Errorf("point payload %q: %w", preferredKey, ErrUnparseable)
	}
	return points, nil
}

// DecodeBatteryPayload decodes a body-battery artifact: either a bare pair
// array, or an array whose first element wraps bodyBatteryValuesArray.
func DecodeBatteryPayload(raw []byte) ([]SamplePoint, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("battery payload: %w", ErrUnparseable)
	}
	if len(elems) == 0 {
		return nil, nil
	}

	var wrapper struct {
		BodyBatteryValuesArray []json.RawMessage `json:"bodyBatteryValuesArray"`
	}
	if err := json.Unmarshal(elems[0], &wrapper); err == nil {
		points := make([]SamplePoint, 0, len(wrapper.BodyBatteryValuesArray))
		for _, e := range wrapper.BodyBatteryValuesArray {
			var p SamplePoint
			if err := json.Unmarshal(e, &p); err != nil {
				continue
			}
			points = append(points, p)
		}
		return points, nil
	}

	return decodeSamplePairs(raw)
}

func decodeSamplePairs(raw []byte) ([]SamplePoint, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	points := make([]SamplePoint, 0, len(elems))
	for _, e := range elems {
		if string(e) == "null" {
			continue
		}
		var p SamplePoint
		if err := json.Unmarshal(e, &p); err != nil {
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

// timestampLayouts are the wall-clock formats seen in wellness exports.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.0",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a wellness timestamp string. Naive timestamps are
// taken as UTC wall clock; callers convert to local via the day's offset.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
