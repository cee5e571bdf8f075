// ABOUTME: Per-metric normalizers converting raw payloads to bucket maps.
// ABOUTME: Counter redistribution, bucket means, level repetition, nearest-fill.
package series

import (
	"sort"
	"time"

	"github.com/akeil/wellkit/internal/models"
)

// Buckets holds one metric's normalized series before reindexing: values
// and raw-observation presence keyed by bucket instant. Presence reflects
// the original sample density, never any fill applied afterwards.
type Buckets struct {
	Values  map[int64]float64
	Present map[int64]bool
}

func newBuckets() Buckets {
	return Buckets{
		Values:  make(map[int64]float64),
		Present: make(map[int64]bool),
	}
}

// NormalizeSteps redistributes counter intervals evenly across their whole
// minutes. Whole minutes come from integer truncation of elapsed seconds;
// intervals shorter than one minute are dropped (nothing to redistribute).
func NormalizeSteps(intervals []models.StepInterval, loc *time.Location, freq time.Duration) map[int64]float64 {
	out := make(map[int64]float64)
	for _, iv := range intervals {
		start, n := intervalMinutes(iv.StartGMT, iv.EndGMT, loc)
		if n <= 0 {
			continue
		}
		perMin := iv.Steps / float64(n)
		for i := 0; i < n; i++ {
			out[timeKey(start.Add(time.Duration(i)*freq))] = perMin
		}
	}
	return out
}

// NormalizeActivityLevels repeats each interval's activity label across
// the interval's whole minutes, mirroring the steps redistribution rule.
func NormalizeActivityLevels(intervals []models.StepInterval, loc *time.Location, freq time.Duration) map[int64]string {
	out := make(map[int64]string)
	for _, iv := range intervals {
		start, n := intervalMinutes(iv.StartGMT, iv.EndGMT, loc)
		if n <= 0 {
			continue
		}
		for i := 0; i < n; i++ {
			out[timeKey(start.Add(time.Duration(i)*freq))] = iv.PrimaryActivityLevel
		}
	}
	return out
}

// NormalizeSleepMovement repeats each bucket's activity level across its
// whole minutes. The value is a level, not a count, so it is not divided.
func NormalizeSleepMovement(moves []models.SleepMovement, loc *time.Location, freq time.Duration) map[int64]float64 {
	out := make(map[int64]float64)
	for _, mv := range moves {
		start, n := intervalMinutes(mv.StartGMT, mv.EndGMT, loc)
		if n <= 0 {
			continue
		}
		for i := 0; i < n; i++ {
			out[timeKey(start.Add(time.Duration(i)*freq))] = mv.ActivityLevel
		}
	}
	return out
}

// intervalMinutes parses an interval's bounds, converts to local, and
// returns the local start plus the whole-minute count.
func intervalMinutes(startGMT, endGMT string, loc *time.Location) (time.Time, int) {
	start, err := models.ParseTimestamp(startGMT)
	if err != nil {
		return time.Time{}, 0
	}
	end, err := models.ParseTimestamp(endGMT)
	if err != nil {
		return time.Time{}, 0
	}
	n := int(end.Sub(start).Seconds()) / 60
	return start.In(loc), n
}

// NormalizePoints groups irregular point samples into target-frequency
// buckets: value = mean of the bucket's samples, presence = at least one
// sample fell in the bucket. Null-valued samples are skipped.
func NormalizePoints(points []models.SamplePoint, loc *time.Location, freq time.Duration) Buckets {
	b := newBuckets()
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, p := range points {
		if p.Value == nil {
			continue
		}
		k := timeKey(floorToBucket(p.Time(loc), freq, loc))
		sums[k] += *p.Value
		counts[k]++
	}
	for k, c := range counts {
		b.Values[k] = sums[k] / float64(c)
		b.Present[k] = true
	}
	return b
}

// NormalizeBattery resamples sparse samples to the target frequency by
// carrying the nearest observation within one bucket width, then forward
// fills remaining gaps across the sampled span. Presence comes from the
// raw sample density, computed before the forward fill.
func NormalizeBattery(points []models.SamplePoint, loc *time.Location, freq time.Duration) Buckets {
	b := newBuckets()

	samples := make([]models.SamplePoint, 0, len(points))
	for _, p := range points {
		if p.Value != nil {
			samples = append(samples, p)
		}
	}
	if len(samples) == 0 {
		return b
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].EpochMs < samples[j].EpochMs })

	for _, p := range samples {
		b.Present[timeKey(floorToBucket(p.Time(loc), freq, loc))] = true
	}

	first := floorToBucket(samples[0].Time(loc), freq, loc)
	last := floorToBucket(samples[len(samples)-1].Time(loc), freq, loc)

	carried := 0.0
	haveCarried := false
	si := 0
	for bt := first; !bt.After(last); bt = bt.Add(freq) {
		for si+1 < len(samples) && absDuration(samples[si+1].Time(loc).Sub(bt)) <= absDuration(samples[si].Time(loc).Sub(bt)) {
			si++
		}
		nearest := samples[si]
		if absDuration(nearest.Time(loc).Sub(bt)) <= freq {
			carried = *nearest.Value
			haveCarried = true
		}
		if haveCarried {
			b.Values[timeKey(bt)] = carried
		}
	}
	return b
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
