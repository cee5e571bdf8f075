// ABOUTME: Uniform minute-resolution timestamp grid for one day.
// ABOUTME: Built from the day's local window; end exclusive.
package series

import "time"

// MinuteIndex is the ordered, fixed-frequency timestamp grid a day's
// series are aligned to. It is deterministic given the window and
// frequency, and never shared across days.
type MinuteIndex struct {
	Start time.Time
	Freq  time.Duration
	N     int
}

// NewMinuteIndex builds the grid spanning [start, end) at freq.
func NewMinuteIndex(start, end time.Time, freq time.Duration) MinuteIndex {
	if freq <= 0 {
		freq = time.Minute
	}
	n := 0
	if end.After(start) {
		n = int(end.Sub(start) / freq)
	}
	return MinuteIndex{Start: start, Freq: freq, N: n}
}

// At returns the instant at position i.
func (m MinuteIndex) At(i int) time.Time {
	return m.Start.Add(time.Duration(i) * m.Freq)
}

// Len returns the number of grid positions.
func (m MinuteIndex) Len() int {
	return m.N
}

// Slot returns the grid position of an instant, or false when the instant
// does not land exactly on the grid. Reindexing is exact-instant matching.
func (m MinuteIndex) Slot(t time.Time) (int, bool) {
	d := t.Sub(m.Start)
	if d < 0 || d%m.Freq != 0 {
		return 0, false
	}
	i := int(d / m.Freq)
	if i >= m.N {
		return 0, false
	}
	return i, true
}

// timeKey keys bucket maps by absolute instant. Instants compare by the
// moment they describe, not by zone, so UnixNano is the canonical form.
func timeKey(t time.Time) int64 {
	return t.UnixNano()
}

// floorToBucket floors an instant to its bucket start on the local wall
// clock. With fixed-offset zones this keeps buckets aligned to local
// midnight even when the offset is not a whole multiple of the frequency.
func floorToBucket(t time.Time, freq time.Duration, loc *time.Location) time.Time {
	local := t.In(loc)
	_, off := local.Zone()
	shift := time.Duration(off) * time.Second
	return local.Add(shift).Truncate(freq).Add(-shift).In(loc)
}
