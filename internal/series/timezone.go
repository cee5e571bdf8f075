// ABOUTME: Resolves the fixed local-time offset for one calendar day.
// ABOUTME: Tries wellness timestamp pairs, then battery event offsets, then UTC.
package series

import (
	"fmt"
	"math"
	"time"

	"github.com/akeil/wellkit/internal/models"
)

// ResolveLocation infers the day's local offset from its summary blob.
// Priority: the local/GMT wellness start pair difference, then the first
// body-battery activity event's timezoneOffset (milliseconds), then UTC.
// The result is a fixed offset, which is how the source data itself
// represents local time.
func ResolveLocation(s *models.DaySummary) *time.Location {
	if s == nil {
		return time.UTC
	}

	if s.WellnessStartTimeLocal != "" && s.WellnessStartTimeGmt != "" {
		local, lerr := models.ParseTimestamp(s.WellnessStartTimeLocal)
		gmt, gerr := models.ParseTimestamp(s.WellnessStartTimeGmt)
		if lerr == nil && gerr == nil {
			secs := int(math.Round(local.Sub(gmt).Seconds()))
			return fixedZone(secs)
		}
	}

	if s.TimezoneOffsetMs != nil {
		return fixedZone(int(*s.TimezoneOffsetMs / 1000))
	}

	return time.UTC
}

func fixedZone(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone(offsetName(offsetSeconds), offsetSeconds)
}

func offsetName(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offsetSeconds/3600, (offsetSeconds%3600)/60)
}
