// ABOUTME: Kind enum for wellness export artifacts.
// ABOUTME: Maps each kind to its directory and per-day filename.
package models

import "fmt"

// Kind identifies one family of exported wellness data.
type Kind string

const (
	KindSummary     Kind = "summary"
	KindSteps       Kind = "steps"
	KindHeartRate   Kind = "heart_rate"
	KindStress      Kind = "stress"
	KindSleep       Kind = "sleep"
	KindBodyBattery Kind = "body_battery"
	KindHydration   Kind = "hydration"
)

// AllKinds returns every artifact kind in export order.
var AllKinds = []Kind{
	KindSummary, KindSteps, KindSleep, KindStress,
	KindBodyBattery, KindHydration, KindHeartRate,
}

// Dir returns the directory under the export root holding this kind.
func (k Kind) Dir() string {
	switch k {
	case KindSummary, KindSteps:
		return "activities"
	case KindHeartRate:
		return "heart_rate"
	case KindStress:
		return "stress"
	case KindSleep:
		return "sleep"
	case KindBodyBattery:
		return "body_battery"
	case KindHydration:
		return "hydration"
	}
	return string(k)
}

// Filename returns the per-day artifact filename for this kind.
func (k Kind) Filename(date string) string {
	switch k {
	case KindSummary:
		return fmt.Sprintf("%s_summary.json", date)
	case KindSteps:
		return fmt.Sprintf("%s_steps.json", date)
	case KindHeartRate:
		return fmt.Sprintf("%s_hr.json", date)
	case KindStress:
		return fmt.Sprintf("%s_stress.json", date)
	case KindSleep:
		return fmt.Sprintf("%s_sleep.json", date)
	case KindBodyBattery:
		return fmt.Sprintf("%s_battery.json", date)
	case KindHydration:
		return fmt.Sprintf("%s_hydration.json", date)
	}
	return fmt.Sprintf("%s_%s.json", date, k)
}

// IsValidKind checks if a string names a known artifact kind.
func IsValidKind(s string) bool {
	for _, k := range AllKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}
