// ABOUTME: Client capability interfaces for the remote wellness account.
// ABOUTME: Optional capabilities back the prioritized body-battery strategies.
package export

import (
	"context"
	"encoding/json"
)

// Client is the remote account the exporter pulls from. Every method
// returns the raw JSON payload; the exporter never interprets it.
type Client interface {
	UserSummary(ctx context.Context, date string) (json.RawMessage, error)
	StepsData(ctx context.Context, date string) (json.RawMessage, error)
	SleepData(ctx context.Context, date string) (json.RawMessage, error)
	StressData(ctx context.Context, date string) (json.RawMessage, error)
	HeartRates(ctx context.Context, date string) (json.RawMessage, error)
	HydrationData(ctx context.Context, date string) (json.RawMessage, error)

	UserProfile(ctx context.Context) (json.RawMessage, error)
	DeviceLastUsed(ctx context.Context) (json.RawMessage, error)
	BodyComposition(ctx context.Context) (json.RawMessage, error)
	Activities(ctx context.Context, start, limit int) (json.RawMessage, error)
}

// BodyBatteryProvider is the preferred body-battery capability.
type BodyBatteryProvider interface {
	BodyBatteryData(ctx context.Context, date string) (json.RawMessage, error)
}

// WellnessProvider serves body battery through the broader wellness blob
// on accounts where the dedicated endpoint is unavailable.
type WellnessProvider interface {
	Wellness(ctx context.Context, date string) (json.RawMessage, error)
}

// StatsProvider is the last-resort body-battery capability.
type StatsProvider interface {
	Stats(ctx context.Context, date string) (json.RawMessage, error)
}

// BatteryStrategy is one named way of fetching body-battery data.
type BatteryStrategy struct {
	Name  string
	Fetch func(ctx context.Context, date string) (json.RawMessage, error)
}

// BatteryStrategies returns the strategies the client supports, in
// priority order. Capabilities are declared through interfaces and
// checked once here, not probed per call.
func BatteryStrategies(c Client) []BatteryStrategy {
	var strategies []BatteryStrategy
	if p, ok := c.(BodyBatteryProvider); ok {
		strategies = append(strategies, BatteryStrategy{Name: "body_battery", Fetch: p.BodyBatteryData})
	}
	if p, ok := c.(WellnessProvider); ok {
		strategies = append(strategies, BatteryStrategy{Name: "wellness", Fetch: p.Wellness})
	}
	if p, ok := c.(StatsProvider); ok {
		strategies = append(strategies, BatteryStrategy{Name: "stats", Fetch: p.Stats})
	}
	return strategies
}
