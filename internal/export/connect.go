// ABOUTME: Thin HTTP client for the wellness account API.
// ABOUTME: Bearer-token auth only; no retry, no session refresh.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://connectapi.garmin.com"

// ConnectClient talks to the hosted wellness API. It implements Client
// plus the BodyBatteryProvider and WellnessProvider capabilities, so
// the exporter has a fallback when the dedicated battery endpoint is
// unavailable for an account.
type ConnectClient struct {
	base        string
	token       string
	displayName string
	http        *http.Client
}

func NewConnectClient(token, displayName string) *ConnectClient {
	return &ConnectClient{
		base:        defaultBaseURL,
		token:       token,
		displayName: displayName,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *ConnectClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %s", path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	return json.RawMessage(body), nil
}

func (c *ConnectClient) UserSummary(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/usersummary-service/usersummary/daily/%s?calendarDate=%s",
		url.PathEscape(c.displayName), date))
}

func (c *ConnectClient) StepsData(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/wellness-service/wellness/dailySummaryChart/%s?date=%s",
		url.PathEscape(c.displayName), date))
}

func (c *ConnectClient) HeartRates(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/wellness-service/wellness/dailyHeartRate/%s?date=%s",
		url.PathEscape(c.displayName), date))
}

func (c *ConnectClient) StressData(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, "/wellness-service/wellness/dailyStress/"+date)
}

func (c *ConnectClient) SleepData(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/wellness-service/wellness/dailySleepData/%s?date=%s&nonSleepBufferMinutes=60",
		url.PathEscape(c.displayName), date))
}

func (c *ConnectClient) HydrationData(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, "/usersummary-service/usersummary/hydration/daily/"+date)
}

func (c *ConnectClient) UserProfile(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/userprofile-service/socialProfile")
}

func (c *ConnectClient) DeviceLastUsed(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/device-service/deviceservice/mylastused")
}

func (c *ConnectClient) BodyComposition(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/weight-service/weight/latest")
}

func (c *ConnectClient) Activities(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/activitylist-service/activities/search/activities?start=%d&limit=%d", start, limit))
}

// BodyBatteryData implements BodyBatteryProvider.
func (c *ConnectClient) BodyBatteryData(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/wellness-service/wellness/bodyBattery/reports/daily?startDate=%s&endDate=%s", date, date))
}

// Wellness implements WellnessProvider.
func (c *ConnectClient) Wellness(ctx context.Context, date string) (json.RawMessage, error) {
	return c.get(ctx, "/wellness-service/wellness/daily/"+date)
}
