// ABOUTME: MCP resource implementations over the wellness dataset.
// ABOUTME: Provides wellness://summary, wellness://latest, and wellness://coverage.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// wellness://summary - daily summary table for all days
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wellness://summary",
		Name:        "Daily Summary Table",
		Description: "Whitelisted daily summary scalars for every reconstructed day",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// wellness://latest - most recent day's summary
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wellness://latest",
		Name:        "Latest Day Summary",
		Description: "Summary scalars for the most recent reconstructed day",
		MIMEType:    "application/json",
	}, s.handleLatestResource)

	// wellness://coverage - per-day sensor coverage
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wellness://coverage",
		Name:        "Sensor Coverage",
		Description: "Per-day counts of minutes with real sensor samples",
		MIMEType:    "application/json",
	}, s.handleCoverageResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	days := make([]dailySummaryOutput, 0, len(s.ds.Summaries))
	for _, row := range s.ds.Summaries {
		days = append(days, dailySummaryOutput{
			CalendarDate: row.CalendarDate,
			Fields:       summaryFields(row),
		})
	}

	return jsonResource("wellness://summary", map[string]interface{}{
		"days":  days,
		"count": len(days),
	})
}

func (s *Server) handleLatestResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if len(s.ds.Summaries) == 0 {
		return jsonResource("wellness://latest", map[string]interface{}{})
	}
	row := s.ds.Summaries[len(s.ds.Summaries)-1]
	return jsonResource("wellness://latest", dailySummaryOutput{
		CalendarDate: row.CalendarDate,
		Fields:       summaryFields(row),
	})
}

func (s *Server) handleCoverageResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	type coverage struct {
		Minutes     int `json:"minutes"`
		Steps       int `json:"steps"`
		HeartRate   int `json:"heart_rate"`
		Stress      int `json:"stress"`
		Sleep       int `json:"sleep"`
		BodyBattery int `json:"body_battery"`
	}

	byDay := map[string]*coverage{}
	var order []string
	for _, row := range s.ds.Minutes {
		c, ok := byDay[row.CalendarDate]
		if !ok {
			c = &coverage{}
			byDay[row.CalendarDate] = c
			order = append(order, row.CalendarDate)
		}
		c.Minutes++
		if row.StepsPresent {
			c.Steps++
		}
		if row.HeartRatePresent {
			c.HeartRate++
		}
		if row.StressPresent {
			c.Stress++
		}
		if !math.IsNaN(row.SleepMovement) {
			c.Sleep++
		}
		if row.BodyBatteryPresent {
			c.BodyBattery++
		}
	}

	days := make([]map[string]interface{}, 0, len(order))
	for _, date := range order {
		days = append(days, map[string]interface{}{
			"calendar_date": date,
			"coverage":      byDay[date],
		})
	}
	return jsonResource("wellness://coverage", map[string]interface{}{"days": days})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
