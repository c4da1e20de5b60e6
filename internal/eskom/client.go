// Package eskom wraps the EskomSePush outage-schedule API. Every lookup
// degrades to a fixed fallback dataset instead of returning an error, and
// results are tagged with their source so callers can tell the difference.
package eskom

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/loadshare-sa/loadshare-backend/internal/config"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:     cfg.EskomAPIKey,
		baseURL:    cfg.EskomAPIURL,
		httpClient: &http.Client{Timeout: cfg.EskomTimeout},
	}
}

// SearchAreas forwards the query to the provider's area search; on any
// failure it filters the fixed in-memory area list instead.
func (c *Client) SearchAreas(ctx context.Context, text string) AreasResult {
	if c.apiKey == "" {
		return AreasResult{Areas: FallbackAreas(text), Source: SourceFallback, FallbackReason: "api key not configured"}
	}

	var parsed areasSearchResponse
	if err := c.get(ctx, "/areas_search?text="+url.QueryEscape(text), &parsed); err != nil {
		slog.Warn("area search failed, serving fallback areas", "query", text, "error", err)
		return AreasResult{Areas: FallbackAreas(text), Source: SourceFallback, FallbackReason: err.Error()}
	}

	areas := parsed.Areas
	if areas == nil {
		areas = []AreaInfo{}
	}
	return AreasResult{Areas: areas, Source: SourceLive}
}

// GetStatus fetches the outage status for one area. Failure is absorbed:
// the caller always gets a status, synthetic when the provider is down.
func (c *Client) GetStatus(ctx context.Context, areaID string) StatusResult {
	if c.apiKey == "" {
		return StatusResult{Status: FallbackStatus(areaID), Source: SourceFallback, FallbackReason: "api key not configured"}
	}

	var parsed areaResponse
	if err := c.get(ctx, "/area?id="+url.QueryEscape(areaID), &parsed); err != nil {
		slog.Warn("status lookup failed, serving fallback status", "area_id", areaID, "error", err)
		return StatusResult{Status: FallbackStatus(areaID), Source: SourceFallback, FallbackReason: err.Error()}
	}

	if parsed.Area.Name == "" {
		return StatusResult{Status: FallbackStatus(areaID), Source: SourceFallback, FallbackReason: "unexpected response shape"}
	}

	return StatusResult{Status: transformArea(&parsed), Source: SourceLive}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func transformArea(data *areaResponse) Status {
	status := Status{
		Area:    data.Area.Name,
		Updated: data.Area.Updated,
	}
	if status.Updated == "" {
		status.Updated = time.Now().Format(time.RFC3339)
	}

	if len(data.Events) > 0 {
		status.CurrentStage = data.Events[0].Stage
	}
	if len(data.Events) > 1 {
		status.NextStage = data.Events[1].Stage
	}

	if len(data.Schedule.Days) == 0 {
		status.Schedule = FallbackStatus("default").Schedule
		return status
	}

	status.Schedule = make([]Schedule, 0, len(data.Schedule.Days))
	for _, day := range data.Schedule.Days {
		sched := Schedule{Day: day.Date, Stages: make([]StageSchedule, 0, len(day.Stages))}
		for i, times := range day.Stages {
			if times == nil {
				times = []string{}
			}
			sched.Stages = append(sched.Stages, StageSchedule{Stage: i + 1, Times: times})
		}
		status.Schedule = append(status.Schedule, sched)
	}
	return status
}
