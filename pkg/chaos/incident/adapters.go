package incident

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FromPagerDutyLike lowers a PagerDuty-shaped incident payload:
// {incident:{id, created_at, resolved_at}, log_entries:[{created_at, summary}]}.
// Any log entry whose lowercased summary contains "error" becomes an
// ErrorRateIncrease{rate:0.5, error_codes:[500]} at its timestamp.
// A missing resolved_at defaults to now.
func FromPagerDutyLike(raw []byte) (IncidentTimeline, error) {
	var doc struct {
		Incident struct {
			ID         string `json:"id"`
			CreatedAt  string `json:"created_at"`
			ResolvedAt string `json:"resolved_at"`
		} `json:"incident"`
		LogEntries []struct {
			CreatedAt string `json:"created_at"`
			Summary   string `json:"summary"`
		} `json:"log_entries"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return IncidentTimeline{}, fmt.Errorf("pagerduty-like adapter: %w", err)
	}
	if doc.Incident.ID == "" {
		return IncidentTimeline{}, fmt.Errorf("pagerduty-like adapter: incident.id is required")
	}

	start, err := time.Parse(time.RFC3339, doc.Incident.CreatedAt)
	if err != nil {
		return IncidentTimeline{}, fmt.Errorf("pagerduty-like adapter: incident.created_at: %w", err)
	}

	end := timeNow()
	if doc.Incident.ResolvedAt != "" {
		end, err = time.Parse(time.RFC3339, doc.Incident.ResolvedAt)
		if err != nil {
			return IncidentTimeline{}, fmt.Errorf("pagerduty-like adapter: incident.resolved_at: %w", err)
		}
	}

	var events []IncidentEvent
	for _, entry := range doc.LogEntries {
		ts, err := time.Parse(time.RFC3339, entry.CreatedAt)
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(entry.Summary), "error") {
			continue
		}
		events = append(events, IncidentEvent{
			Timestamp: ts,
			EventType: ErrorRateIncrease{Rate: 0.5, ErrorCodes: []uint16{500}},
		})
	}

	return IncidentTimeline{
		IncidentID: doc.Incident.ID,
		StartTime:  start,
		EndTime:    end,
		Events:     events,
	}, nil
}

// FromDatadogLike lowers a Datadog-shaped incident payload:
// {id, created(ms epoch), resolved(ms epoch)?, metrics:[{metric, points:[[epoch,value],...]}]}.
// A metric name containing "latency" or "duration" emits
// LatencySpike{latency_ms: value*1000}; "error" or "status" emits
// ErrorRateIncrease{rate: clamp(value,0,1)}.
func FromDatadogLike(raw []byte) (IncidentTimeline, error) {
	var doc struct {
		ID       string `json:"id"`
		Created  *int64 `json:"created"`
		Resolved *int64 `json:"resolved"`
		Metrics  []struct {
			Metric string      `json:"metric"`
			Points [][]float64 `json:"points"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return IncidentTimeline{}, fmt.Errorf("datadog-like adapter: %w", err)
	}
	if doc.ID == "" {
		return IncidentTimeline{}, fmt.Errorf("datadog-like adapter: id is required")
	}
	if doc.Created == nil {
		return IncidentTimeline{}, fmt.Errorf("datadog-like adapter: created is required")
	}

	start := time.UnixMilli(*doc.Created).UTC()
	end := timeNow()
	if doc.Resolved != nil {
		end = time.UnixMilli(*doc.Resolved).UTC()
	}

	var events []IncidentEvent
	for _, m := range doc.Metrics {
		name := strings.ToLower(m.Metric)
		isLatency := strings.Contains(name, "latency") || strings.Contains(name, "duration")
		isError := strings.Contains(name, "error") || strings.Contains(name, "status")
		if !isLatency && !isError {
			continue
		}
		for _, point := range m.Points {
			if len(point) != 2 {
				continue
			}
			ts := time.UnixMilli(int64(point[0] * 1000)).UTC()
			value := point[1]
			if isLatency {
				events = append(events, IncidentEvent{
					Timestamp: ts,
					EventType: LatencySpike{LatencyMs: uint64(value * 1000.0)},
				})
			} else {
				events = append(events, IncidentEvent{
					Timestamp: ts,
					EventType: ErrorRateIncrease{Rate: clamp01(value)},
				})
			}
		}
	}

	return IncidentTimeline{
		IncidentID: doc.ID,
		StartTime:  start,
		EndTime:    end,
		Events:     events,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// timeNow is the "now" used by adapters when a resolution time is
// absent. It is a package variable (not a direct time.Now() call) so
// tests can stub it deterministically.
var timeNow = func() time.Time { return time.Now().UTC() }
