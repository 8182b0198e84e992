package incident

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func TestGenerateScenarioLatencySpikeReplay(t *testing.T) {
	start := mustParse(t, "2025-01-01T00:00:00Z")
	end := mustParse(t, "2025-01-01T00:02:00Z")
	spikeAt := mustParse(t, "2025-01-01T00:00:15Z")
	durationSecs := uint64(45)

	timeline := IncidentTimeline{
		IncidentID: "inc-1",
		StartTime:  start,
		EndTime:    end,
		Events: []IncidentEvent{
			{Timestamp: spikeAt, EventType: LatencySpike{LatencyMs: 500, DurationSeconds: &durationSecs}},
		},
	}

	gen := NewGenerator(nil)
	out, err := gen.GenerateScenario(timeline)
	if err != nil {
		t.Fatalf("GenerateScenario: %v", err)
	}
	if len(out.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(out.Steps))
	}
	step := out.Steps[0]
	if step.DelayBeforeSecs != 0 {
		t.Fatalf("expected delay_before_secs=0, got %d", step.DelayBeforeSecs)
	}
	if step.Scenario.DurationSecs == nil || *step.Scenario.DurationSecs != 45 {
		t.Fatalf("expected duration 45, got %v", step.Scenario.DurationSecs)
	}
	cfg := step.Scenario.Config
	if cfg.Latency == nil {
		t.Fatalf("expected latency config to be set")
	}
	if cfg.Latency.FixedDelayMs == nil || *cfg.Latency.FixedDelayMs != 500 {
		t.Fatalf("expected fixed_delay_ms=500, got %v", cfg.Latency.FixedDelayMs)
	}
	if cfg.Latency.Probability != 1.0 {
		t.Fatalf("expected probability=1.0, got %v", cfg.Latency.Probability)
	}
	if cfg.FaultInjection != nil {
		t.Fatalf("expected no fault injection config, got %+v", cfg.FaultInjection)
	}
}

func TestGenerateScenarioZeroEventsYieldsZeroSteps(t *testing.T) {
	start := mustParse(t, "2025-01-01T00:00:00Z")
	end := mustParse(t, "2025-01-01T00:02:00Z")
	timeline := IncidentTimeline{IncidentID: "inc-empty", StartTime: start, EndTime: end}

	gen := NewGenerator(nil)
	out, err := gen.GenerateScenario(timeline)
	if err != nil {
		t.Fatalf("GenerateScenario: %v", err)
	}
	if len(out.Steps) != 0 {
		t.Fatalf("expected 0 steps, got %d", len(out.Steps))
	}
}

func TestGenerateScenarioBoundaryEventBelongsToLaterWindow(t *testing.T) {
	start := mustParse(t, "2025-01-01T00:00:00Z")
	end := mustParse(t, "2025-01-01T00:05:00Z")
	onBoundary := mustParse(t, "2025-01-01T00:00:30Z")

	timeline := IncidentTimeline{
		IncidentID: "inc-boundary",
		StartTime:  start,
		EndTime:    end,
		Events: []IncidentEvent{
			{Timestamp: onBoundary, EventType: ErrorRateIncrease{Rate: 0.5}},
		},
	}

	gen := NewGenerator(nil)
	out, err := gen.GenerateScenario(timeline)
	if err != nil {
		t.Fatalf("GenerateScenario: %v", err)
	}
	if len(out.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(out.Steps))
	}
	if out.Steps[0].DelayBeforeSecs != 30 {
		t.Fatalf("event on window boundary should belong to the later window (delay 30), got %d", out.Steps[0].DelayBeforeSecs)
	}
}

func TestFromPagerDutyLikeExtractsErrorEntries(t *testing.T) {
	raw := []byte(`{
		"incident": {"id": "PD123", "created_at": "2025-01-01T00:00:00Z", "resolved_at": "2025-01-01T01:00:00Z"},
		"log_entries": [
			{"created_at": "2025-01-01T00:05:00Z", "summary": "Database Error detected"},
			{"created_at": "2025-01-01T00:06:00Z", "summary": "all systems nominal"}
		]
	}`)
	timeline, err := FromPagerDutyLike(raw)
	if err != nil {
		t.Fatalf("FromPagerDutyLike: %v", err)
	}
	if timeline.IncidentID != "PD123" {
		t.Fatalf("expected incident id PD123, got %s", timeline.IncidentID)
	}
	if len(timeline.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(timeline.Events))
	}
	eri, ok := timeline.Events[0].EventType.(ErrorRateIncrease)
	if !ok {
		t.Fatalf("expected ErrorRateIncrease, got %T", timeline.Events[0].EventType)
	}
	if eri.Rate != 0.5 {
		t.Fatalf("expected rate 0.5, got %v", eri.Rate)
	}
}

func TestFromDatadogLikeExtractsLatencyAndError(t *testing.T) {
	raw := []byte(`{
		"id": "dd-1",
		"created": 1735689600000,
		"resolved": 1735693200000,
		"metrics": [
			{"metric": "service.request.latency", "points": [[1735689660, 0.25]]},
			{"metric": "service.request.error_rate", "points": [[1735689720, 0.8]]}
		]
	}`)
	timeline, err := FromDatadogLike(raw)
	if err != nil {
		t.Fatalf("FromDatadogLike: %v", err)
	}
	if len(timeline.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(timeline.Events))
	}
	spike, ok := timeline.Events[0].EventType.(LatencySpike)
	if !ok || spike.LatencyMs != 250 {
		t.Fatalf("expected LatencySpike{250ms}, got %+v", timeline.Events[0].EventType)
	}
	eri, ok := timeline.Events[1].EventType.(ErrorRateIncrease)
	if !ok || eri.Rate != 0.8 {
		t.Fatalf("expected ErrorRateIncrease{0.8}, got %+v", timeline.Events[1].EventType)
	}
}
