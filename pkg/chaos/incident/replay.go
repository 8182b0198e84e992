package incident

import (
	"fmt"
	"time"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
	"github.com/mockforge/mockforge-chaos/pkg/reporting"
)

const windowSize = 30 * time.Second

// defaultWindowDuration is the minimum scenario duration given to a
// window with no bounded latency spike.
const defaultWindowDuration = 30

// defaultStatusCodes is used when a window produces no status codes
// of its own.
var defaultStatusCodes = []uint16{500, 502, 503, 504}

// minDelayFloorMs is the floor applied to any observed latency spike
// below 100ms (spec design note (b)): propagated silently per value,
// logged only when the floor actually changes something.
const minDelayFloorMs = 100

// Generator lowers an IncidentTimeline into an OrchestratedScenario.
type Generator struct {
	logger *reporting.Logger
}

// NewGenerator returns a Generator. A nil logger disables clamp
// logging.
func NewGenerator(logger *reporting.Logger) *Generator {
	return &Generator{logger: logger}
}

// GenerateScenario buckets timeline's events into fixed 30-second
// windows and lowers each window to a ChaosConfig, wrapping the result
// as an OrchestratedScenario tagged "incident-replay" plus the
// incident ID.
func (g *Generator) GenerateScenario(timeline IncidentTimeline) (scenario.OrchestratedScenario, error) {
	if err := timeline.Validate(); err != nil {
		return scenario.OrchestratedScenario{}, err
	}

	windows := groupEventsByWindow(timeline)

	out := scenario.NewOrchestratedScenario(fmt.Sprintf("replay_%s", timeline.IncidentID)).
		WithDescription(fmt.Sprintf("replay of incident %s", timeline.IncidentID)).
		WithTags("incident-replay", timeline.IncidentID)

	for _, w := range windows {
		cfg := g.createChaosConfigForEvents(w.events)
		cs, err := scenario.NewChaosScenario(fmt.Sprintf("window_%d", w.index), cfg)
		if err != nil {
			return scenario.OrchestratedScenario{}, fmt.Errorf("incident replay: window %d: %w", w.index, err)
		}
		cs = cs.WithDuration(calculateWindowDuration(w.events))

		var delaySecs uint64
		if w.start.After(timeline.StartTime) {
			delaySecs = uint64(w.start.Sub(timeline.StartTime).Seconds())
		}

		step := scenario.NewScenarioStep(fmt.Sprintf("window_%d", w.index), cs).WithDelayBefore(delaySecs)
		out = out.AddStep(step)
	}

	return out, nil
}

type eventWindow struct {
	index  int
	start  time.Time
	events []IncidentEvent
}

// groupEventsByWindow assigns each event to a fixed-size window
// indexed from the timeline's start time, assuming events arrive in
// timestamp order (the linear-scan flush below only produces correct
// windows under that assumption). An event exactly on a window
// boundary belongs to the later window, since floor(30/30)=1.
func groupEventsByWindow(timeline IncidentTimeline) []eventWindow {
	var windows []eventWindow
	var current *eventWindow

	for _, e := range timeline.Events {
		offset := e.Timestamp.Sub(timeline.StartTime)
		idx := int(offset / windowSize)
		windowStart := timeline.StartTime.Add(time.Duration(idx) * windowSize)

		if current == nil || current.index != idx {
			if current != nil {
				windows = append(windows, *current)
			}
			current = &eventWindow{index: idx, start: windowStart}
		}
		current.events = append(current.events, e)
	}
	if current != nil {
		windows = append(windows, *current)
	}
	return windows
}

// createChaosConfigForEvents lowers a window's events to a single
// ChaosConfig following the original source's accumulation rules
// literally, including the quirk that min_delay_ms and max_delay_ms
// are both driven by the max observed latency spike.
func (g *Generator) createChaosConfigForEvents(events []IncidentEvent) scenario.ChaosConfig {
	var errorRate float64
	var statusCodes []uint16
	seenCodes := make(map[uint16]bool)
	var delayRate float64
	var minDelayMs, maxDelayMs uint64
	var injectTimeouts bool

	addCode := func(c uint16) {
		if !seenCodes[c] {
			seenCodes[c] = true
			statusCodes = append(statusCodes, c)
		}
	}

	for _, e := range events {
		switch v := e.EventType.(type) {
		case StatusCodeChange:
			if v.Rate > errorRate {
				errorRate = v.Rate
			}
			addCode(v.Code)
		case LatencySpike:
			delayRate = 1.0
			if v.LatencyMs > maxDelayMs {
				maxDelayMs = v.LatencyMs
			}
			if v.LatencyMs > minDelayMs {
				minDelayMs = v.LatencyMs
			}
		case ErrorRateIncrease:
			if v.Rate > errorRate {
				errorRate = v.Rate
			}
			for _, c := range v.ErrorCodes {
				addCode(c)
			}
		case RequestPatternChange:
			// No direct ChaosConfig contribution; pattern changes
			// inform traffic shaping out of scope for this lowering.
		case ServiceDegradation:
			if v.Level > errorRate {
				errorRate = v.Level
			}
			if v.Level > 0.8 {
				injectTimeouts = true
			}
		}
	}

	if len(statusCodes) == 0 {
		statusCodes = append([]uint16{}, defaultStatusCodes...)
	}
	if maxDelayMs == 0 && minDelayMs > 0 {
		maxDelayMs = minDelayMs
	}
	if errorRate > 1 {
		errorRate = 1
	}
	if errorRate < 0 {
		errorRate = 0
	}
	if delayRate > 1 {
		delayRate = 1
	}
	if delayRate < 0 {
		delayRate = 0
	}

	cfg := scenario.ChaosConfig{Enabled: true}

	if delayRate > 0 && maxDelayMs > 0 {
		flooredMin := g.applyFloor(minDelayMs)
		flooredMax := g.applyFloor(maxDelayMs)
		if flooredMax < flooredMin {
			flooredMax = flooredMin
		}
		lat := scenario.LatencyConfig{
			Enabled:     true,
			Probability: delayRate,
		}
		if flooredMin == flooredMax {
			fixed := int64(flooredMin)
			lat.FixedDelayMs = &fixed
		} else {
			lat.RandomDelayRangeMs = &scenario.DelayRange{Lo: int64(flooredMin), Hi: int64(flooredMax)}
		}
		cfg.Latency = &lat
	}

	if errorRate > 0 && len(statusCodes) > 0 {
		timeoutProbability := 0.0
		if injectTimeouts {
			timeoutProbability = errorRate
		}
		cfg.FaultInjection = &scenario.FaultInjectionConfig{
			Enabled:              true,
			HTTPErrors:           statusCodes,
			HTTPErrorProbability: errorRate,
			ConnectionErrors:     false,
			TimeoutErrors:        injectTimeouts,
			TimeoutMs:            5000,
			TimeoutProbability:   timeoutProbability,
		}
	}

	return cfg
}

// applyFloor raises ms to minDelayFloorMs if it's below it, logging
// when the floor actually changes the value.
func (g *Generator) applyFloor(ms uint64) uint64 {
	if ms >= minDelayFloorMs {
		return ms
	}
	if g.logger != nil {
		g.logger.Debug("incident replay: clamping latency to floor", "observed_ms", ms, "floor_ms", minDelayFloorMs)
	}
	return minDelayFloorMs
}

// calculateWindowDuration returns the window's scenario duration: at
// least defaultWindowDuration seconds, extended to the longest bounded
// LatencySpike.duration_seconds observed in the window.
func calculateWindowDuration(events []IncidentEvent) uint64 {
	maxDuration := uint64(defaultWindowDuration)
	for _, e := range events {
		if spike, ok := e.EventType.(LatencySpike); ok && spike.DurationSeconds != nil {
			if *spike.DurationSeconds > maxDuration {
				maxDuration = *spike.DurationSeconds
			}
		}
	}
	return maxDuration
}
