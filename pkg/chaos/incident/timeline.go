// Package incident ingests production incident timelines and
// synthesizes equivalent chaos programs from them.
package incident

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the tagged union of incident event kinds. Concrete
// types implement it by embedding no methods beyond the marker --
// lowering happens by a type switch in replay.go, not virtual
// dispatch, matching how the original event stream is consumed.
type EventType interface {
	eventKind() string
}

// StatusCodeChange records an observed shift in response status code
// at a given rate.
type StatusCodeChange struct {
	Code uint16  `json:"code" yaml:"code"`
	Rate float64 `json:"rate" yaml:"rate"`
}

func (StatusCodeChange) eventKind() string { return "status_code_change" }

// LatencySpike records an elevated latency, optionally bounded to a
// duration.
type LatencySpike struct {
	LatencyMs       uint64  `json:"latency_ms" yaml:"latency_ms"`
	DurationSeconds *uint64 `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
}

func (LatencySpike) eventKind() string { return "latency_spike" }

// ErrorRateIncrease records an elevated error rate, optionally scoped
// to specific status codes.
type ErrorRateIncrease struct {
	Rate       float64  `json:"rate" yaml:"rate"`
	ErrorCodes []uint16 `json:"error_codes,omitempty" yaml:"error_codes,omitempty"`
}

func (ErrorRateIncrease) eventKind() string { return "error_rate_increase" }

// RequestPatternChange records a shift in traffic pattern.
type RequestPatternChange struct {
	Pattern      string `json:"pattern" yaml:"pattern"`
	RequestDelta *int64 `json:"request_delta,omitempty" yaml:"request_delta,omitempty"`
}

func (RequestPatternChange) eventKind() string { return "request_pattern_change" }

// ServiceDegradation records an overall health degradation level in
// [0,1], optionally scoped to specific downstream services.
type ServiceDegradation struct {
	Level            float64  `json:"level" yaml:"level"`
	AffectedServices []string `json:"affected_services,omitempty" yaml:"affected_services,omitempty"`
}

func (ServiceDegradation) eventKind() string { return "service_degradation" }

// IncidentEvent is one observation in an IncidentTimeline.
type IncidentEvent struct {
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	EventType EventType         `json:"event_type" yaml:"event_type"`
	Endpoint  *string           `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method    *string           `json:"method,omitempty" yaml:"method,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IncidentTimeline is the ordered record of what happened during an
// incident: start_time <= event.timestamp <= end_time for every event,
// and start_time <= end_time.
type IncidentTimeline struct {
	IncidentID string            `json:"incident_id" yaml:"incident_id"`
	StartTime  time.Time         `json:"start_time" yaml:"start_time"`
	EndTime    time.Time         `json:"end_time" yaml:"end_time"`
	Events     []IncidentEvent   `json:"events" yaml:"events"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks the timeline's ordering invariants.
func (t IncidentTimeline) Validate() error {
	if t.StartTime.After(t.EndTime) {
		return fmt.Errorf("incident timeline %q: start_time is after end_time", t.IncidentID)
	}
	for i, e := range t.Events {
		if e.Timestamp.Before(t.StartTime) || e.Timestamp.After(t.EndTime) {
			return fmt.Errorf("incident timeline %q: event %d timestamp %s outside [%s,%s]",
				t.IncidentID, i, e.Timestamp, t.StartTime, t.EndTime)
		}
	}
	return nil
}

// eventTypeEnvelope is the wire shape of IncidentEvent: the event
// type's own fields appear at the same level as "type", mirroring an
// internally-tagged enum rather than a wrapped one.
type eventTypeEnvelope struct {
	Type string `json:"type" yaml:"type"`

	Code uint16  `json:"code,omitempty" yaml:"code,omitempty"`
	Rate float64 `json:"rate,omitempty" yaml:"rate,omitempty"`

	LatencyMs       uint64  `json:"latency_ms,omitempty" yaml:"latency_ms,omitempty"`
	DurationSeconds *uint64 `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`

	ErrorCodes []uint16 `json:"error_codes,omitempty" yaml:"error_codes,omitempty"`

	Pattern      string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	RequestDelta *int64 `json:"request_delta,omitempty" yaml:"request_delta,omitempty"`

	Level            float64  `json:"level,omitempty" yaml:"level,omitempty"`
	AffectedServices []string `json:"affected_services,omitempty" yaml:"affected_services,omitempty"`
}

func toEnvelope(e EventType) eventTypeEnvelope {
	switch v := e.(type) {
	case StatusCodeChange:
		return eventTypeEnvelope{Type: v.eventKind(), Code: v.Code, Rate: v.Rate}
	case LatencySpike:
		return eventTypeEnvelope{Type: v.eventKind(), LatencyMs: v.LatencyMs, DurationSeconds: v.DurationSeconds}
	case ErrorRateIncrease:
		return eventTypeEnvelope{Type: v.eventKind(), Rate: v.Rate, ErrorCodes: v.ErrorCodes}
	case RequestPatternChange:
		return eventTypeEnvelope{Type: v.eventKind(), Pattern: v.Pattern, RequestDelta: v.RequestDelta}
	case ServiceDegradation:
		return eventTypeEnvelope{Type: v.eventKind(), Level: v.Level, AffectedServices: v.AffectedServices}
	default:
		return eventTypeEnvelope{}
	}
}

func fromEnvelope(env eventTypeEnvelope) (EventType, error) {
	switch env.Type {
	case "status_code_change":
		return StatusCodeChange{Code: env.Code, Rate: env.Rate}, nil
	case "latency_spike":
		return LatencySpike{LatencyMs: env.LatencyMs, DurationSeconds: env.DurationSeconds}, nil
	case "error_rate_increase":
		return ErrorRateIncrease{Rate: env.Rate, ErrorCodes: env.ErrorCodes}, nil
	case "request_pattern_change":
		return RequestPatternChange{Pattern: env.Pattern, RequestDelta: env.RequestDelta}, nil
	case "service_degradation":
		return ServiceDegradation{Level: env.Level, AffectedServices: env.AffectedServices}, nil
	default:
		return nil, fmt.Errorf("incident event: unknown event type %q", env.Type)
	}
}

type incidentEventWire struct {
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Endpoint  *string           `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method    *string           `json:"method,omitempty" yaml:"method,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	eventTypeEnvelope `yaml:",inline"`
}

// MarshalJSON flattens EventType's own fields alongside "type".
func (e IncidentEvent) MarshalJSON() ([]byte, error) {
	wire := incidentEventWire{
		Timestamp:         e.Timestamp,
		Endpoint:          e.Endpoint,
		Method:            e.Method,
		Metadata:          e.Metadata,
		eventTypeEnvelope: toEnvelope(e.EventType),
	}
	return json.Marshal(wire)
}

// UnmarshalJSON reconstructs the concrete EventType from the "type"
// discriminator.
func (e *IncidentEvent) UnmarshalJSON(data []byte) error {
	var wire incidentEventWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	et, err := fromEnvelope(wire.eventTypeEnvelope)
	if err != nil {
		return err
	}
	e.Timestamp = wire.Timestamp
	e.Endpoint = wire.Endpoint
	e.Method = wire.Method
	e.Metadata = wire.Metadata
	e.EventType = et
	return nil
}

// MarshalYAML mirrors MarshalJSON for the YAML encoding path.
func (e IncidentEvent) MarshalYAML() (interface{}, error) {
	return incidentEventWire{
		Timestamp:         e.Timestamp,
		Endpoint:          e.Endpoint,
		Method:            e.Method,
		Metadata:          e.Metadata,
		eventTypeEnvelope: toEnvelope(e.EventType),
	}, nil
}

// UnmarshalYAML mirrors UnmarshalJSON for the YAML decoding path.
func (e *IncidentEvent) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var wire incidentEventWire
	if err := unmarshal(&wire); err != nil {
		return err
	}
	et, err := fromEnvelope(wire.eventTypeEnvelope)
	if err != nil {
		return err
	}
	e.Timestamp = wire.Timestamp
	e.Endpoint = wire.Endpoint
	e.Method = wire.Method
	e.Metadata = wire.Metadata
	e.EventType = et
	return nil
}
