package behavioral

import "time"

// TraceStep is one observed request within a trace: its endpoint,
// method, and when it occurred.
type TraceStep struct {
	Endpoint  string
	Method    string
	Timestamp time.Time
}

// Trace is one ordered list of steps sharing a trace ID.
type Trace []TraceStep

// SequenceStep is one entry in a mined BehavioralSequence. InterStepDelayMs
// is nil for the first step (no predecessor to measure a delay from).
type SequenceStep struct {
	Endpoint        string  `json:"endpoint" yaml:"endpoint"`
	Method          string  `json:"method" yaml:"method"`
	InterStepDelayMs *uint64 `json:"inter_step_delay_ms,omitempty" yaml:"inter_step_delay_ms,omitempty"`
}

// BehavioralSequence is an ordered pattern mined from traces, with its
// empirical support and confidence.
type BehavioralSequence struct {
	ID         string         `json:"id" yaml:"id"`
	Steps      []SequenceStep `json:"steps" yaml:"steps"`
	Support    float64        `json:"support" yaml:"support"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Length     int            `json:"length" yaml:"length"`
}
