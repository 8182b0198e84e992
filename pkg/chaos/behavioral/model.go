// Package behavioral learns per-endpoint distributions over status
// codes, latency, and error bodies from recorded traffic, learns
// multi-step request sequences from traces, and samples from both,
// with an edge-amplification transform that raises the probability of
// rare outcomes.
package behavioral

import "time"

// RecordedExchange is one request/response pair as consumed from the
// external recorder: the tuple named in the external-interfaces
// contract.
type RecordedExchange struct {
	RequestBody     []byte
	RequestHeaders  map[string]string
	Method          string
	Path            string
	StatusCode      uint16
	ResponseBody    []byte
	ResponseHeaders map[string]string
	DurationMs      *uint64
	TraceID         *string
	Timestamp       time.Time
}

// LatencyQuantiles holds nearest-rank quantiles computed from the full
// sorted latency array. Invariant: P50 <= P90 <= P95 <= P99 <= Max.
type LatencyQuantiles struct {
	P50 float64 `json:"p50" yaml:"p50"`
	P90 float64 `json:"p90" yaml:"p90"`
	P95 float64 `json:"p95" yaml:"p95"`
	P99 float64 `json:"p99" yaml:"p99"`
	Max float64 `json:"max" yaml:"max"`
}

// HistogramBucket is one log-spaced latency bucket: BucketMs is the
// bucket's lower bound and Count the number of samples landing in
// [BucketMs, next bucket's BucketMs).
type HistogramBucket struct {
	BucketMs uint64 `json:"bucket_ms" yaml:"bucket_ms"`
	Count    uint64 `json:"count" yaml:"count"`
}

// ErrorBodyTemplate is one captured error response body for a given
// status code.
type ErrorBodyTemplate struct {
	Status uint16      `json:"status" yaml:"status"`
	Body   interface{} `json:"body" yaml:"body"`
}

// EndpointProbabilityModel is the empirical distribution learned for
// one (endpoint, method) pair.
type EndpointProbabilityModel struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Method   string `json:"method" yaml:"method"`

	StatusDistribution map[uint16]float64 `json:"status_distribution" yaml:"status_distribution"`
	LatencyQuantiles    LatencyQuantiles    `json:"latency_quantiles" yaml:"latency_quantiles"`
	LatencyHistogram    []HistogramBucket   `json:"latency_histogram" yaml:"latency_histogram"`

	ErrorBodyTemplates       []ErrorBodyTemplate `json:"error_body_templates" yaml:"error_body_templates"`
	RequestPayloadTemplates  []interface{}       `json:"request_payload_templates" yaml:"request_payload_templates"`
	ResponsePayloadTemplates []interface{}       `json:"response_payload_templates" yaml:"response_payload_templates"`

	SampleCount uint64 `json:"sample_count" yaml:"sample_count"`
}

// templateCapK bounds the number of distinct templates captured per
// status code (error bodies) or overall (payloads).
const templateCapK = 16

// logBucketMaxMs is the upper bound of the last finite bucket; any
// latency at or above it falls in the open-ended ">=" bucket.
const logBucketMaxMs = 16384
