// Package scenario defines the value types that describe a chaos program:
// the per-request fault configuration, a named scenario wrapping it, a
// timed step referencing a scenario, and the ordered program of steps an
// orchestrator runs.
package scenario

import "fmt"

// CorruptionType selects how PayloadCorruption mutates a response body.
type CorruptionType string

const (
	CorruptionNone     CorruptionType = ""
	CorruptionBitflip  CorruptionType = "bitflip"
	CorruptionTruncate CorruptionType = "truncate"
	CorruptionReorder  CorruptionType = "reorder"
	CorruptionInvalid  CorruptionType = "invalid"
)

// ErrorPattern selects how an HttpError status code is chosen from
// FaultInjectionConfig.HTTPErrors when more than one is configured.
type ErrorPattern string

const (
	ErrorPatternRandom     ErrorPattern = ""
	ErrorPatternRoundRobin ErrorPattern = "round_robin"
	ErrorPatternWeighted   ErrorPattern = "weighted"
	ErrorPatternSequence   ErrorPattern = "sequence"
)

// LatencyConfig describes an artificial delay applied before a response
// is returned. Exactly one of FixedDelayMs or RandomDelayRangeMs should
// be populated; Validate rejects configs that set both or neither while
// Enabled.
type LatencyConfig struct {
	Enabled            bool       `yaml:"enabled" json:"enabled"`
	FixedDelayMs       *int64     `yaml:"fixed_delay_ms,omitempty" json:"fixed_delay_ms,omitempty"`
	RandomDelayRangeMs *DelayRange `yaml:"random_delay_range_ms,omitempty" json:"random_delay_range_ms,omitempty"`
	JitterPercent      float64    `yaml:"jitter_percent" json:"jitter_percent"`
	Probability        float64    `yaml:"probability" json:"probability"`
}

// DelayRange is an inclusive [Lo, Hi] millisecond range.
type DelayRange struct {
	Lo int64 `yaml:"lo" json:"lo"`
	Hi int64 `yaml:"hi" json:"hi"`
}

// Validate checks LatencyConfig's invariants from the data model: exactly
// one of fixed/range populated when enabled, range lo<=hi, non-negative
// finite delays, probability in [0,1].
func (c LatencyConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	hasFixed := c.FixedDelayMs != nil
	hasRange := c.RandomDelayRangeMs != nil
	if hasFixed == hasRange {
		return fmt.Errorf("latency config: exactly one of fixed_delay_ms or random_delay_range_ms must be set")
	}
	if hasFixed && *c.FixedDelayMs < 0 {
		return fmt.Errorf("latency config: fixed_delay_ms must be non-negative")
	}
	if hasRange {
		r := c.RandomDelayRangeMs
		if r.Lo < 0 || r.Hi < 0 {
			return fmt.Errorf("latency config: delay range must be non-negative")
		}
		if r.Lo > r.Hi {
			return fmt.Errorf("latency config: range lo (%d) must be <= hi (%d)", r.Lo, r.Hi)
		}
	}
	if c.JitterPercent < 0 || c.JitterPercent > 1 {
		return fmt.Errorf("latency config: jitter_percent must be in [0,1]")
	}
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("latency config: probability must be in [0,1]")
	}
	return nil
}

// FaultInjectionConfig describes the per-request fault decision ladder:
// ConnectionError -> Timeout -> HttpError -> PartialResponse ->
// PayloadCorruption -> Normal.
type FaultInjectionConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	HTTPErrors            []uint16     `yaml:"http_errors,omitempty" json:"http_errors,omitempty"`
	HTTPErrorProbability  float64      `yaml:"http_error_probability" json:"http_error_probability"`
	ErrorPattern          ErrorPattern `yaml:"error_pattern,omitempty" json:"error_pattern,omitempty"`

	ConnectionErrors            bool    `yaml:"connection_errors" json:"connection_errors"`
	ConnectionErrorProbability  float64 `yaml:"connection_error_probability" json:"connection_error_probability"`

	TimeoutErrors       bool    `yaml:"timeout_errors" json:"timeout_errors"`
	TimeoutMs           int64   `yaml:"timeout_ms" json:"timeout_ms"`
	TimeoutProbability  float64 `yaml:"timeout_probability" json:"timeout_probability"`

	PartialResponses           bool    `yaml:"partial_responses" json:"partial_responses"`
	PartialResponseProbability float64 `yaml:"partial_response_probability" json:"partial_response_probability"`

	PayloadCorruption           bool           `yaml:"payload_corruption" json:"payload_corruption"`
	PayloadCorruptionProbability float64       `yaml:"payload_corruption_probability" json:"payload_corruption_probability"`
	CorruptionType               CorruptionType `yaml:"corruption_type,omitempty" json:"corruption_type,omitempty"`

	MockAIEnabled bool `yaml:"mockai_enabled" json:"mockai_enabled"`
}

// Validate checks that every probability lies in [0,1]. The sum of the
// mutually exclusive outcome probabilities (error, timeout, partial) is
// not rejected here even if it exceeds 1, and nothing rescales those
// probabilities: the decision ladder in pkg/chaos/primitives evaluates
// them as successive gates, each conditioned on the earlier gates not
// having fired, so a sum above 1 still yields at most one outcome per
// request.
func (c FaultInjectionConfig) Validate() error {
	probs := map[string]float64{
		"http_error_probability":       c.HTTPErrorProbability,
		"connection_error_probability": c.ConnectionErrorProbability,
		"timeout_probability":          c.TimeoutProbability,
		"partial_response_probability": c.PartialResponseProbability,
		"payload_corruption_probability": c.PayloadCorruptionProbability,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("fault injection config: %s must be in [0,1], got %v", name, p)
		}
	}
	switch c.CorruptionType {
	case CorruptionNone, CorruptionBitflip, CorruptionTruncate, CorruptionReorder, CorruptionInvalid:
	default:
		return fmt.Errorf("fault injection config: unknown corruption_type %q", c.CorruptionType)
	}
	return nil
}

// RateLimitConfig is validated and carried as data; the Fault-Decision
// Engine does not read it and adds no delay for it. The core does no
// bookkeeping of request counts itself.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" json:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit config: requests_per_second must be positive")
	}
	if c.Burst < 0 {
		return fmt.Errorf("rate limit config: burst must be non-negative")
	}
	return nil
}

// TrafficShapingConfig is advisory data only; the core performs no I/O
// and never throttles write speed itself.
type TrafficShapingConfig struct {
	Enabled             bool  `yaml:"enabled" json:"enabled"`
	BandwidthBytesPerSec int64 `yaml:"bandwidth_bytes_per_sec" json:"bandwidth_bytes_per_sec"`
}

func (c TrafficShapingConfig) Validate() error {
	if c.Enabled && c.BandwidthBytesPerSec <= 0 {
		return fmt.Errorf("traffic shaping config: bandwidth_bytes_per_sec must be positive when enabled")
	}
	return nil
}

// CircuitBreakerConfig is advisory; transports own the actual breaker
// state machine, the core only validates the shape.
type CircuitBreakerConfig struct {
	Enabled          bool  `yaml:"enabled" json:"enabled"`
	FailureThreshold int   `yaml:"failure_threshold" json:"failure_threshold"`
	ResetTimeoutSecs int64 `yaml:"reset_timeout_secs" json:"reset_timeout_secs"`
}

func (c CircuitBreakerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.FailureThreshold <= 0 {
		return fmt.Errorf("circuit breaker config: failure_threshold must be positive")
	}
	if c.ResetTimeoutSecs <= 0 {
		return fmt.Errorf("circuit breaker config: reset_timeout_secs must be positive")
	}
	return nil
}

// BulkheadConfig is advisory; same treatment as CircuitBreakerConfig.
type BulkheadConfig struct {
	Enabled       bool `yaml:"enabled" json:"enabled"`
	MaxConcurrent int  `yaml:"max_concurrent" json:"max_concurrent"`
}

func (c BulkheadConfig) Validate() error {
	if c.Enabled && c.MaxConcurrent <= 0 {
		return fmt.Errorf("bulkhead config: max_concurrent must be positive when enabled")
	}
	return nil
}

// ChaosConfig is the unit the orchestrator installs into the active
// config slot and the fault-decision engine reads. A disabled or absent
// sub-config is a no-op.
type ChaosConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	Latency         *LatencyConfig         `yaml:"latency,omitempty" json:"latency,omitempty"`
	FaultInjection  *FaultInjectionConfig  `yaml:"fault_injection,omitempty" json:"fault_injection,omitempty"`
	RateLimit       *RateLimitConfig       `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"`
	TrafficShaping  *TrafficShapingConfig  `yaml:"traffic_shaping,omitempty" json:"traffic_shaping,omitempty"`
	CircuitBreaker  *CircuitBreakerConfig  `yaml:"circuit_breaker,omitempty" json:"circuit_breaker,omitempty"`
	Bulkhead        *BulkheadConfig        `yaml:"bulkhead,omitempty" json:"bulkhead,omitempty"`
}

// Validate checks every populated sub-config and rejects a disabled
// top-level config with a conflicting enabled sub-config.
func (c ChaosConfig) Validate() error {
	if c.Latency != nil {
		if err := c.Latency.Validate(); err != nil {
			return err
		}
		if !c.Enabled && c.Latency.Enabled {
			return fmt.Errorf("chaos config: disabled but latency sub-config is enabled")
		}
	}
	if c.FaultInjection != nil {
		if err := c.FaultInjection.Validate(); err != nil {
			return err
		}
		if !c.Enabled && c.FaultInjection.Enabled {
			return fmt.Errorf("chaos config: disabled but fault_injection sub-config is enabled")
		}
	}
	if c.RateLimit != nil {
		if err := c.RateLimit.Validate(); err != nil {
			return err
		}
		if !c.Enabled && c.RateLimit.Enabled {
			return fmt.Errorf("chaos config: disabled but rate_limit sub-config is enabled")
		}
	}
	if c.TrafficShaping != nil {
		if err := c.TrafficShaping.Validate(); err != nil {
			return err
		}
		if !c.Enabled && c.TrafficShaping.Enabled {
			return fmt.Errorf("chaos config: disabled but traffic_shaping sub-config is enabled")
		}
	}
	if c.CircuitBreaker != nil {
		if err := c.CircuitBreaker.Validate(); err != nil {
			return err
		}
		if !c.Enabled && c.CircuitBreaker.Enabled {
			return fmt.Errorf("chaos config: disabled but circuit_breaker sub-config is enabled")
		}
	}
	if c.Bulkhead != nil {
		if err := c.Bulkhead.Validate(); err != nil {
			return err
		}
		if !c.Enabled && c.Bulkhead.Enabled {
			return fmt.Errorf("chaos config: disabled but bulkhead sub-config is enabled")
		}
	}
	return nil
}
