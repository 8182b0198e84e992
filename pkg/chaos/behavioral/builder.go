package behavioral

import (
	"encoding/json"
	"fmt"
	"sort"
)

// BuildProbabilityModel constructs an EndpointProbabilityModel from
// exchanges recorded for (endpoint, method). An undecodable body is not
// fatal: it is left out of the payload templates (an error body is
// wrapped as {"error": <text>} instead), and the exchange still counts
// toward the status distribution and latency figures.
func BuildProbabilityModel(endpoint, method string, exchanges []RecordedExchange) (*EndpointProbabilityModel, error) {
	if len(exchanges) == 0 {
		return nil, fmt.Errorf("build probability model: no exchanges for %s %s", method, endpoint)
	}

	statusCounts := make(map[uint16]int)
	var durations []float64
	errorBodiesSeen := make(map[uint16]map[string]bool)
	errorBodyTemplates := make([]ErrorBodyTemplate, 0)
	requestTemplates := make([]interface{}, 0, templateCapK)
	responseTemplates := make([]interface{}, 0, templateCapK)
	reqSeen := make(map[string]bool)
	respSeen := make(map[string]bool)

	n := 0
	for _, ex := range exchanges {
		statusCounts[ex.StatusCode]++
		n++

		if ex.DurationMs != nil {
			durations = append(durations, float64(*ex.DurationMs))
		}

		if ex.StatusCode >= 400 && len(ex.ResponseBody) > 0 {
			seen := errorBodiesSeen[ex.StatusCode]
			if seen == nil {
				seen = make(map[string]bool)
				errorBodiesSeen[ex.StatusCode] = seen
			}
			if len(seen) < templateCapK {
				key := string(ex.ResponseBody)
				if !seen[key] {
					seen[key] = true
					body := parseOrWrapError(ex.ResponseBody)
					errorBodyTemplates = append(errorBodyTemplates, ErrorBodyTemplate{Status: ex.StatusCode, Body: body})
				}
			}
		}

		if len(requestTemplates) < templateCapK && len(ex.RequestBody) > 0 {
			var v interface{}
			if err := json.Unmarshal(ex.RequestBody, &v); err == nil {
				key := string(ex.RequestBody)
				if !reqSeen[key] {
					reqSeen[key] = true
					requestTemplates = append(requestTemplates, v)
				}
			}
		}
		if len(responseTemplates) < templateCapK && len(ex.ResponseBody) > 0 {
			var v interface{}
			if err := json.Unmarshal(ex.ResponseBody, &v); err == nil {
				key := string(ex.ResponseBody)
				if !respSeen[key] {
					respSeen[key] = true
					responseTemplates = append(responseTemplates, v)
				}
			}
		}
	}

	dist := make(map[uint16]float64, len(statusCounts))
	for code, count := range statusCounts {
		dist[code] = float64(count) / float64(n)
	}

	sort.Float64s(durations)

	return &EndpointProbabilityModel{
		Endpoint:                 endpoint,
		Method:                   method,
		StatusDistribution:       dist,
		LatencyQuantiles:         computeQuantiles(durations),
		LatencyHistogram:         computeHistogram(durations),
		ErrorBodyTemplates:       errorBodyTemplates,
		RequestPayloadTemplates:  requestTemplates,
		ResponsePayloadTemplates: responseTemplates,
		SampleCount:              uint64(n),
	}, nil
}

// parseOrWrapError tries to parse body as JSON; if that fails it's
// wrapped as {"error": <text>}.
func parseOrWrapError(body []byte) interface{} {
	var v interface{}
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return map[string]interface{}{"error": string(body)}
}

// computeQuantiles uses nearest-rank quantile selection on a sorted
// ascending slice.
func computeQuantiles(sorted []float64) LatencyQuantiles {
	if len(sorted) == 0 {
		return LatencyQuantiles{}
	}
	return LatencyQuantiles{
		P50: nearestRank(sorted, 0.50),
		P90: nearestRank(sorted, 0.90),
		P95: nearestRank(sorted, 0.95),
		P99: nearestRank(sorted, 0.99),
		Max: sorted[len(sorted)-1],
	}
}

func nearestRank(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := int(p * float64(n))
	if rank >= n {
		rank = n - 1
	}
	return sorted[rank]
}

// computeHistogram buckets durations into log-spaced buckets
// [1,2,4,...,>=16384] ms.
func computeHistogram(durations []float64) []HistogramBucket {
	bounds := logBucketBounds()
	counts := make([]uint64, len(bounds))

	for _, d := range durations {
		idx := len(bounds) - 1
		for i := 0; i < len(bounds); i++ {
			upper := logBucketMaxMs * 2
			if i+1 < len(bounds) {
				upper = int(bounds[i+1])
			}
			if d < float64(upper) {
				idx = i
				break
			}
		}
		counts[idx]++
	}

	buckets := make([]HistogramBucket, len(bounds))
	for i, b := range bounds {
		buckets[i] = HistogramBucket{BucketMs: b, Count: counts[i]}
	}
	return buckets
}

// logBucketBounds returns 1,2,4,8,...,16384.
func logBucketBounds() []uint64 {
	var bounds []uint64
	for b := uint64(1); b <= logBucketMaxMs; b *= 2 {
		bounds = append(bounds, b)
	}
	return bounds
}
