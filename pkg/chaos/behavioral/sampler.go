package behavioral

import (
	"math/rand"
	"sort"
)

// SampleStatusCode draws u~U(0,1) and returns the first status code
// (in ascending order, for determinism) whose cumulative mass >= u.
func SampleStatusCode(model *EndpointProbabilityModel, rng *rand.Rand) uint16 {
	if model == nil || len(model.StatusDistribution) == 0 {
		return 200
	}
	codes := make([]uint16, 0, len(model.StatusDistribution))
	for c := range model.StatusDistribution {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	u := rng.Float64()
	var cumulative float64
	for _, c := range codes {
		cumulative += model.StatusDistribution[c]
		if cumulative >= u {
			return c
		}
	}
	return codes[len(codes)-1]
}

// SampleLatency picks a histogram bucket by its empirical mass, then
// samples uniformly within the bucket, capped at the observed max.
func SampleLatency(model *EndpointProbabilityModel, rng *rand.Rand) uint64 {
	if model == nil || len(model.LatencyHistogram) == 0 {
		return 0
	}
	var total uint64
	for _, b := range model.LatencyHistogram {
		total += b.Count
	}
	if total == 0 {
		return 0
	}

	u := rng.Float64()
	var cumulative float64
	maxMs := uint64(model.LatencyQuantiles.Max)

	for i, b := range model.LatencyHistogram {
		mass := float64(b.Count) / float64(total)
		cumulative += mass
		if cumulative >= u || i == len(model.LatencyHistogram)-1 {
			lower := b.BucketMs
			upper := lower * 2
			if upper == 0 {
				upper = lower + 1
			}
			if maxMs > 0 && upper > maxMs {
				upper = maxMs
			}
			if upper <= lower {
				return lower
			}
			return lower + uint64(rng.Float64()*float64(upper-lower))
		}
	}
	return model.LatencyHistogram[len(model.LatencyHistogram)-1].BucketMs
}

// SampleErrorBody picks a template uniformly from status's captured
// bodies. With no templates for status, synthesizes a conservative
// default per the not-found error policy.
func SampleErrorBody(model *EndpointProbabilityModel, status uint16, rng *rand.Rand) interface{} {
	if model != nil {
		var matching []interface{}
		for _, t := range model.ErrorBodyTemplates {
			if t.Status == status {
				matching = append(matching, t.Body)
			}
		}
		if len(matching) > 0 {
			return matching[rng.Intn(len(matching))]
		}
	}
	return map[string]interface{}{
		"error": "Internal Server Error",
		"code":  status,
	}
}
