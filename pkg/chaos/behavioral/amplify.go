package behavioral

// ScopeKind selects which models an amplification transform applies
// to.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeEndpoint
	ScopeSequence
)

// AmplificationScope is a tagged union: Global updates every
// persisted model, Endpoint updates one model, Sequence updates every
// endpoint model referenced by a sequence's steps.
type AmplificationScope struct {
	Kind       ScopeKind
	Endpoint   string
	Method     string
	SequenceID string
}

// GlobalScope amplifies every persisted model.
func GlobalScope() AmplificationScope { return AmplificationScope{Kind: ScopeGlobal} }

// EndpointScope amplifies a single endpoint's model.
func EndpointScope(endpoint, method string) AmplificationScope {
	return AmplificationScope{Kind: ScopeEndpoint, Endpoint: endpoint, Method: method}
}

// SequenceScope amplifies every endpoint model referenced by a
// sequence's steps.
func SequenceScope(sequenceID string) AmplificationScope {
	return AmplificationScope{Kind: ScopeSequence, SequenceID: sequenceID}
}

// EdgeAmplificationConfig parameterizes the Amplify transform.
type EdgeAmplificationConfig struct {
	Enabled       bool               `json:"enabled" yaml:"enabled"`
	Scope         AmplificationScope `json:"scope" yaml:"scope"`
	RareThreshold float64            `json:"rare_threshold" yaml:"rare_threshold"`
	BoostFactor   float64            `json:"boost_factor" yaml:"boost_factor"`
	TargetMass    float64            `json:"target_mass" yaml:"target_mass"`
}

// Amplify raises the probability of outcomes whose empirical mass is
// below RareThreshold and proportionally renormalizes the rest so the
// distribution still sums to 1. Amplify never mutates dist; it
// returns a fresh map. If Rare is empty, or Common is empty (nothing
// to take mass from), the input is returned unchanged.
func Amplify[K comparable](dist map[K]float64, cfg EdgeAmplificationConfig) map[K]float64 {
	out := make(map[K]float64, len(dist))
	if !cfg.Enabled {
		for k, v := range dist {
			out[k] = v
		}
		return out
	}

	var rareKeys, commonKeys []K
	var rareSum, commonSum float64
	for k, p := range dist {
		if p < cfg.RareThreshold {
			rareKeys = append(rareKeys, k)
			rareSum += p
		} else {
			commonKeys = append(commonKeys, k)
			commonSum += p
		}
	}

	if len(rareKeys) == 0 || len(commonKeys) == 0 {
		for k, v := range dist {
			out[k] = v
		}
		return out
	}

	newRareMass := cfg.BoostFactor * rareSum
	if newRareMass > cfg.TargetMass {
		newRareMass = cfg.TargetMass
	}
	newCommonMass := 1.0 - newRareMass

	for _, k := range rareKeys {
		out[k] = (dist[k] / rareSum) * newRareMass
	}
	for _, k := range commonKeys {
		out[k] = (dist[k] / commonSum) * newCommonMass
	}
	return out
}
