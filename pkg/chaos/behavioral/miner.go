package behavioral

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// maxSequenceLength caps mined prefix length at 8, per the sequence
// miner's contract.
const maxSequenceLength = 8

// minSequenceLength is the shortest candidate worth mining; a
// single-step "sequence" carries no ordering information.
const minSequenceLength = 2

type patternKey string

func keyFor(steps []TraceStep, length int) patternKey {
	s := ""
	for i := 0; i < length; i++ {
		s += steps[i].Method + " " + steps[i].Endpoint + "|"
	}
	return patternKey(s)
}

// MineSequences groups traces already grouped by trace ID, generates
// every prefix of length 2..min(8,len(trace)) as a candidate pattern,
// and retains those whose support (fraction of traces containing that
// exact prefix) is at least minFrequency. Confidence is the retained
// pattern's count divided by the count of its own prefix with the
// last step removed (1.0 for length-2 patterns, since a length-1
// prefix carries no ordering and isn't itself a tracked candidate).
// Each retained step's delay is the median observed delay across
// traces for that position.
func MineSequences(traces []Trace, minFrequency float64) ([]BehavioralSequence, error) {
	if len(traces) == 0 {
		return nil, fmt.Errorf("mine sequences: no traces provided")
	}

	type accumulator struct {
		steps  []TraceStep
		count  int
		delays [][]int64 // delays[i] = observed delays at step position i+1, across occurrences
	}
	patterns := make(map[patternKey]*accumulator)

	for _, trace := range traces {
		maxLen := len(trace)
		if maxLen > maxSequenceLength {
			maxLen = maxSequenceLength
		}
		for length := minSequenceLength; length <= maxLen; length++ {
			k := keyFor(trace, length)
			acc, ok := patterns[k]
			if !ok {
				acc = &accumulator{steps: append([]TraceStep{}, trace[:length]...)}
				acc.delays = make([][]int64, length-1)
				patterns[k] = acc
			}
			acc.count++
			for i := 1; i < length; i++ {
				delta := trace[i].Timestamp.Sub(trace[i-1].Timestamp).Milliseconds()
				if delta < 0 {
					delta = 0
				}
				acc.delays[i-1] = append(acc.delays[i-1], delta)
			}
		}
	}

	totalTraces := float64(len(traces))
	var results []BehavioralSequence

	for k, acc := range patterns {
		support := float64(acc.count) / totalTraces
		if support < minFrequency {
			continue
		}

		length := len(acc.steps)
		confidence := 1.0
		if length > minSequenceLength {
			prefixKey := keyFor(acc.steps, length-1)
			if prefixAcc, ok := patterns[prefixKey]; ok && prefixAcc.count > 0 {
				confidence = float64(acc.count) / float64(prefixAcc.count)
			}
		}

		steps := make([]SequenceStep, length)
		for i, s := range acc.steps {
			step := SequenceStep{Endpoint: s.Endpoint, Method: s.Method}
			if i > 0 {
				med := median(acc.delays[i-1])
				ms := uint64(med)
				step.InterStepDelayMs = &ms
			}
			steps[i] = step
		}

		_ = k
		results = append(results, BehavioralSequence{
			ID:         uuid.NewString(),
			Steps:      steps,
			Support:    support,
			Confidence: confidence,
			Length:     length,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Length != results[j].Length {
			return results[i].Length < results[j].Length
		}
		return results[i].Support > results[j].Support
	})

	return results, nil
}

func median(values []int64) int64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int64{}, values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
