package primitives

import (
	"bytes"
	"encoding/json"
	"math/rand"
)

// CorruptBytes mutates data according to variant and returns a new
// slice; data is never modified in place.
func CorruptBytes(data []byte, variant CorruptionVariant, rng *rand.Rand) []byte {
	switch variant {
	case VariantBitflip:
		return bitflip(data, rng)
	case VariantTruncate:
		return truncate(data, rng)
	case VariantReorder:
		return reorderBytes(data, rng)
	case VariantInvalid:
		return invalidate(data, rng)
	default:
		return data
	}
}

// CorruptionVariant mirrors scenario.CorruptionType but as the small
// closed set the corruption functions switch on directly, avoiding an
// import of the scenario package from this leaf file.
type CorruptionVariant int

const (
	VariantNone CorruptionVariant = iota
	VariantBitflip
	VariantTruncate
	VariantReorder
	VariantInvalid
)

// bitflip flips one random bit per 64 bytes of the input.
func bitflip(data []byte, rng *rand.Rand) []byte {
	if len(data) == 0 {
		return data
	}
	out := make([]byte, len(data))
	copy(out, data)
	windows := (len(out) + 63) / 64
	for w := 0; w < windows; w++ {
		start := w * 64
		end := start + 64
		if end > len(out) {
			end = len(out)
		}
		if end <= start {
			continue
		}
		idx := start + rng.Intn(end-start)
		bit := uint(rng.Intn(8))
		out[idx] ^= 1 << bit
	}
	return out
}

// truncate keeps a uniform random prefix in [0.1*len, 0.9*len].
func truncate(data []byte, rng *rand.Rand) []byte {
	n := len(data)
	if n == 0 {
		return data
	}
	lo := int(0.1 * float64(n))
	hi := int(0.9 * float64(n))
	if hi <= lo {
		hi = lo + 1
	}
	if hi > n {
		hi = n
	}
	cut := lo
	if hi > lo {
		cut = lo + rng.Intn(hi-lo)
	}
	out := make([]byte, cut)
	copy(out, data[:cut])
	return out
}

// reorderBytes reverses random non-overlapping 16-byte windows.
func reorderBytes(data []byte, rng *rand.Rand) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	const window = 16
	if len(out) < window {
		reverseInPlace(out)
		return out
	}
	windows := len(out) / window
	for w := 0; w < windows; w++ {
		if rng.Float64() < 0.5 {
			start := w * window
			reverseInPlace(out[start : start+window])
		}
	}
	return out
}

func reverseInPlace(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// invalidate overwrites the final 1-5% of bytes with 0xFF noise.
func invalidate(data []byte, rng *rand.Rand) []byte {
	n := len(data)
	if n == 0 {
		return data
	}
	out := make([]byte, n)
	copy(out, data)
	pct := 0.01 + rng.Float64()*0.04
	count := int(pct * float64(n))
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}
	for i := n - count; i < n; i++ {
		out[i] = 0xFF
	}
	return out
}

// KV is one key/value pair of an OrderedObject.
type KV struct {
	Key   string
	Value interface{}
}

// OrderedObject preserves insertion order through JSON marshaling,
// which is how the Reorder variant can actually shuffle an object's
// key order on the wire (the standard library's map[string]any
// marshaling always sorts keys).
type OrderedObject []KV

// MarshalJSON writes the pairs in slice order.
func (o OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CorruptJSON shuffles a top-level JSON array's elements or a top-level
// JSON object's key order, per the Reorder variant. Any other JSON
// shape is returned unchanged.
func CorruptJSON(value interface{}, rng *rand.Rand) interface{} {
	switch v := value.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		copy(out, v)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		obj := make(OrderedObject, 0, len(keys))
		for _, k := range keys {
			obj = append(obj, KV{Key: k, Value: v[k]})
		}
		return obj
	default:
		return value
	}
}
