// Package blender merges a mock JSON response with an upstream "real"
// response under a blend ratio, optionally overridden per JSON path.
package blender

import "math"

// Strategy selects how Blend merges two JSON values of the same
// shape.
type Strategy int

const (
	// StrategyFieldLevel recurses into objects and arrays, picking a
	// side (or numeric average) per field. The default strategy: it
	// preserves enough structure for downstream clients to keep
	// parsing the response.
	StrategyFieldLevel Strategy = iota
	// StrategyWeighted is a deterministic 0.5-threshold select
	// regardless of JSON type -- "weighted" describes the ratio
	// input, not a randomized choice.
	StrategyWeighted
	// StrategyBodyBlend merges objects/arrays unconditionally
	// (a key or index present on only one side is always kept,
	// with no ratio-gated drop) and blends primitives as blendScalar
	// does: numeric average for two numbers, threshold selection
	// otherwise.
	StrategyBodyBlend
)

// Blend merges mock and real under ratio, clamped to [0,1]. With no
// fieldConfig, ratio 0.0 returns mock unchanged and ratio 1.0 returns
// real unchanged (bytewise-equal semantics, since the same JSON value
// is returned rather than a structurally-identical copy). With a
// fieldConfig, every object key's effective ratio is the ratio
// configured for its dotted path, or else the ratio in effect for the
// enclosing object (the global ratio at the top level). The value under
// a key -- array, number, or primitive included -- is blended with that
// key's effective ratio; no path lookup happens inside arrays.
func Blend(mock, real interface{}, ratio float64, fieldConfig *FieldRealityConfig, strategy Strategy) interface{} {
	ratio = clamp01(ratio)

	if fieldConfig == nil {
		if ratio == 0.0 {
			return mock
		}
		if ratio == 1.0 {
			return real
		}
		return blendByStrategy(mock, real, ratio, strategy)
	}

	return blendWithFieldConfig(mock, real, ratio, fieldConfig, "", strategy)
}

func blendWithFieldConfig(mock, real interface{}, ratio float64, fieldConfig *FieldRealityConfig, path string, strategy Strategy) interface{} {
	mockObj, mockIsObj := mock.(map[string]interface{})
	realObj, realIsObj := real.(map[string]interface{})
	if mockIsObj && realIsObj {
		result := make(map[string]interface{})
		seen := make(map[string]bool)
		keys := make([]string, 0, len(mockObj)+len(realObj))
		for k := range mockObj {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
		for k := range realObj {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}

		for _, key := range keys {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			effRatio := ratio
			if r, ok := fieldConfig.GetBlendRatioForPath(childPath); ok {
				effRatio = clamp01(r)
			}

			mv, mok := mockObj[key]
			rv, rok := realObj[key]
			switch {
			case mok && rok:
				result[key] = blendWithFieldConfig(mv, rv, effRatio, fieldConfig, childPath, strategy)
			case mok && !rok:
				if effRatio < 0.5 {
					result[key] = mv
				}
			case !mok && rok:
				if effRatio >= 0.5 {
					result[key] = rv
				}
			}
		}
		return result
	}

	// Arrays, numbers, and primitives get no path lookup of their own;
	// fall back to strategy-based blending with the ratio in effect for
	// this path.
	return blendByStrategy(mock, real, ratio, strategy)
}

func blendByStrategy(mock, real interface{}, ratio float64, strategy Strategy) interface{} {
	switch strategy {
	case StrategyWeighted:
		return blendWeighted(mock, real, ratio)
	case StrategyBodyBlend:
		return blendBody(mock, real, ratio)
	default:
		return blendFieldLevel(mock, real, ratio)
	}
}

func blendFieldLevel(mock, real interface{}, ratio float64) interface{} {
	if mockObj, ok := mock.(map[string]interface{}); ok {
		if realObj, ok := real.(map[string]interface{}); ok {
			return blendObjectsGated(mockObj, realObj, ratio, blendFieldLevel)
		}
	}
	if mockArr, ok := mock.([]interface{}); ok {
		if realArr, ok := real.([]interface{}); ok {
			return blendArraysPrefix(mockArr, realArr, ratio)
		}
	}
	return blendScalar(mock, real, ratio)
}

func blendBody(mock, real interface{}, ratio float64) interface{} {
	if mockObj, ok := mock.(map[string]interface{}); ok {
		if realObj, ok := real.(map[string]interface{}); ok {
			return blendObjectsUngated(mockObj, realObj, ratio, blendBody)
		}
	}
	if mockArr, ok := mock.([]interface{}); ok {
		if realArr, ok := real.([]interface{}); ok {
			return blendArraysZip(mockArr, realArr, ratio)
		}
	}
	return blendScalar(mock, real, ratio)
}

func blendWeighted(mock, real interface{}, ratio float64) interface{} {
	if ratio >= 0.5 {
		return real
	}
	return mock
}

// blendObjectsGated merges keys present on only one side, keeping
// mock-only when ratio<0.5 and real-only when ratio>=0.5 (the
// FieldLevel strategy's rule).
func blendObjectsGated(mockObj, realObj map[string]interface{}, ratio float64, recurse func(a, b interface{}, r float64) interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	seen := make(map[string]bool)
	for key, mv := range mockObj {
		seen[key] = true
		if rv, ok := realObj[key]; ok {
			result[key] = recurse(mv, rv, ratio)
		} else if ratio < 0.5 {
			result[key] = mv
		}
	}
	for key, rv := range realObj {
		if seen[key] {
			continue
		}
		if ratio >= 0.5 {
			result[key] = rv
		}
	}
	return result
}

// blendObjectsUngated merges keys present on only one side,
// unconditionally keeping them (the BodyBlend strategy's rule).
func blendObjectsUngated(mockObj, realObj map[string]interface{}, ratio float64, recurse func(a, b interface{}, r float64) interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	seen := make(map[string]bool)
	for key, mv := range mockObj {
		seen[key] = true
		if rv, ok := realObj[key]; ok {
			result[key] = recurse(mv, rv, ratio)
		} else {
			result[key] = mv
		}
	}
	for key, rv := range realObj {
		if seen[key] {
			continue
		}
		result[key] = rv
	}
	return result
}

// blendArraysPrefix implements FieldLevel's array semantics:
// total_len = max(|mock|,|real|), mock_count = floor((1-ratio)*total_len)
// items taken from the mock prefix, real_count = ceil(ratio*total_len)
// from the real prefix. floor/ceil of complementary fractions always
// sum to total_len, so the two prefixes exactly cover the result --
// except when one array is shorter than its own requested count (the
// unequal-length case), in which case the shortfall is filled by
// walking both arrays past what their prefixes already consumed and
// taking whichever side still has an element at that position
// (recursively blended when both do), until the result reaches
// total_len.
func blendArraysPrefix(mockArr, realArr []interface{}, ratio float64) []interface{} {
	totalLen := len(mockArr)
	if len(realArr) > totalLen {
		totalLen = len(realArr)
	}
	if totalLen == 0 {
		return []interface{}{}
	}

	mockCountRaw := int(math.Floor((1 - ratio) * float64(totalLen)))
	realCountRaw := totalLen - mockCountRaw

	mockCount := mockCountRaw
	if mockCount > len(mockArr) {
		mockCount = len(mockArr)
	}
	realCount := realCountRaw
	if realCount > len(realArr) {
		realCount = len(realArr)
	}

	result := make([]interface{}, 0, totalLen)
	result = append(result, mockArr[:mockCount]...)
	result = append(result, realArr[:realCount]...)

	for i := 0; len(result) < totalLen; i++ {
		mv, mok := indexAt(mockArr, mockCount+i)
		rv, rok := indexAt(realArr, realCount+i)
		switch {
		case mok && rok:
			result = append(result, blendFieldLevel(mv, rv, ratio))
		case mok:
			result = append(result, mv)
		case rok:
			result = append(result, rv)
		default:
			return result
		}
	}
	return result
}

// blendArraysZip implements BodyBlend's array semantics: index by
// index, recursively blending where both sides have an element and
// keeping whichever side has one where only one does.
func blendArraysZip(mockArr, realArr []interface{}, ratio float64) []interface{} {
	maxLen := len(mockArr)
	if len(realArr) > maxLen {
		maxLen = len(realArr)
	}
	result := make([]interface{}, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		mv, mok := indexAt(mockArr, i)
		rv, rok := indexAt(realArr, i)
		switch {
		case mok && rok:
			result = append(result, blendBody(mv, rv, ratio))
		case mok:
			result = append(result, mv)
		case rok:
			result = append(result, rv)
		}
	}
	return result
}

func indexAt(s []interface{}, i int) (interface{}, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

// blendScalar handles number/number weighted averaging, string/bool
// threshold selection, and type-mismatch threshold selection -- all
// at a 0.5 boundary except numbers, which interpolate.
func blendScalar(mock, real interface{}, ratio float64) interface{} {
	mockNum, mockIsNum := asFloat64(mock)
	realNum, realIsNum := asFloat64(real)
	if mockIsNum && realIsNum {
		return mockNum*(1-ratio) + realNum*ratio
	}

	mockStr, mockIsStr := mock.(string)
	realStr, realIsStr := real.(string)
	if mockIsStr && realIsStr {
		if ratio < 0.5 {
			return mockStr
		}
		return realStr
	}

	mockBool, mockIsBool := mock.(bool)
	realBool, realIsBool := real.(bool)
	if mockIsBool && realIsBool {
		if ratio < 0.5 {
			return mockBool
		}
		return realBool
	}

	if ratio >= 0.5 {
		return real
	}
	return mock
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func clamp01(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
