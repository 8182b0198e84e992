package blender

// BlendStatusCode threshold-selects between two status codes: real
// when ratio>=0.5, mock otherwise.
func BlendStatusCode(mockStatus, realStatus int, ratio float64) int {
	if clamp01(ratio) >= 0.5 {
		return realStatus
	}
	return mockStatus
}

// BlendHeaders merges two header maps: a header present on both sides
// prefers real when ratio>=0.5; a header present on only one side is
// included only when that side's mass dominates (mock-only when
// ratio<0.5, real-only when ratio>=0.5).
func BlendHeaders(mockHeaders, realHeaders map[string]string, ratio float64) map[string]string {
	ratio = clamp01(ratio)
	result := make(map[string]string)
	for key, mv := range mockHeaders {
		if rv, ok := realHeaders[key]; ok {
			if ratio >= 0.5 {
				result[key] = rv
			} else {
				result[key] = mv
			}
		} else if ratio < 0.5 {
			result[key] = mv
		}
	}
	for key, rv := range realHeaders {
		if _, ok := mockHeaders[key]; ok {
			continue
		}
		if ratio >= 0.5 {
			result[key] = rv
		}
	}
	return result
}
