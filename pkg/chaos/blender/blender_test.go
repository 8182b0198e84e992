package blender

import "testing"

func TestBlendRatioZeroReturnsMock(t *testing.T) {
	mock := map[string]interface{}{"id": 1.0, "name": "Mock"}
	real := map[string]interface{}{"id": 2.0, "name": "Real"}
	got := Blend(mock, real, 0.0, nil, StrategyFieldLevel)
	gotMap := got.(map[string]interface{})
	if gotMap["id"] != 1.0 || gotMap["name"] != "Mock" {
		t.Fatalf("expected pure mock at ratio 0.0, got %+v", gotMap)
	}
}

func TestBlendRatioOneReturnsReal(t *testing.T) {
	mock := map[string]interface{}{"id": 1.0, "name": "Mock"}
	real := map[string]interface{}{"id": 2.0, "name": "Real"}
	got := Blend(mock, real, 1.0, nil, StrategyFieldLevel)
	gotMap := got.(map[string]interface{})
	if gotMap["id"] != 2.0 || gotMap["name"] != "Real" {
		t.Fatalf("expected pure real at ratio 1.0, got %+v", gotMap)
	}
}

// TestFieldLevelBlendWithFieldConfig covers the literal scenario:
// mock={"id":1,"name":"Mock"}, real={"id":2,"name":"Real","status":"active"},
// global ratio 0.5, field config {"status":1.0}.
func TestFieldLevelBlendWithFieldConfig(t *testing.T) {
	mock := map[string]interface{}{"id": 1.0, "name": "Mock"}
	real := map[string]interface{}{"id": 2.0, "name": "Real", "status": "active"}
	fc := NewFieldRealityConfig(map[string]float64{"status": 1.0})

	got := Blend(mock, real, 0.5, fc, StrategyFieldLevel)
	gotMap := got.(map[string]interface{})

	if gotMap["id"] != 1.5 {
		t.Fatalf("expected id=1.5 (numeric average), got %v", gotMap["id"])
	}
	if gotMap["name"] != "Real" {
		t.Fatalf("expected name=Real (threshold select at 0.5), got %v", gotMap["name"])
	}
	if gotMap["status"] != "active" {
		t.Fatalf("expected status=active (field override ratio 1.0), got %v", gotMap["status"])
	}
}

func TestBlendStatusCodeThreshold(t *testing.T) {
	if got := BlendStatusCode(200, 404, 0.3); got != 200 {
		t.Fatalf("expected 200 at ratio 0.3, got %d", got)
	}
	if got := BlendStatusCode(200, 404, 0.7); got != 404 {
		t.Fatalf("expected 404 at ratio 0.7, got %d", got)
	}
}

func TestBlendArraysUnequalLengthResultEqualsMax(t *testing.T) {
	mock := []interface{}{1.0, 2.0}
	real := []interface{}{10.0, 20.0, 30.0, 40.0}
	got := Blend(mock, real, 0.5, nil, StrategyFieldLevel)
	gotArr := got.([]interface{})
	maxLen := len(real)
	if len(gotArr) != maxLen {
		t.Fatalf("expected blended array length == max(|mock|,|real|)=%d, got %d (%+v)", maxLen, len(gotArr), gotArr)
	}
}

func TestBlendWeightedIsDeterministicThreshold(t *testing.T) {
	if got := Blend(1.0, 2.0, 0.49, nil, StrategyWeighted); got != 1.0 {
		t.Fatalf("expected mock below 0.5 threshold, got %v", got)
	}
	if got := Blend(1.0, 2.0, 0.6, nil, StrategyWeighted); got != 2.0 {
		t.Fatalf("expected real at/above 0.5 threshold, got %v", got)
	}
}

func TestBlendBodyKeepsUnmatchedKeysUnconditionally(t *testing.T) {
	mock := map[string]interface{}{"a": 1.0, "only_mock": "x"}
	real := map[string]interface{}{"a": 2.0, "only_real": "y"}
	got := Blend(mock, real, 0.1, nil, StrategyBodyBlend)
	gotMap := got.(map[string]interface{})
	if gotMap["only_mock"] != "x" {
		t.Fatalf("expected only_mock kept regardless of ratio in BodyBlend, got %+v", gotMap)
	}
	if gotMap["only_real"] != "y" {
		t.Fatalf("expected only_real kept regardless of ratio in BodyBlend, got %+v", gotMap)
	}
}
