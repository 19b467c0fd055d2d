package anim

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestSetKeyframeKeepsOrder(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	a.SetKeyframe(1.0, FloatValue(10))
	a.SetKeyframe(0.0, FloatValue(0))
	a.SetKeyframe(0.5, FloatValue(5))

	if got := a.Length(); got != 1.0 {
		t.Fatalf("Length = %v, want 1", got)
	}
	if v := a.ValueAt(0.25); !almostEqual(v.Float, 2.5) {
		t.Errorf("ValueAt(0.25) = %v, want 2.5", v.Float)
	}
	if v := a.ValueAt(0.75); !almostEqual(v.Float, 7.5) {
		t.Errorf("ValueAt(0.75) = %v, want 7.5", v.Float)
	}
}

func TestSetKeyframeReplacesSameTime(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	a.SetKeyframe(0, FloatValue(1))
	a.SetKeyframe(0, FloatValue(2))
	if v := a.ValueAt(0); v.Float != 2 {
		t.Errorf("ValueAt(0) = %v, want 2", v.Float)
	}
}

func TestSetKeyframeRejectsBadInput(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	if a.SetKeyframe(0, BoolValue(true)) {
		t.Error("type-mismatched keyframe accepted")
	}
	if a.SetKeyframe(-1, FloatValue(0)) {
		t.Error("negative-time keyframe accepted")
	}
	if a.Valid() {
		t.Error("curve with only rejected keyframes reports valid")
	}
}

func TestValueAtClampsOutsideRange(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	a.SetKeyframe(0.5, FloatValue(1))
	a.SetKeyframe(1.5, FloatValue(3))

	if v := a.ValueAt(0); v.Float != 1 {
		t.Errorf("ValueAt before first keyframe = %v, want 1", v.Float)
	}
	if v := a.ValueAt(2); v.Float != 3 {
		t.Errorf("ValueAt past last keyframe = %v, want 3", v.Float)
	}
}

func TestSteppedSampling(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	a.SetInterpolation(false)
	a.SetKeyframe(0, FloatValue(0))
	a.SetKeyframe(1, FloatValue(10))

	if v := a.ValueAt(0.9); v.Float != 0 {
		t.Errorf("stepped ValueAt(0.9) = %v, want 0", v.Float)
	}
	if v := a.ValueAt(1); v.Float != 10 {
		t.Errorf("stepped ValueAt(1) = %v, want 10", v.Float)
	}
}

func TestEasingApplies(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	a.SetEasing(ease.InQuad)
	a.SetKeyframe(0, FloatValue(0))
	a.SetKeyframe(1, FloatValue(1))

	// InQuad at the midpoint is t^2 = 0.25.
	if v := a.ValueAt(0.5); !almostEqual(v.Float, 0.25) {
		t.Errorf("eased ValueAt(0.5) = %v, want 0.25", v.Float)
	}
}

func TestDiscreteTypesHoldUntilEnd(t *testing.T) {
	a := NewValueAnimation(TypeString)
	a.SetKeyframe(0, StringValue("idle"))
	a.SetKeyframe(1, StringValue("walk"))

	if v := a.ValueAt(0.99); v.Str != "idle" {
		t.Errorf("string ValueAt(0.99) = %q, want idle", v.Str)
	}
	if v := a.ValueAt(1); v.Str != "walk" {
		t.Errorf("string ValueAt(1) = %q, want walk", v.Str)
	}
}

func TestDefaultWrapModeIgnoresDefaultSentinel(t *testing.T) {
	a := NewValueAnimation(TypeFloat)
	a.SetDefaultWrapMode(WrapOnce)
	a.SetDefaultWrapMode(WrapDefault)
	if got := a.DefaultWrapMode(); got != WrapOnce {
		t.Errorf("DefaultWrapMode = %v, want WrapOnce", got)
	}
}
