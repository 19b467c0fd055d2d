package anim

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// WrapMode is the policy for a playback cursor that leaves the curve's time
// domain.
type WrapMode uint8

const (
	// WrapLoop wraps the cursor back into [0, length).
	WrapLoop WrapMode = iota
	// WrapOnce saturates at the domain edge and reports completion once.
	WrapOnce
	// WrapClamp saturates at the domain edge, holding the boundary value,
	// and reports completion once.
	WrapClamp
	// WrapDefault defers to the curve's own default wrap mode.
	WrapDefault
)

// Keyframe is one (time, value) sample on a curve.
type Keyframe struct {
	Time  float32
	Value Value
}

// ValueAnimation is a keyframed curve over a single typed value. Curves are
// shared, read-mostly resources; they carry their own default wrap mode and
// easing kernel.
type ValueAnimation struct {
	valueType   ValueType
	interpolate bool
	easing      ease.TweenFunc
	defaultWrap WrapMode
	keyframes   []Keyframe
}

// NewValueAnimation creates an empty curve of the given value type with
// linear interpolation and loop wrapping by default.
func NewValueAnimation(t ValueType) *ValueAnimation {
	return &ValueAnimation{
		valueType:   t,
		interpolate: true,
		easing:      ease.Linear,
		defaultWrap: WrapLoop,
	}
}

// ValueType returns the declared type of the curve's values.
func (a *ValueAnimation) ValueType() ValueType {
	return a.valueType
}

// SetInterpolation toggles between interpolated and stepped sampling.
func (a *ValueAnimation) SetInterpolation(on bool) {
	a.interpolate = on
}

// SetEasing replaces the easing kernel used between keyframes.
func (a *ValueAnimation) SetEasing(fn ease.TweenFunc) {
	a.easing = fn
}

// SetDefaultWrapMode sets the wrap mode used by bindings with WrapDefault.
func (a *ValueAnimation) SetDefaultWrapMode(m WrapMode) {
	if m != WrapDefault {
		a.defaultWrap = m
	}
}

// DefaultWrapMode returns the curve's own wrap mode.
func (a *ValueAnimation) DefaultWrapMode() WrapMode {
	return a.defaultWrap
}

// SetKeyframe inserts or replaces the keyframe at time. It fails when the
// value's type does not match the curve's declared type or time is negative.
func (a *ValueAnimation) SetKeyframe(time float32, v Value) bool {
	if v.Type != a.valueType || time < 0 {
		return false
	}
	i := sort.Search(len(a.keyframes), func(i int) bool {
		return a.keyframes[i].Time >= time
	})
	if i < len(a.keyframes) && a.keyframes[i].Time == time {
		a.keyframes[i].Value = v
		return true
	}
	a.keyframes = append(a.keyframes, Keyframe{})
	copy(a.keyframes[i+1:], a.keyframes[i:])
	a.keyframes[i] = Keyframe{Time: time, Value: v}
	return true
}

// Valid reports whether the curve has at least one keyframe.
func (a *ValueAnimation) Valid() bool {
	return len(a.keyframes) > 0
}

// Length returns the time of the last keyframe, or 0 for an empty curve.
func (a *ValueAnimation) Length() float32 {
	if len(a.keyframes) == 0 {
		return 0
	}
	return a.keyframes[len(a.keyframes)-1].Time
}

// ValueAt samples the curve at time. Times outside the keyframe range clamp
// to the first or last keyframe.
func (a *ValueAnimation) ValueAt(time float32) Value {
	n := len(a.keyframes)
	if n == 0 {
		return Value{Type: a.valueType}
	}
	if time <= a.keyframes[0].Time {
		return a.keyframes[0].Value
	}
	if time >= a.keyframes[n-1].Time {
		return a.keyframes[n-1].Value
	}
	i := sort.Search(n, func(i int) bool {
		return a.keyframes[i].Time > time
	})
	k0, k1 := a.keyframes[i-1], a.keyframes[i]
	if !a.interpolate || k1.Time == k0.Time {
		return k0.Value
	}
	t := (time - k0.Time) / (k1.Time - k0.Time)
	return Interpolate(k0.Value, k1.Value, t, a.easing)
}
