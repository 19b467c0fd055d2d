package anim

import "github.com/automoto/animsync/shared/gamemath"

// ValueAnimationInfo is one playback cursor over a shared curve: current
// time, playback speed and wrap policy. It does not own the curve.
type ValueAnimationInfo struct {
	animation *ValueAnimation
	wrap      WrapMode
	speed     float32
	time      float32
	completed bool
}

// NewValueAnimationInfo creates a cursor at time 0.
func NewValueAnimationInfo(animation *ValueAnimation, wrap WrapMode, speed float32) *ValueAnimationInfo {
	return &ValueAnimationInfo{
		animation: animation,
		wrap:      wrap,
		speed:     speed,
	}
}

// Animation returns the underlying curve.
func (vi *ValueAnimationInfo) Animation() *ValueAnimation {
	return vi.animation
}

// Time returns the current cursor position.
func (vi *ValueAnimationInfo) Time() float32 {
	return vi.time
}

// Speed returns the playback rate multiplier.
func (vi *ValueAnimationInfo) Speed() float32 {
	return vi.speed
}

// SetSpeed sets the playback rate multiplier (negative plays backward).
func (vi *ValueAnimationInfo) SetSpeed(speed float32) {
	vi.speed = speed
}

// WrapMode returns the binding's wrap mode as set, including WrapDefault.
func (vi *ValueAnimationInfo) WrapMode() WrapMode {
	return vi.wrap
}

// SetWrapMode sets the wrap policy.
func (vi *ValueAnimationInfo) SetWrapMode(m WrapMode) {
	vi.wrap = m
}

func (vi *ValueAnimationInfo) effectiveWrap() WrapMode {
	if vi.wrap == WrapDefault {
		return vi.animation.DefaultWrapMode()
	}
	return vi.wrap
}

// SetTime moves the cursor to t, applying the wrap policy. It does not
// sample the curve or push any value.
func (vi *ValueAnimationInfo) SetTime(t float32) {
	vi.time, _ = vi.wrapTime(t)
	vi.completed = false
}

// Update advances the cursor by dt*speed and returns the curve value at the
// new position, plus whether a non-looping playback has just completed.
// Completion is reported once; callers use it to detach the binding.
func (vi *ValueAnimationInfo) Update(dt float32) (Value, bool) {
	wrapped, atEnd := vi.wrapTime(vi.time + dt*vi.speed)
	vi.time = wrapped

	finished := atEnd && !vi.completed
	if atEnd {
		vi.completed = true
	} else {
		vi.completed = false
	}
	return vi.animation.ValueAt(vi.time), finished
}

// wrapTime maps t into the curve's domain and reports whether the cursor sits
// on the terminal edge for a non-looping mode.
func (vi *ValueAnimationInfo) wrapTime(t float32) (float32, bool) {
	length := vi.animation.Length()
	switch vi.effectiveWrap() {
	case WrapLoop:
		return gamemath.Mod(t, length), false
	default: // WrapOnce, WrapClamp
		t = gamemath.Clamp(t, 0, length)
		if vi.speed < 0 {
			return t, t <= 0
		}
		return t, length > 0 && t >= length
	}
}
