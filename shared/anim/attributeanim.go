package anim

// AttributeAnimationInfo binds a playback cursor to one attribute on a target.
// The target is reached through a Ref so a destroyed owner drops the write
// instead of touching freed state.
type AttributeAnimationInfo struct {
	*ValueAnimationInfo
	target AttributeTarget
	ref    Ref
	info   *AttributeInfo
}

// NewAttributeAnimationInfo binds animation to the target attribute described
// by info.
func NewAttributeAnimationInfo(target AttributeTarget, ref Ref, info *AttributeInfo, animation *ValueAnimation, wrap WrapMode, speed float32) *AttributeAnimationInfo {
	return &AttributeAnimationInfo{
		ValueAnimationInfo: NewValueAnimationInfo(animation, wrap, speed),
		target:             target,
		ref:                ref,
		info:               info,
	}
}

// Info returns the metadata of the bound attribute.
func (ai *AttributeAnimationInfo) Info() *AttributeInfo {
	return ai.info
}

// Update advances the cursor and pushes the sampled value to the target.
// It reports whether a non-looping playback has just completed.
func (ai *AttributeAnimationInfo) Update(dt float32) bool {
	v, finished := ai.ValueAnimationInfo.Update(dt)
	ai.apply(v)
	return finished
}

// SetTime moves the cursor and immediately pushes the value at the new
// position.
func (ai *AttributeAnimationInfo) SetTime(t float32) {
	ai.ValueAnimationInfo.SetTime(t)
	ai.apply(ai.animation.ValueAt(ai.time))
}

func (ai *AttributeAnimationInfo) apply(v Value) {
	if ai.ref != nil && !ai.ref.Alive() {
		return
	}
	if ai.target.SetAttribute(ai.info.Name, v) {
		ai.target.ApplyAttributes()
	}
}
