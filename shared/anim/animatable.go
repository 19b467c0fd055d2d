package anim

import "log"

// Animatable drives attribute animations on one target. Animations can be
// attached one by one through SetAttributeAnimation or in bulk by
// instantiating an ObjectAnimation template; template edits fan out to every
// Animatable that instantiated it.
type Animatable struct {
	target  AttributeTarget
	self    Ref
	enabled bool

	objectAnimation *ObjectAnimation
	infos           map[string]*AttributeAnimationInfo
	order           []string
	networkAttrs    map[*AttributeInfo]struct{}
	templateBound   map[string]bool

	// OnAnimationAdded fires when the first animation is attached,
	// OnAnimationRemoved when the last one detaches. The entity layer uses
	// them to schedule and unschedule per-frame updates.
	OnAnimationAdded   func()
	OnAnimationRemoved func()
}

// NewAnimatable creates an enabled Animatable driving target. The self ref
// guards against the owner being destroyed by an animated attribute write.
func NewAnimatable(target AttributeTarget, self Ref) *Animatable {
	return &Animatable{
		target:        target,
		self:          self,
		enabled:       true,
		infos:         make(map[string]*AttributeAnimationInfo),
		networkAttrs:  make(map[*AttributeInfo]struct{}),
		templateBound: make(map[string]bool),
	}
}

// SetEnabled toggles animation updates without detaching anything.
func (a *Animatable) SetEnabled(on bool) {
	a.enabled = on
}

// Enabled reports whether updates are applied.
func (a *Animatable) Enabled() bool {
	return a.enabled
}

// ObjectAnimation returns the instantiated template, or nil.
func (a *Animatable) ObjectAnimation() *ObjectAnimation {
	return a.objectAnimation
}

// SetObjectAnimation instantiates a template, detaching any tracks the
// previous template contributed first. Manually attached animations are left
// alone. Passing nil just detaches.
func (a *Animatable) SetObjectAnimation(oa *ObjectAnimation) {
	if a.objectAnimation == oa {
		return
	}
	if a.objectAnimation != nil {
		a.objectAnimation.Unsubscribe(a)
		for name := range a.templateBound {
			a.removeAttributeAnimation(name)
		}
		a.templateBound = make(map[string]bool)
	}
	a.objectAnimation = oa
	if oa == nil {
		return
	}
	oa.Subscribe(a)
	for _, name := range oa.Names() {
		a.attachTemplateTrack(name)
	}
}

// SetAttributeAnimation attaches, replaces or removes the animation for the
// named attribute. A nil animation removes. Attaching the same curve again
// only updates wrap mode and speed, keeping the cursor position. Attaching
// fails when the attribute does not exist on the target or the curve's value
// type does not match the attribute's.
func (a *Animatable) SetAttributeAnimation(name string, animation *ValueAnimation, wrap WrapMode, speed float32) bool {
	if animation == nil {
		a.removeAttributeAnimation(name)
		delete(a.templateBound, name)
		return true
	}

	if existing, ok := a.infos[name]; ok && existing.Animation() == animation {
		existing.SetWrapMode(wrap)
		existing.SetSpeed(speed)
		return true
	}

	info := a.findAttributeInfo(name)
	if info == nil {
		log.Printf("[anim] no attribute %q on target, not animating", name)
		return false
	}
	if animation.ValueType() != info.Type {
		log.Printf("[anim] animation type %v does not match attribute %q type %v", animation.ValueType(), name, info.Type)
		return false
	}

	a.removeAttributeAnimation(name)
	wasEmpty := len(a.infos) == 0
	a.infos[name] = NewAttributeAnimationInfo(a.target, a.self, info, animation, wrap, speed)
	a.order = append(a.order, name)
	if info.Network {
		a.networkAttrs[info] = struct{}{}
	}
	if wasEmpty && a.OnAnimationAdded != nil {
		a.OnAnimationAdded()
	}
	return true
}

// AttributeAnimation returns the curve animating name, or nil.
func (a *Animatable) AttributeAnimation(name string) *ValueAnimation {
	if ai, ok := a.infos[name]; ok {
		return ai.Animation()
	}
	return nil
}

// AttributeAnimationInfo returns the binding for name, or nil.
func (a *Animatable) AttributeAnimationInfo(name string) *AttributeAnimationInfo {
	return a.infos[name]
}

// IsAnimatedNetworkAttribute reports whether info is currently driven by an
// animation. Replication uses this to skip attributes the receiver already
// animates locally.
func (a *Animatable) IsAnimatedNetworkAttribute(info *AttributeInfo) bool {
	_, ok := a.networkAttrs[info]
	return ok
}

// UpdateAttributeAnimations advances every attached animation by dt. If an
// animated write destroys the owner, the remaining animations are skipped.
// Non-looping animations that complete are detached afterwards.
func (a *Animatable) UpdateAttributeAnimations(dt float32) {
	if !a.enabled || len(a.infos) == 0 {
		return
	}
	if a.self != nil && !a.self.Alive() {
		return
	}

	var finished []string
	for _, name := range a.order {
		ai, ok := a.infos[name]
		if !ok {
			continue
		}
		if ai.Update(dt) {
			finished = append(finished, name)
		}
		if a.self != nil && !a.self.Alive() {
			return
		}
	}
	for _, name := range finished {
		a.removeAttributeAnimation(name)
		delete(a.templateBound, name)
	}
}

// ObjectAnimationTrackAdded implements ObjectAnimationObserver.
func (a *Animatable) ObjectAnimationTrackAdded(oa *ObjectAnimation, name string) {
	if oa != a.objectAnimation {
		return
	}
	a.attachTemplateTrack(name)
}

// ObjectAnimationTrackRemoved implements ObjectAnimationObserver.
func (a *Animatable) ObjectAnimationTrackRemoved(oa *ObjectAnimation, name string) {
	if oa != a.objectAnimation || !a.templateBound[name] {
		return
	}
	a.removeAttributeAnimation(name)
	delete(a.templateBound, name)
}

func (a *Animatable) attachTemplateTrack(name string) {
	entry := a.objectAnimation.Entry(name)
	if entry == nil {
		return
	}
	if a.SetAttributeAnimation(name, entry.Animation, entry.Wrap, entry.Speed) {
		a.templateBound[name] = true
	}
}

func (a *Animatable) removeAttributeAnimation(name string) {
	ai, ok := a.infos[name]
	if !ok {
		return
	}
	delete(a.infos, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	if ai.Info().Network {
		// Another animation may still drive a different instance of the
		// same attribute set; only drop the flag when no binding remains.
		still := false
		for _, other := range a.infos {
			if other.Info() == ai.Info() {
				still = true
				break
			}
		}
		if !still {
			delete(a.networkAttrs, ai.Info())
		}
	}
	if len(a.infos) == 0 && a.OnAnimationRemoved != nil {
		a.OnAnimationRemoved()
	}
}

func (a *Animatable) findAttributeInfo(name string) *AttributeInfo {
	for _, info := range a.target.AttributeInfos() {
		if info.Name == name {
			return info
		}
	}
	return nil
}
