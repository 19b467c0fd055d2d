package anim

import (
	"sort"

	"github.com/automoto/animsync/shared/gamemath"
	"github.com/automoto/animsync/shared/wire"
)

// AnimationControl is the controller's bookkeeping for one playing clip:
// fade target, playback speed, autofade and the pending set-time/set-weight
// commands with their revision counters. The revisions wrap at 255 on
// purpose; receivers only compare for inequality.
type AnimationControl struct {
	Name string
	Hash wire.StringHash

	Speed              float32
	TargetWeight       float32
	FadeTime           float32
	AutoFadeTime       float32
	RemoveOnCompletion bool

	setTime      uint16
	setTimeRev   uint8
	setTimeTTL   float32
	setWeight    uint8
	setWeightRev uint8
	setWeightTTL float32
}

func newAnimationControl(name string) *AnimationControl {
	return &AnimationControl{
		Name:               name,
		Hash:               wire.Hash(name),
		Speed:              1,
		RemoveOnCompletion: true,
	}
}

// AnimationController multiplexes any number of clip playbacks on one target,
// fading weights toward their targets each tick and retiring finished
// playbacks. It is the unit of replication: any command marks it dirty and
// the server re-encodes its network attribute.
type AnimationController struct {
	clips  *ClipLibrary
	target AttributeTarget
	ref    Ref

	animations []*AnimationControl
	states     map[wire.StringHash]*AnimationState
	nodeStates []*AnimationState

	netDirty bool
	onDirty  func()
}

// NewAnimationController creates a controller resolving clips from the given
// library and applying them to target.
func NewAnimationController(clips *ClipLibrary, target AttributeTarget, ref Ref) *AnimationController {
	return &AnimationController{
		clips:  clips,
		target: target,
		ref:    ref,
		states: make(map[wire.StringHash]*AnimationState),
	}
}

// SetOnDirty registers a hook fired whenever the controller's replicated
// state changes.
func (c *AnimationController) SetOnDirty(fn func()) {
	c.onDirty = fn
}

// ConsumeNetDirty reports whether the replicated state changed since the last
// call, and clears the flag.
func (c *AnimationController) ConsumeNetDirty() bool {
	d := c.netDirty
	c.netDirty = false
	return d
}

func (c *AnimationController) markDirty() {
	c.netDirty = true
	if c.onDirty != nil {
		c.onDirty()
	}
}

// Play starts or retargets the named clip on the given layer, fading its
// weight to 1 over fadeTime. The weight ramps during Update; a zero fade
// time snaps it on the next update. It fails when the clip cannot be
// resolved.
func (c *AnimationController) Play(name string, layer uint8, looped bool, fadeTime float32) bool {
	ctrl, state := c.ensure(name)
	if ctrl == nil {
		return false
	}
	state.SetLayer(layer)
	state.SetLooped(looped)
	ctrl.TargetWeight = 1
	ctrl.FadeTime = fadeTime
	c.markDirty()
	return true
}

// PlayExclusive plays the named clip and fades every other clip on the same
// layer out over the same time.
func (c *AnimationController) PlayExclusive(name string, layer uint8, looped bool, fadeTime float32) bool {
	if !c.Play(name, layer, looped, fadeTime) {
		return false
	}
	c.FadeOthers(name, 0, fadeTime)
	return true
}

// Stop fades the named clip out over fadeOutTime. A zero fade time drops the
// weight on the next update. Removal happens in Update once the weight
// reaches zero, gated on RemoveOnCompletion.
func (c *AnimationController) Stop(name string, fadeOutTime float32) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	if ctrl == nil {
		return false
	}
	ctrl.TargetWeight = 0
	ctrl.FadeTime = fadeOutTime
	c.markDirty()
	return true
}

// StopLayer fades out every clip playing on the given layer.
func (c *AnimationController) StopLayer(layer uint8, fadeOutTime float32) {
	for _, ctrl := range c.Controls() {
		if state := c.states[ctrl.Hash]; state != nil && state.Layer() == layer {
			c.Stop(ctrl.Name, fadeOutTime)
		}
	}
}

// StopAll fades out every playing clip.
func (c *AnimationController) StopAll(fadeOutTime float32) {
	for i := len(c.animations) - 1; i >= 0; i-- {
		c.Stop(c.animations[i].Name, fadeOutTime)
	}
}

// Fade fades the named clip's weight toward targetWeight over fadeTime.
func (c *AnimationController) Fade(name string, targetWeight, fadeTime float32) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	if ctrl == nil {
		return false
	}
	ctrl.TargetWeight = gamemath.Clamp01(targetWeight)
	ctrl.FadeTime = fadeTime
	c.markDirty()
	return true
}

// FadeOthers fades every other clip on the named clip's layer toward
// targetWeight.
func (c *AnimationController) FadeOthers(name string, targetWeight, fadeTime float32) bool {
	hash := wire.Hash(name)
	self := c.states[hash]
	if self == nil {
		return false
	}
	for _, ctrl := range c.animations {
		if ctrl.Hash == hash {
			continue
		}
		if state := c.states[ctrl.Hash]; state != nil && state.Layer() == self.Layer() {
			ctrl.TargetWeight = gamemath.Clamp01(targetWeight)
			ctrl.FadeTime = fadeTime
		}
	}
	c.markDirty()
	return true
}

// SetTime sets the named clip's playback position and arms a timed set-time
// command so late-joining receivers snap to the same position.
func (c *AnimationController) SetTime(name string, time float32) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	state := c.states[wire.Hash(name)]
	if ctrl == nil || state == nil || state.Clip().Length <= 0 {
		return false
	}
	state.SetTime(time)
	ctrl.setTime = uint16(gamemath.Clamp01(state.Time()/state.Clip().Length)*65535 + 0.5)
	ctrl.setTimeRev++
	ctrl.setTimeTTL = CommandStayTime
	c.markDirty()
	return true
}

// SetWeight snaps the named clip's weight immediately, cancelling any fade in
// progress, and arms a timed set-weight command.
func (c *AnimationController) SetWeight(name string, weight float32) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	state := c.states[wire.Hash(name)]
	if ctrl == nil || state == nil {
		return false
	}
	weight = gamemath.Clamp01(weight)
	state.SetWeight(weight)
	ctrl.TargetWeight = weight
	ctrl.FadeTime = 0
	ctrl.setWeight = uint8(weight*255 + 0.5)
	ctrl.setWeightRev++
	ctrl.setWeightTTL = CommandStayTime
	c.markDirty()
	return true
}

// SetSpeed sets the named clip's playback rate multiplier.
func (c *AnimationController) SetSpeed(name string, speed float32) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	if ctrl == nil {
		return false
	}
	ctrl.Speed = speed
	c.markDirty()
	return true
}

// SetLooped sets whether the named clip wraps at its length.
func (c *AnimationController) SetLooped(name string, looped bool) bool {
	state := c.states[wire.Hash(name)]
	if state == nil {
		return false
	}
	state.SetLooped(looped)
	c.markDirty()
	return true
}

// SetBlendMode sets how the named clip combines with the base pose.
func (c *AnimationController) SetBlendMode(name string, mode BlendMode) bool {
	state := c.states[wire.Hash(name)]
	if state == nil {
		return false
	}
	state.SetBlendMode(mode)
	c.markDirty()
	return true
}

// SetLayer moves the named clip to another blend layer.
func (c *AnimationController) SetLayer(name string, layer uint8) bool {
	state := c.states[wire.Hash(name)]
	if state == nil {
		return false
	}
	state.SetLayer(layer)
	c.markDirty()
	return true
}

// SetStartBone restricts the named clip to a subtree. Zero clears the
// restriction.
func (c *AnimationController) SetStartBone(name string, bone wire.StringHash) bool {
	state := c.states[wire.Hash(name)]
	if state == nil {
		return false
	}
	state.SetStartBone(bone)
	c.markDirty()
	return true
}

// SetAutoFade sets the fade-out time applied automatically when a non-looping
// clip reaches its end. Zero disables autofade.
func (c *AnimationController) SetAutoFade(name string, fadeOutTime float32) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	if ctrl == nil {
		return false
	}
	ctrl.AutoFadeTime = fadeOutTime
	c.markDirty()
	return true
}

// SetRemoveOnCompletion sets whether a fully faded-out finished clip is
// removed from the controller.
func (c *AnimationController) SetRemoveOnCompletion(name string, remove bool) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	if ctrl == nil {
		return false
	}
	ctrl.RemoveOnCompletion = remove
	c.markDirty()
	return true
}

// IsPlaying reports whether the named clip is currently tracked.
func (c *AnimationController) IsPlaying(name string) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	return ctrl != nil
}

// IsAtEnd reports whether the named clip has reached its end, or false when
// it is not playing.
func (c *AnimationController) IsAtEnd(name string) bool {
	state := c.states[wire.Hash(name)]
	return state != nil && state.IsAtEnd()
}

// IsFadingIn reports whether the named clip's weight is ramping up toward a
// higher fade target.
func (c *AnimationController) IsFadingIn(name string) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	state := c.states[wire.Hash(name)]
	if ctrl == nil || state == nil {
		return false
	}
	return ctrl.FadeTime > 0 && state.Weight() < ctrl.TargetWeight
}

// IsFadingOut reports whether the named clip's weight is ramping down, either
// toward a lower fade target or through autofade at the clip's end.
func (c *AnimationController) IsFadingOut(name string) bool {
	ctrl, _ := c.findControl(wire.Hash(name))
	state := c.states[wire.Hash(name)]
	if ctrl == nil || state == nil {
		return false
	}
	if ctrl.FadeTime > 0 && state.Weight() > ctrl.TargetWeight {
		return true
	}
	return ctrl.AutoFadeTime > 0 && state.IsAtEnd()
}

// Speed returns the named clip's playback rate, or 0 when not playing.
func (c *AnimationController) Speed(name string) float32 {
	if ctrl, _ := c.findControl(wire.Hash(name)); ctrl != nil {
		return ctrl.Speed
	}
	return 0
}

// Time returns the named clip's playback position, or 0 when not playing.
func (c *AnimationController) Time(name string) float32 {
	if state := c.states[wire.Hash(name)]; state != nil {
		return state.Time()
	}
	return 0
}

// Weight returns the named clip's current blend weight, or 0 when not
// playing.
func (c *AnimationController) Weight(name string) float32 {
	if state := c.states[wire.Hash(name)]; state != nil {
		return state.Weight()
	}
	return 0
}

// FadeTarget returns the weight the named clip is fading toward, or 0.
func (c *AnimationController) FadeTarget(name string) float32 {
	if ctrl, _ := c.findControl(wire.Hash(name)); ctrl != nil {
		return ctrl.TargetWeight
	}
	return 0
}

// FadeTime returns the named clip's remaining fade duration parameter, or 0.
func (c *AnimationController) FadeTime(name string) float32 {
	if ctrl, _ := c.findControl(wire.Hash(name)); ctrl != nil {
		return ctrl.FadeTime
	}
	return 0
}

// AutoFade returns the named clip's autofade time, or 0.
func (c *AnimationController) AutoFade(name string) float32 {
	if ctrl, _ := c.findControl(wire.Hash(name)); ctrl != nil {
		return ctrl.AutoFadeTime
	}
	return 0
}

// AnimationState returns the playing state for the named clip, or nil.
func (c *AnimationController) AnimationState(name string) *AnimationState {
	return c.states[wire.Hash(name)]
}

// Controls returns the tracked controls in playback-start order.
func (c *AnimationController) Controls() []*AnimationControl {
	out := make([]*AnimationControl, len(c.animations))
	copy(out, c.animations)
	return out
}

// AddNodeAnimationState registers an externally owned state so it is applied
// each update and saved with the scene. States beyond the cap are dropped.
func (c *AnimationController) AddNodeAnimationState(state *AnimationState) {
	if state == nil || len(c.nodeStates) >= MaxNodeAnimationStates {
		return
	}
	c.nodeStates = append(c.nodeStates, state)
}

// RemoveNodeAnimationState unregisters an externally owned state.
func (c *AnimationController) RemoveNodeAnimationState(state *AnimationState) {
	for i, s := range c.nodeStates {
		if s == state {
			c.nodeStates = append(c.nodeStates[:i], c.nodeStates[i+1:]...)
			return
		}
	}
}

// NodeAnimationStates returns the externally owned states.
func (c *AnimationController) NodeAnimationStates() []*AnimationState {
	return c.nodeStates
}

// Update advances every tracked clip by dt: moves cursors, fades weights
// toward their targets, applies autofade at clip end, expires timed commands
// and retires playbacks whose weight has reached zero. Surviving states are
// then applied to the target in layer order.
func (c *AnimationController) Update(dt float32) {
	for i := 0; i < len(c.animations); {
		ctrl := c.animations[i]
		state := c.states[ctrl.Hash]
		if state == nil {
			c.animations = append(c.animations[:i], c.animations[i+1:]...)
			c.markDirty()
			continue
		}

		if ctrl.Speed != 0 {
			state.AddTime(dt * ctrl.Speed)
		}

		targetWeight := ctrl.TargetWeight
		fadeTime := ctrl.FadeTime
		if ctrl.AutoFadeTime > 0 && state.IsAtEnd() {
			targetWeight = 0
			fadeTime = ctrl.AutoFadeTime
		}

		if w := state.Weight(); w != targetWeight {
			if fadeTime > 0 {
				state.SetWeight(gamemath.MoveToward(w, targetWeight, dt/fadeTime))
			} else {
				state.SetWeight(targetWeight)
			}
		}

		if ctrl.setTimeTTL > 0 {
			ctrl.setTimeTTL -= dt
			if ctrl.setTimeTTL <= 0 {
				ctrl.setTimeTTL = 0
				c.markDirty()
			}
		}
		if ctrl.setWeightTTL > 0 {
			ctrl.setWeightTTL -= dt
			if ctrl.setWeightTTL <= 0 {
				ctrl.setWeightTTL = 0
				c.markDirty()
			}
		}

		if ctrl.RemoveOnCompletion && state.Weight() == 0 &&
			(targetWeight == 0 || state.IsAtEnd()) {
			c.removeAt(i)
			c.markDirty()
			continue
		}
		i++
	}

	c.apply()
}

func (c *AnimationController) apply() {
	states := make([]*AnimationState, 0, len(c.animations)+len(c.nodeStates))
	for _, ctrl := range c.animations {
		if s := c.states[ctrl.Hash]; s != nil {
			states = append(states, s)
		}
	}
	states = append(states, c.nodeStates...)
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].Layer() < states[j].Layer()
	})
	for _, s := range states {
		s.Apply()
	}
}

// ensure resolves name to a clip and returns its control and state, creating
// both if needed.
func (c *AnimationController) ensure(name string) (*AnimationControl, *AnimationState) {
	clip := c.clips.Get(name)
	if clip == nil {
		return nil, nil
	}
	ctrl, _ := c.findControl(clip.Hash())
	if ctrl == nil {
		ctrl = newAnimationControl(clip.Name)
		c.animations = append(c.animations, ctrl)
	}
	state := c.states[ctrl.Hash]
	if state == nil {
		state = NewAnimationState(clip, c.target, c.ref)
		c.states[ctrl.Hash] = state
	}
	return ctrl, state
}

func (c *AnimationController) findControl(hash wire.StringHash) (*AnimationControl, int) {
	for i, ctrl := range c.animations {
		if ctrl.Hash == hash {
			return ctrl, i
		}
	}
	return nil, -1
}

func (c *AnimationController) removeAt(i int) {
	ctrl := c.animations[i]
	delete(c.states, ctrl.Hash)
	c.animations = append(c.animations[:i], c.animations[i+1:]...)
}
