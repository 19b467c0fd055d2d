package anim

import (
	"log"

	"github.com/automoto/animsync/shared/wire"
)

// AnimationsAttr encodes the controller's playbacks in the full-fidelity
// persistence form: a flat value list with five values per track. Unlike the
// network form nothing is quantized and timed commands are not included.
func (c *AnimationController) AnimationsAttr() []Value {
	out := make([]Value, 0, len(c.animations)*5)
	for _, ctrl := range c.animations {
		out = append(out,
			StringValue(ctrl.Name),
			FloatValue(ctrl.Speed),
			FloatValue(ctrl.TargetWeight),
			FloatValue(ctrl.FadeTime),
			FloatValue(ctrl.AutoFadeTime),
		)
	}
	return out
}

// SetAnimationsAttr replaces the controller's playbacks from a persisted
// value list. An incomplete trailing group is discarded; a track whose clip
// cannot be resolved is skipped with a log line.
func (c *AnimationController) SetAnimationsAttr(values []Value) {
	c.animations = nil
	c.states = make(map[wire.StringHash]*AnimationState)

	for i := 0; i+5 <= len(values); i += 5 {
		name := values[i].Str
		ctrl, _ := c.ensure(name)
		if ctrl == nil {
			log.Printf("[anim] unknown animation clip %q in saved state, skipping", name)
			continue
		}
		ctrl.Speed = values[i+1].Float
		ctrl.TargetWeight = values[i+2].Float
		ctrl.FadeTime = values[i+3].Float
		ctrl.AutoFadeTime = values[i+4].Float
	}
	c.markDirty()
}

// NodeAnimationStatesAttr encodes the externally registered states: a count
// followed by five values per state.
func (c *AnimationController) NodeAnimationStatesAttr() []Value {
	out := make([]Value, 0, 1+len(c.nodeStates)*5)
	out = append(out, IntValue(int32(len(c.nodeStates))))
	for _, s := range c.nodeStates {
		out = append(out,
			StringValue(s.Clip().Name),
			BoolValue(s.Looped()),
			FloatValue(s.Weight()),
			FloatValue(s.Time()),
			IntValue(int32(s.Layer())),
		)
	}
	return out
}

// SetNodeAnimationStatesAttr replaces the externally registered states from a
// persisted value list. At most MaxNodeAnimationStates states are restored;
// the rest are silently dropped.
func (c *AnimationController) SetNodeAnimationStatesAttr(values []Value) {
	c.nodeStates = nil
	if len(values) == 0 {
		return
	}
	count := int(values[0].Int)
	if count > MaxNodeAnimationStates {
		count = MaxNodeAnimationStates
	}
	for i := 0; i < count; i++ {
		base := 1 + i*5
		if base+5 > len(values) {
			return
		}
		clip := c.clips.Get(values[base].Str)
		if clip == nil {
			log.Printf("[anim] unknown animation clip %q in saved state, skipping", values[base].Str)
			continue
		}
		s := NewAnimationState(clip, c.target, c.ref)
		s.SetLooped(values[base+1].Bool)
		s.SetWeight(values[base+2].Float)
		s.SetTime(values[base+3].Float)
		s.SetLayer(uint8(values[base+4].Int))
		c.nodeStates = append(c.nodeStates, s)
	}
}
