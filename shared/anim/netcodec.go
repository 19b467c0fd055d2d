package anim

import (
	"log"

	"github.com/automoto/animsync/shared/gamemath"
	"github.com/automoto/animsync/shared/wire"
)

// How long an armed set-time or set-weight command stays in the network
// attribute so unreliable delivery still catches it.
const CommandStayTime float32 = 0.25

// Fade-out applied to a clip the sender no longer lists.
const DroppedTrackFadeTime float32 = 0.1

// Hard cap on externally registered states, matching the persistence format.
const MaxNodeAnimationStates = 256

const (
	ctrlLooped = 1 << iota
	ctrlStartBone
	ctrlAutoFade
	ctrlSetTime
	ctrlSetWeight
	ctrlRemoveOnCompletion
	ctrlAdditive
)

// NetAnimationsAttr encodes the controller's playbacks into the quantized
// network attribute: a VLE track count followed by one variable-size record
// per track. Set-time and set-weight commands are included only while their
// timers are live.
func (c *AnimationController) NetAnimationsAttr() []byte {
	var live []*AnimationControl
	for _, ctrl := range c.animations {
		if c.states[ctrl.Hash] != nil {
			live = append(live, ctrl)
		}
	}

	var w wire.Writer
	w.WriteVLE(uint32(len(live)))
	for _, ctrl := range live {
		state := c.states[ctrl.Hash]

		var flags uint8
		if state.Looped() {
			flags |= ctrlLooped
		}
		if state.StartBone() != 0 {
			flags |= ctrlStartBone
		}
		if ctrl.AutoFadeTime > 0 {
			flags |= ctrlAutoFade
		}
		if ctrl.setTimeTTL > 0 {
			flags |= ctrlSetTime
		}
		if ctrl.setWeightTTL > 0 {
			flags |= ctrlSetWeight
		}
		if ctrl.RemoveOnCompletion {
			flags |= ctrlRemoveOnCompletion
		}
		if state.BlendMode() == BlendAdditive {
			flags |= ctrlAdditive
		}

		w.WriteString(ctrl.Name)
		w.WriteUByte(flags)
		w.WriteUByte(state.Layer())
		w.WriteShort(int16(gamemath.Clamp(ctrl.Speed*2048, -32767, 32767)))
		w.WriteUByte(uint8(gamemath.Clamp01(ctrl.TargetWeight)*255 + 0.5))
		w.WriteUByte(uint8(gamemath.Clamp(ctrl.FadeTime*64, 0, 255)))
		if flags&ctrlStartBone != 0 {
			w.WriteUInt(uint32(state.StartBone()))
		}
		if flags&ctrlAutoFade != 0 {
			w.WriteUByte(uint8(gamemath.Clamp(ctrl.AutoFadeTime*64, 0, 255)))
		}
		// Command payloads are frozen at issue time; the clock and weight may
		// have moved on since.
		if flags&ctrlSetTime != 0 {
			w.WriteUByte(ctrl.setTimeRev)
			w.WriteUShort(ctrl.setTime)
		}
		if flags&ctrlSetWeight != 0 {
			w.WriteUByte(ctrl.setWeightRev)
			w.WriteUByte(ctrl.setWeight)
		}
	}
	return w.Bytes()
}

// netTrack is one decoded record of the network attribute.
type netTrack struct {
	name      string
	flags     uint8
	layer     uint8
	speed     int16
	target    uint8
	fade      uint8
	startBone uint32
	autoFade  uint8
	timeRev   uint8
	time      uint16
	weightRev uint8
	weight    uint8
}

func readNetTrack(r *wire.Reader) (netTrack, error) {
	var t netTrack
	var err error
	if t.name, err = r.ReadString(); err != nil {
		return t, err
	}
	if t.flags, err = r.ReadUByte(); err != nil {
		return t, err
	}
	if t.layer, err = r.ReadUByte(); err != nil {
		return t, err
	}
	if t.speed, err = r.ReadShort(); err != nil {
		return t, err
	}
	if t.target, err = r.ReadUByte(); err != nil {
		return t, err
	}
	if t.fade, err = r.ReadUByte(); err != nil {
		return t, err
	}
	if t.flags&ctrlStartBone != 0 {
		if t.startBone, err = r.ReadUInt(); err != nil {
			return t, err
		}
	}
	if t.flags&ctrlAutoFade != 0 {
		if t.autoFade, err = r.ReadUByte(); err != nil {
			return t, err
		}
	}
	if t.flags&ctrlSetTime != 0 {
		if t.timeRev, err = r.ReadUByte(); err != nil {
			return t, err
		}
		if t.time, err = r.ReadUShort(); err != nil {
			return t, err
		}
	}
	if t.flags&ctrlSetWeight != 0 {
		if t.weightRev, err = r.ReadUByte(); err != nil {
			return t, err
		}
		if t.weight, err = r.ReadUByte(); err != nil {
			return t, err
		}
	}
	return t, nil
}

// SetNetAnimationsAttr applies a received network attribute. Layer, loop and
// blend settings apply unconditionally; set-time and set-weight commands only
// when their revision differs from the last one applied, so repeated
// deliveries of the same buffer are idempotent. A track whose clip cannot be
// resolved aborts the rest of the buffer: earlier tracks keep their decoded
// state and nothing is faded out. On a fully decoded buffer, playbacks the
// sender no longer lists fade to zero.
func (c *AnimationController) SetNetAnimationsAttr(data []byte) {
	r := wire.NewReader(data)
	count, err := r.ReadVLE()
	if err != nil {
		log.Printf("[anim] malformed animation attribute: %v", err)
		return
	}

	processed := make(map[wire.StringHash]bool, count)
	for n := uint32(0); n < count; n++ {
		t, err := readNetTrack(r)
		if err != nil {
			log.Printf("[anim] malformed animation attribute track: %v", err)
			return
		}
		ctrl, state := c.ensure(t.name)
		if ctrl == nil {
			log.Printf("[anim] unknown animation clip %q, dropping rest of attribute", t.name)
			return
		}

		state.SetLayer(t.layer)
		state.SetLooped(t.flags&ctrlLooped != 0)
		if t.flags&ctrlAdditive != 0 {
			state.SetBlendMode(BlendAdditive)
		} else {
			state.SetBlendMode(BlendLerp)
		}
		if t.flags&ctrlStartBone != 0 {
			state.SetStartBone(wire.StringHash(t.startBone))
		} else {
			state.SetStartBone(0)
		}

		ctrl.Speed = float32(t.speed) / 2048
		ctrl.TargetWeight = float32(t.target) / 255
		ctrl.FadeTime = float32(t.fade) / 64
		ctrl.RemoveOnCompletion = t.flags&ctrlRemoveOnCompletion != 0
		if t.flags&ctrlAutoFade != 0 {
			ctrl.AutoFadeTime = float32(t.autoFade) / 64
		} else {
			ctrl.AutoFadeTime = 0
		}

		if t.flags&ctrlSetTime != 0 && t.timeRev != ctrl.setTimeRev {
			ctrl.setTimeRev = t.timeRev
			state.SetTime(float32(t.time) / 65535 * state.Clip().Length)
		}
		if t.flags&ctrlSetWeight != 0 && t.weightRev != ctrl.setWeightRev {
			ctrl.setWeightRev = t.weightRev
			state.SetWeight(float32(t.weight) / 255)
		}

		processed[ctrl.Hash] = true
	}

	for _, ctrl := range c.animations {
		if !processed[ctrl.Hash] {
			ctrl.TargetWeight = 0
			ctrl.FadeTime = DroppedTrackFadeTime
		}
	}
}
