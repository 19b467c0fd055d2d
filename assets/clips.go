package assets

import (
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/gamemath"
	"github.com/tanema/gween/ease"
)

// DefaultClips is the built-in clip set. Server and client must load the
// same set: clips resolve by name hash on the wire, never by content.
func DefaultClips() *anim.ClipLibrary {
	lib := anim.NewClipLibrary()
	lib.Add(idleClip())
	lib.Add(walkClip())
	lib.Add(runClip())
	lib.Add(waveClip())
	lib.Add(swayClip())
	return lib
}

// idleClip is a slow opacity breath.
func idleClip() *anim.Clip {
	opacity := anim.NewValueAnimation(anim.TypeFloat)
	opacity.SetEasing(ease.InOutQuad)
	opacity.SetKeyframe(0, anim.FloatValue(1))
	opacity.SetKeyframe(1, anim.FloatValue(0.7))
	opacity.SetKeyframe(2, anim.FloatValue(1))

	return anim.NewClip("Idle", 2.0).AddTrack("Opacity", opacity)
}

// walkClip bobs the node along a short horizontal path.
func walkClip() *anim.Clip {
	pos := anim.NewValueAnimation(anim.TypeVec2)
	pos.SetKeyframe(0, anim.Vec2Value(gamemath.Vec2{X: 0, Y: 0}))
	pos.SetKeyframe(0.25, anim.Vec2Value(gamemath.Vec2{X: 8, Y: -2}))
	pos.SetKeyframe(0.5, anim.Vec2Value(gamemath.Vec2{X: 16, Y: 0}))
	pos.SetKeyframe(0.75, anim.Vec2Value(gamemath.Vec2{X: 24, Y: -2}))
	pos.SetKeyframe(1, anim.Vec2Value(gamemath.Vec2{X: 32, Y: 0}))

	return anim.NewClip("Walk", 1.0).AddTrack("Position", pos)
}

// runClip is the walk path at double amplitude with a sharper ease.
func runClip() *anim.Clip {
	pos := anim.NewValueAnimation(anim.TypeVec2)
	pos.SetEasing(ease.OutQuad)
	pos.SetKeyframe(0, anim.Vec2Value(gamemath.Vec2{X: 0, Y: 0}))
	pos.SetKeyframe(0.25, anim.Vec2Value(gamemath.Vec2{X: 32, Y: -4}))
	pos.SetKeyframe(0.5, anim.Vec2Value(gamemath.Vec2{X: 64, Y: 0}))

	return anim.NewClip("Run", 0.5).AddTrack("Position", pos)
}

// waveClip is a one-shot rotation nod, meant to be played non-looped with
// autofade.
func waveClip() *anim.Clip {
	rot := anim.NewValueAnimation(anim.TypeFloat)
	rot.SetEasing(ease.InOutSine)
	rot.SetDefaultWrapMode(anim.WrapOnce)
	rot.SetKeyframe(0, anim.FloatValue(0))
	rot.SetKeyframe(0.2, anim.FloatValue(-0.4))
	rot.SetKeyframe(0.6, anim.FloatValue(0.4))
	rot.SetKeyframe(0.8, anim.FloatValue(0))

	return anim.NewClip("Wave", 0.8).AddTrack("Rotation", rot)
}

// swayClip is a gentle additive rotation layer.
func swayClip() *anim.Clip {
	rot := anim.NewValueAnimation(anim.TypeFloat)
	rot.SetEasing(ease.InOutSine)
	rot.SetKeyframe(0, anim.FloatValue(-0.1))
	rot.SetKeyframe(1.5, anim.FloatValue(0.1))
	rot.SetKeyframe(3, anim.FloatValue(-0.1))

	return anim.NewClip("Sway", 3.0).AddTrack("Rotation", rot)
}
