package anim

import (
	"github.com/automoto/animsync/shared/gamemath"
	"github.com/automoto/animsync/shared/wire"
)

// BlendMode is how a state's sampled values combine with what earlier layers
// already wrote.
type BlendMode uint8

const (
	// BlendLerp crossfades toward the sampled value by the state's weight.
	BlendLerp BlendMode = iota
	// BlendAdditive adds the sampled value, scaled by weight, on top of the
	// base. Only numeric types blend additively; the rest fall back to lerp.
	BlendAdditive
)

// Clip is a named, shared animation resource: a set of attribute tracks with
// a common length. Clips are immutable once loaded.
type Clip struct {
	Name   string
	Length float32
	Tracks map[string]*ValueAnimation
}

// NewClip creates an empty clip.
func NewClip(name string, length float32) *Clip {
	return &Clip{
		Name:   name,
		Length: length,
		Tracks: make(map[string]*ValueAnimation),
	}
}

// AddTrack adds an attribute track to the clip.
func (c *Clip) AddTrack(attr string, animation *ValueAnimation) *Clip {
	c.Tracks[attr] = animation
	return c
}

// Hash returns the clip's name hash, the form used on the wire.
func (c *Clip) Hash() wire.StringHash {
	return wire.Hash(c.Name)
}

// ClipLibrary resolves clip names and name hashes to loaded clips.
type ClipLibrary struct {
	byHash map[wire.StringHash]*Clip
}

// NewClipLibrary creates an empty library.
func NewClipLibrary() *ClipLibrary {
	return &ClipLibrary{byHash: make(map[wire.StringHash]*Clip)}
}

// Add registers a clip, replacing any clip with the same name hash.
func (l *ClipLibrary) Add(c *Clip) {
	l.byHash[c.Hash()] = c
}

// Get resolves a clip by name.
func (l *ClipLibrary) Get(name string) *Clip {
	return l.byHash[wire.Hash(name)]
}

// GetByHash resolves a clip by name hash.
func (l *ClipLibrary) GetByHash(h wire.StringHash) *Clip {
	return l.byHash[h]
}

// AnimationState is one playing instance of a clip on a target: a time
// cursor, a blend weight and layering metadata. States do not fade or expire
// on their own; AnimationController owns that.
type AnimationState struct {
	clip      *Clip
	target    AttributeTarget
	ref       Ref
	time      float32
	weight    float32
	looped    bool
	layer     uint8
	blendMode BlendMode
	startBone wire.StringHash
}

// NewAnimationState creates a stopped state at time 0 with weight 0.
func NewAnimationState(clip *Clip, target AttributeTarget, ref Ref) *AnimationState {
	return &AnimationState{
		clip:   clip,
		target: target,
		ref:    ref,
	}
}

// Clip returns the underlying clip.
func (s *AnimationState) Clip() *Clip {
	return s.clip
}

// AddTime advances the cursor, wrapping when looped and clamping otherwise.
func (s *AnimationState) AddTime(dt float32) {
	length := s.clip.Length
	if length <= 0 {
		return
	}
	t := s.time + dt
	if s.looped {
		t = gamemath.Mod(t, length)
	} else {
		t = gamemath.Clamp(t, 0, length)
	}
	s.time = t
}

// SetTime sets the cursor, clamped into [0, length].
func (s *AnimationState) SetTime(t float32) {
	s.time = gamemath.Clamp(t, 0, s.clip.Length)
}

// Time returns the cursor position.
func (s *AnimationState) Time() float32 {
	return s.time
}

// SetWeight sets the blend weight, clamped into [0, 1].
func (s *AnimationState) SetWeight(w float32) {
	s.weight = gamemath.Clamp01(w)
}

// Weight returns the blend weight.
func (s *AnimationState) Weight() float32 {
	return s.weight
}

// SetLooped sets whether the cursor wraps at the clip length.
func (s *AnimationState) SetLooped(looped bool) {
	s.looped = looped
}

// Looped reports whether the cursor wraps.
func (s *AnimationState) Looped() bool {
	return s.looped
}

// SetLayer sets the blend layer; higher layers apply later and win conflicts.
func (s *AnimationState) SetLayer(layer uint8) {
	s.layer = layer
}

// Layer returns the blend layer.
func (s *AnimationState) Layer() uint8 {
	return s.layer
}

// SetBlendMode sets how the state combines with the base pose.
func (s *AnimationState) SetBlendMode(m BlendMode) {
	s.blendMode = m
}

// BlendMode returns the blend mode.
func (s *AnimationState) BlendMode() BlendMode {
	return s.blendMode
}

// SetStartBone sets the subtree root the state is restricted to. Zero means
// the whole target.
func (s *AnimationState) SetStartBone(h wire.StringHash) {
	s.startBone = h
}

// StartBone returns the subtree restriction hash.
func (s *AnimationState) StartBone() wire.StringHash {
	return s.startBone
}

// IsAtEnd reports whether a non-looping state has reached the clip length.
func (s *AnimationState) IsAtEnd() bool {
	return !s.looped && s.clip.Length > 0 && s.time >= s.clip.Length
}

// Apply samples every track at the current time and blends the results onto
// the target by the current weight. A zero weight or a dead target is a
// no-op.
func (s *AnimationState) Apply() {
	if s.weight <= 0 {
		return
	}
	if s.ref != nil && !s.ref.Alive() {
		return
	}
	applied := false
	for attr, track := range s.clip.Tracks {
		sampled := track.ValueAt(s.time)
		base, ok := s.target.Attribute(attr)
		if !ok {
			continue
		}
		if s.target.SetAttribute(attr, s.blend(base, sampled)) {
			applied = true
		}
	}
	if applied {
		s.target.ApplyAttributes()
	}
}

func (s *AnimationState) blend(base, sampled Value) Value {
	if s.blendMode == BlendAdditive && base.Type == sampled.Type {
		switch base.Type {
		case TypeFloat:
			return FloatValue(base.Float + sampled.Float*s.weight)
		case TypeVec2:
			return Vec2Value(base.Vec2.Add(sampled.Vec2.Scale(s.weight)))
		}
	}
	return Interpolate(base, sampled, s.weight, nil)
}
