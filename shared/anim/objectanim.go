package anim

// ObjectAnimationEntry is one attribute curve inside a template, together
// with the wrap mode and speed it should play at.
type ObjectAnimationEntry struct {
	Animation *ValueAnimation
	Wrap      WrapMode
	Speed     float32
}

// ObjectAnimationObserver is notified when a template gains or loses a track.
// Animatables that instantiated the template use this to stay in sync with
// edits made after instantiation.
type ObjectAnimationObserver interface {
	ObjectAnimationTrackAdded(oa *ObjectAnimation, name string)
	ObjectAnimationTrackRemoved(oa *ObjectAnimation, name string)
}

// ObjectAnimation is a reusable template mapping attribute names to curves.
// One template can drive any number of Animatables; edits fan out to all of
// them through the observer set.
type ObjectAnimation struct {
	entries   map[string]*ObjectAnimationEntry
	order     []string
	observers map[ObjectAnimationObserver]struct{}
}

// NewObjectAnimation creates an empty template.
func NewObjectAnimation() *ObjectAnimation {
	return &ObjectAnimation{
		entries:   make(map[string]*ObjectAnimationEntry),
		observers: make(map[ObjectAnimationObserver]struct{}),
	}
}

// AddAttributeAnimation adds or replaces the track for name. Observers are
// notified of the addition; replacing an existing track notifies removal
// first.
func (oa *ObjectAnimation) AddAttributeAnimation(name string, animation *ValueAnimation, wrap WrapMode, speed float32) {
	if animation == nil {
		return
	}
	if _, ok := oa.entries[name]; ok {
		oa.notifyRemoved(name)
	} else {
		oa.order = append(oa.order, name)
	}
	oa.entries[name] = &ObjectAnimationEntry{Animation: animation, Wrap: wrap, Speed: speed}
	oa.notifyAdded(name)
}

// RemoveAttributeAnimation removes the track for name if present.
func (oa *ObjectAnimation) RemoveAttributeAnimation(name string) {
	if _, ok := oa.entries[name]; !ok {
		return
	}
	delete(oa.entries, name)
	for i, n := range oa.order {
		if n == name {
			oa.order = append(oa.order[:i], oa.order[i+1:]...)
			break
		}
	}
	oa.notifyRemoved(name)
}

// Entry returns the track for name, or nil.
func (oa *ObjectAnimation) Entry(name string) *ObjectAnimationEntry {
	return oa.entries[name]
}

// Names returns the track names in insertion order.
func (oa *ObjectAnimation) Names() []string {
	out := make([]string, len(oa.order))
	copy(out, oa.order)
	return out
}

// Subscribe registers an observer for track add/remove notifications.
func (oa *ObjectAnimation) Subscribe(o ObjectAnimationObserver) {
	oa.observers[o] = struct{}{}
}

// Unsubscribe removes an observer.
func (oa *ObjectAnimation) Unsubscribe(o ObjectAnimationObserver) {
	delete(oa.observers, o)
}

func (oa *ObjectAnimation) notifyAdded(name string) {
	for o := range oa.observers {
		o.ObjectAnimationTrackAdded(oa, name)
	}
}

func (oa *ObjectAnimation) notifyRemoved(name string) {
	for o := range oa.observers {
		o.ObjectAnimationTrackRemoved(oa, name)
	}
}
