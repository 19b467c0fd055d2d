package anim

// AttributeInfo is the metadata for one animatable attribute: its name, its
// declared value type and whether it replicates over the network. The
// reflection layer owns these records; everything in this package borrows
// them and compares them by pointer.
type AttributeInfo struct {
	Name    string
	Type    ValueType
	Network bool
}

// AttributeTarget is the reflection contract an animated object fulfills:
// enumerate attribute metadata, read and write attributes by name, and commit
// a batch of writes. SetAttribute stages a value; ApplyAttributes runs any
// derived recomputation once per batch.
type AttributeTarget interface {
	AttributeInfos() []*AttributeInfo
	Attribute(name string) (Value, bool)
	SetAttribute(name string, v Value) bool
	ApplyAttributes()
}

// Ref is a non-owning liveness handle. A dead ref means the referenced object
// has been destroyed; animations silently drop rather than erroring.
type Ref interface {
	Alive() bool
}

// Token is a Ref backed by an explicit kill switch, for owners outside any
// generation-checked entity store.
type Token struct {
	dead bool
}

// Alive reports whether the owner still exists.
func (t *Token) Alive() bool {
	return t == nil || !t.dead
}

// Kill marks the owner as destroyed.
func (t *Token) Kill() {
	t.dead = true
}
