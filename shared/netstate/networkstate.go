package netstate

import (
	"errors"
	"log"

	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/wire"
)

// ErrBadDelta is returned when a received delta names an attribute index the
// receiver does not know.
var ErrBadDelta = errors.New("netstate: delta references unknown attribute")

// ReplicationState is one connection's view of one object: the attributes
// that changed since the connection last received them.
type ReplicationState struct {
	Dirty DirtyBits
}

// NetworkState owns the replication bookkeeping of one object on the server:
// the object's replicated attribute table, the last snapshot sent, and a
// ReplicationState per interested connection.
type NetworkState struct {
	target      anim.AttributeTarget
	attrs       []*anim.AttributeInfo
	previous    []anim.Value
	connections map[string]*ReplicationState
}

// New builds the state for target, capturing its replicated attributes and
// their current values. Attributes beyond the capacity are dropped with a log
// line; their values never replicate.
func New(target anim.AttributeTarget) *NetworkState {
	ns := &NetworkState{
		target:      target,
		connections: make(map[string]*ReplicationState),
	}
	for _, info := range target.AttributeInfos() {
		if !info.Network {
			continue
		}
		if len(ns.attrs) >= MaxNetworkAttributes {
			log.Printf("[netstate] too many replicated attributes, dropping %q", info.Name)
			continue
		}
		ns.attrs = append(ns.attrs, info)
		v, _ := target.Attribute(info.Name)
		ns.previous = append(ns.previous, v)
	}
	return ns
}

// Attributes returns the replicated attribute table in index order. The
// index of an attribute in this table is its identity in the delta encoding.
func (ns *NetworkState) Attributes() []*anim.AttributeInfo {
	return ns.attrs
}

// AddConnection registers a connection and marks every attribute dirty for
// it, so the first delta carries the full state.
func (ns *NetworkState) AddConnection(id string) *ReplicationState {
	rs := &ReplicationState{}
	for i := range ns.attrs {
		rs.Dirty.Set(uint32(i))
	}
	ns.connections[id] = rs
	return rs
}

// RemoveConnection drops a connection's state.
func (ns *NetworkState) RemoveConnection(id string) {
	delete(ns.connections, id)
}

// Connection returns a connection's state, or nil.
func (ns *NetworkState) Connection(id string) *ReplicationState {
	return ns.connections[id]
}

// PrepareNetworkUpdate diffs the object's current attribute values against
// the last prepared snapshot and marks every changed attribute dirty on every
// connection. Attributes for which animated returns true are left out of the
// diff entirely: the receiver drives those locally from replicated animation
// state, and the previous-value cache must keep the pre-animation value so
// the settled value flushes once the animation detaches. It reports whether
// anything changed.
func (ns *NetworkState) PrepareNetworkUpdate(animated func(*anim.AttributeInfo) bool) bool {
	changed := false
	for i, info := range ns.attrs {
		if animated != nil && animated(info) {
			continue
		}
		cur, ok := ns.target.Attribute(info.Name)
		if !ok || cur == ns.previous[i] {
			continue
		}
		ns.previous[i] = cur
		changed = true
		for _, rs := range ns.connections {
			rs.Dirty.Set(uint32(i))
		}
	}
	return changed
}

// WriteDelta encodes rs's dirty attributes with their current values and
// clears the bits. It returns the number of attributes written; zero means
// nothing was appended to the writer.
func (ns *NetworkState) WriteDelta(w *wire.Writer, rs *ReplicationState) int {
	n := rs.Dirty.Count()
	if n == 0 {
		return 0
	}
	w.WriteVLE(uint32(n))
	for i, info := range ns.attrs {
		if !rs.Dirty.IsSet(uint32(i)) {
			continue
		}
		rs.Dirty.Clear(uint32(i))
		v, _ := ns.target.Attribute(info.Name)
		w.WriteVLE(uint32(i))
		anim.WriteValue(w, v)
	}
	return n
}

// ReadDelta decodes a delta against the receiver's attribute table, calling
// apply for each carried value. Decoding stops at the first malformed entry.
func ReadDelta(r *wire.Reader, attrs []*anim.AttributeInfo, apply func(name string, v anim.Value) bool) error {
	count, err := r.ReadVLE()
	if err != nil {
		return err
	}
	for n := uint32(0); n < count; n++ {
		idx, err := r.ReadVLE()
		if err != nil {
			return err
		}
		if idx >= uint32(len(attrs)) {
			return ErrBadDelta
		}
		v, err := anim.ReadValue(r, attrs[idx].Type)
		if err != nil {
			return err
		}
		apply(attrs[idx].Name, v)
	}
	return nil
}
