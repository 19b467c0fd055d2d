// Package netstate is the server-side replication bookkeeping: which
// attributes of an object each connection still needs, and the delta encoding
// that carries them.
package netstate

import "github.com/TheBitDrifter/mask"

// MaxNetworkAttributes caps how many attributes of one object can replicate.
const MaxNetworkAttributes = 64

// DirtyBits is a fixed-capacity set of attribute indices pending replication.
// Out-of-range indices are ignored; Count is O(1).
type DirtyBits struct {
	bits  mask.Mask
	count int
}

// Set marks bit as dirty. Setting an already-set bit is a no-op.
func (d *DirtyBits) Set(bit uint32) {
	if bit >= MaxNetworkAttributes || d.IsSet(bit) {
		return
	}
	d.bits.Mark(bit)
	d.count++
}

// Clear unmarks bit. Clearing an unset bit is a no-op.
func (d *DirtyBits) Clear(bit uint32) {
	if bit >= MaxNetworkAttributes || !d.IsSet(bit) {
		return
	}
	d.bits.Unmark(bit)
	d.count--
}

// IsSet reports whether bit is marked.
func (d *DirtyBits) IsSet(bit uint32) bool {
	if bit >= MaxNetworkAttributes {
		return false
	}
	var probe mask.Mask
	probe.Mark(bit)
	return d.bits.ContainsAll(probe)
}

// Count returns the number of marked bits.
func (d *DirtyBits) Count() int {
	return d.count
}

// Any reports whether any bit is marked.
func (d *DirtyBits) Any() bool {
	return d.count > 0
}

// Reset clears all bits.
func (d *DirtyBits) Reset() {
	*d = DirtyBits{}
}
