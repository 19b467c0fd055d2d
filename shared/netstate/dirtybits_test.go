package netstate

import "testing"

func TestDirtyBitsSetClear(t *testing.T) {
	var d DirtyBits
	if d.Any() || d.Count() != 0 {
		t.Fatal("zero value not empty")
	}

	d.Set(0)
	d.Set(5)
	d.Set(63)
	if d.Count() != 3 || !d.Any() {
		t.Errorf("Count = %d, want 3", d.Count())
	}
	for _, bit := range []uint32{0, 5, 63} {
		if !d.IsSet(bit) {
			t.Errorf("bit %d not set", bit)
		}
	}
	if d.IsSet(1) {
		t.Error("unset bit reported set")
	}

	d.Clear(5)
	if d.IsSet(5) || d.Count() != 2 {
		t.Errorf("after clear: IsSet(5)=%v Count=%d", d.IsSet(5), d.Count())
	}
}

func TestDirtyBitsIdempotent(t *testing.T) {
	var d DirtyBits
	d.Set(7)
	d.Set(7)
	if d.Count() != 1 {
		t.Errorf("double set: Count = %d, want 1", d.Count())
	}
	d.Clear(7)
	d.Clear(7)
	if d.Count() != 0 {
		t.Errorf("double clear: Count = %d, want 0", d.Count())
	}
	d.Clear(9) // never set
	if d.Count() != 0 {
		t.Errorf("clearing unset bit changed Count: %d", d.Count())
	}
}

func TestDirtyBitsOutOfRangeIgnored(t *testing.T) {
	var d DirtyBits
	d.Set(MaxNetworkAttributes)
	d.Set(1 << 20)
	if d.Any() {
		t.Error("out-of-range set changed state")
	}
	if d.IsSet(MaxNetworkAttributes) {
		t.Error("out-of-range bit reported set")
	}
	d.Clear(MaxNetworkAttributes)
	if d.Count() != 0 {
		t.Errorf("out-of-range clear changed Count: %d", d.Count())
	}
}

func TestDirtyBitsReset(t *testing.T) {
	var d DirtyBits
	for bit := uint32(0); bit < MaxNetworkAttributes; bit++ {
		d.Set(bit)
	}
	if d.Count() != MaxNetworkAttributes {
		t.Fatalf("Count = %d, want %d", d.Count(), MaxNetworkAttributes)
	}
	d.Reset()
	if d.Any() || d.IsSet(0) {
		t.Error("Reset left bits set")
	}
}
