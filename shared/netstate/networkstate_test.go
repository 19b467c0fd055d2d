package netstate

import (
	"testing"

	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/wire"
)

type fakeTarget struct {
	infos  []*anim.AttributeInfo
	values map[string]anim.Value
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		infos: []*anim.AttributeInfo{
			{Name: "Opacity", Type: anim.TypeFloat, Network: true},
			{Name: "Visible", Type: anim.TypeBool, Network: true},
			{Name: "Label", Type: anim.TypeString},
			{Name: "Rotation", Type: anim.TypeFloat, Network: true},
		},
		values: map[string]anim.Value{
			"Opacity":  anim.FloatValue(1),
			"Visible":  anim.BoolValue(true),
			"Label":    anim.StringValue(""),
			"Rotation": anim.FloatValue(0),
		},
	}
}

func (f *fakeTarget) AttributeInfos() []*anim.AttributeInfo { return f.infos }

func (f *fakeTarget) Attribute(name string) (anim.Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f *fakeTarget) SetAttribute(name string, v anim.Value) bool {
	if _, ok := f.values[name]; !ok {
		return false
	}
	f.values[name] = v
	return true
}

func (f *fakeTarget) ApplyAttributes() {}

func TestNewFiltersNonNetworkAttributes(t *testing.T) {
	ns := New(newFakeTarget())
	if got := len(ns.Attributes()); got != 3 {
		t.Fatalf("replicated attribute count = %d, want 3", got)
	}
	for _, info := range ns.Attributes() {
		if !info.Network {
			t.Errorf("non-network attribute %q in table", info.Name)
		}
	}
}

func TestNewConnectionGetsFullState(t *testing.T) {
	target := newFakeTarget()
	ns := New(target)
	rs := ns.AddConnection("c1")

	if rs.Dirty.Count() != len(ns.Attributes()) {
		t.Fatalf("new connection dirty count = %d, want %d", rs.Dirty.Count(), len(ns.Attributes()))
	}

	var w wire.Writer
	if n := ns.WriteDelta(&w, rs); n != 3 {
		t.Fatalf("WriteDelta wrote %d attrs, want 3", n)
	}
	if rs.Dirty.Any() {
		t.Error("bits not cleared after write")
	}

	// A second write has nothing to say.
	var w2 wire.Writer
	if n := ns.WriteDelta(&w2, rs); n != 0 || w2.Len() != 0 {
		t.Errorf("idle WriteDelta wrote %d attrs, %d bytes", n, w2.Len())
	}
}

func TestPrepareMarksOnlyChangedAttributes(t *testing.T) {
	target := newFakeTarget()
	ns := New(target)
	rs := ns.AddConnection("c1")
	var w wire.Writer
	ns.WriteDelta(&w, rs) // drain the initial full state

	if ns.PrepareNetworkUpdate(nil) {
		t.Error("prepare with no changes reported change")
	}

	target.values["Opacity"] = anim.FloatValue(0.5)
	if !ns.PrepareNetworkUpdate(nil) {
		t.Fatal("prepare missed a change")
	}
	if rs.Dirty.Count() != 1 || !rs.Dirty.IsSet(0) {
		t.Errorf("dirty bits = %d set, want only Opacity", rs.Dirty.Count())
	}

	// The same value again is not a change.
	if ns.PrepareNetworkUpdate(nil) {
		t.Error("prepare re-reported an already captured change")
	}
}

func TestPrepareSkipsAnimatedAttributes(t *testing.T) {
	target := newFakeTarget()
	ns := New(target)
	rs := ns.AddConnection("c1")
	var w wire.Writer
	ns.WriteDelta(&w, rs)

	target.values["Opacity"] = anim.FloatValue(0.5)
	target.values["Rotation"] = anim.FloatValue(90)
	ns.PrepareNetworkUpdate(func(info *anim.AttributeInfo) bool {
		return info.Name == "Opacity"
	})

	if rs.Dirty.IsSet(0) {
		t.Error("animated attribute marked dirty")
	}
	if !rs.Dirty.IsSet(2) {
		t.Error("plain changed attribute not marked dirty")
	}
}

func TestAnimatedAttributeFlushesWhenAnimationEnds(t *testing.T) {
	target := newFakeTarget()
	ns := New(target)
	rs := ns.AddConnection("c1")
	var w wire.Writer
	ns.WriteDelta(&w, rs)

	// The attribute changes while under animation control; the diff must not
	// touch it, so no bits and no cache update.
	target.values["Opacity"] = anim.FloatValue(0.5)
	animated := func(info *anim.AttributeInfo) bool { return info.Name == "Opacity" }
	if ns.PrepareNetworkUpdate(animated) {
		t.Error("exempt-only change reported as changed")
	}
	if rs.Dirty.Any() {
		t.Fatal("exempt attribute marked dirty")
	}

	// The animation detaches; the settled value must flush now.
	if !ns.PrepareNetworkUpdate(nil) {
		t.Fatal("settled value not detected after animation ended")
	}
	if !rs.Dirty.IsSet(0) || rs.Dirty.Count() != 1 {
		t.Errorf("dirty bits = %d set, want only Opacity", rs.Dirty.Count())
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	sender := newFakeTarget()
	ns := New(sender)
	rs := ns.AddConnection("c1")
	var drain wire.Writer
	ns.WriteDelta(&drain, rs)

	sender.values["Opacity"] = anim.FloatValue(0.25)
	sender.values["Visible"] = anim.BoolValue(false)
	ns.PrepareNetworkUpdate(nil)

	var w wire.Writer
	ns.WriteDelta(&w, rs)

	receiver := newFakeTarget()
	rns := New(receiver)
	err := ReadDelta(wire.NewReader(w.Bytes()), rns.Attributes(), receiver.SetAttribute)
	if err != nil {
		t.Fatal(err)
	}
	if v := receiver.values["Opacity"]; v.Float != 0.25 {
		t.Errorf("Opacity = %v, want 0.25", v.Float)
	}
	if v := receiver.values["Visible"]; v.Bool {
		t.Error("Visible not applied")
	}
	if v := receiver.values["Rotation"]; v.Float != 0 {
		t.Errorf("untouched attribute changed: %v", v.Float)
	}
}

func TestPerConnectionIndependence(t *testing.T) {
	target := newFakeTarget()
	ns := New(target)
	a := ns.AddConnection("a")
	b := ns.AddConnection("b")

	var w wire.Writer
	ns.WriteDelta(&w, a) // only a is drained

	target.values["Opacity"] = anim.FloatValue(0.5)
	ns.PrepareNetworkUpdate(nil)

	if a.Dirty.Count() != 1 {
		t.Errorf("connection a dirty count = %d, want 1", a.Dirty.Count())
	}
	// b never drained its full state, so the change overlaps the existing
	// full-state bits.
	if b.Dirty.Count() != len(ns.Attributes()) {
		t.Errorf("connection b dirty count = %d, want %d", b.Dirty.Count(), len(ns.Attributes()))
	}

	ns.RemoveConnection("b")
	if ns.Connection("b") != nil {
		t.Error("removed connection still present")
	}
	if ns.Connection("a") == nil {
		t.Error("unrelated connection removed")
	}
}

func TestReadDeltaRejectsBadIndex(t *testing.T) {
	var w wire.Writer
	w.WriteVLE(1)
	w.WriteVLE(99)
	w.WriteFloat(1)

	attrs := New(newFakeTarget()).Attributes()
	if err := ReadDelta(wire.NewReader(w.Bytes()), attrs, func(string, anim.Value) bool { return true }); err != ErrBadDelta {
		t.Errorf("err = %v, want ErrBadDelta", err)
	}
}

func TestReadDeltaTruncated(t *testing.T) {
	sender := newFakeTarget()
	ns := New(sender)
	rs := ns.AddConnection("c1")
	var w wire.Writer
	ns.WriteDelta(&w, rs)

	attrs := New(newFakeTarget()).Attributes()
	data := w.Bytes()
	if err := ReadDelta(wire.NewReader(data[:len(data)-1]), attrs, func(string, anim.Value) bool { return true }); err == nil {
		t.Error("truncated delta decoded without error")
	}
}
