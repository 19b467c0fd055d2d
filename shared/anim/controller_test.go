package anim

import "testing"

func testClips() *ClipLibrary {
	lib := NewClipLibrary()

	walk := NewClip("Walk", 1.0)
	walk.AddTrack("Opacity", rampCurve(1))
	lib.Add(walk)

	wave := NewClip("Wave", 0.5)
	wave.AddTrack("Opacity", rampCurve(0.5))
	lib.Add(wave)

	lib.Add(NewClip("Idle", 2.0))
	return lib
}

func newTestController() (*AnimationController, *testNode) {
	node := newTestNode()
	return NewAnimationController(testClips(), node, nil), node
}

func TestPlayUnknownClip(t *testing.T) {
	c, _ := newTestController()
	if c.Play("NoSuchClip", 0, true, 0) {
		t.Error("Play succeeded for unknown clip")
	}
	if c.IsPlaying("NoSuchClip") {
		t.Error("unknown clip reported playing")
	}
}

func TestPlayFadesWeightIn(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0.5)

	if w := c.Weight("Walk"); w != 0 {
		t.Fatalf("weight before first update = %v, want 0", w)
	}
	c.Update(0.25)
	if w := c.Weight("Walk"); !almostEqual(w, 0.5) {
		t.Errorf("weight after 0.25s of a 0.5s fade = %v, want 0.5", w)
	}
	c.Update(0.25)
	if w := c.Weight("Walk"); !almostEqual(w, 1) {
		t.Errorf("weight after full fade = %v, want 1", w)
	}
	// Weight must not overshoot on further updates.
	c.Update(0.25)
	if w := c.Weight("Walk"); w != 1 {
		t.Errorf("weight overshot: %v", w)
	}
}

func TestPlayZeroFadeSnapsWeightOnNextUpdate(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	if w := c.Weight("Walk"); w != 0 {
		t.Errorf("weight before first update = %v, want 0", w)
	}
	c.Update(0.1)
	if w := c.Weight("Walk"); w != 1 {
		t.Errorf("weight after zero-fade update = %v, want 1", w)
	}
}

func TestStopZeroFadeRetiresOnNextUpdate(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.Update(0.1)

	c.Stop("Walk", 0)
	if !c.IsPlaying("Walk") {
		t.Fatal("zero-fade stop removed the track before Update")
	}
	if got := c.FadeTarget("Walk"); got != 0 {
		t.Errorf("fade target after stop = %v, want 0", got)
	}
	c.Update(0.1)
	if c.IsPlaying("Walk") {
		t.Error("stopped track not retired by Update")
	}
}

func TestStopKeepsTrackWithoutRemoveOnCompletion(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.SetRemoveOnCompletion("Walk", false)

	c.Stop("Walk", 0)
	c.Update(0.1)
	if !c.IsPlaying("Walk") {
		t.Fatal("track with RemoveOnCompletion=false removed by zero-fade stop")
	}
	if w := c.Weight("Walk"); w != 0 {
		t.Errorf("weight after zero-fade stop = %v, want 0", w)
	}
}

func TestStopFadesOut(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.Update(0.1)

	c.Stop("Walk", 0.5)
	if !c.IsPlaying("Walk") {
		t.Fatal("faded stop removed immediately")
	}
	c.Update(0.25)
	if w := c.Weight("Walk"); !almostEqual(w, 0.5) {
		t.Errorf("weight mid fade-out = %v, want 0.5", w)
	}
	c.Update(0.25)
	if c.IsPlaying("Walk") {
		t.Error("fully faded-out clip not removed")
	}
}

func TestPlayExclusiveFadesSameLayerOnly(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.Play("Idle", 1, true, 0)

	c.PlayExclusive("Wave", 0, true, 0.5)

	if got := c.FadeTarget("Walk"); got != 0 {
		t.Errorf("same-layer clip fade target = %v, want 0", got)
	}
	if got := c.FadeTarget("Idle"); got != 1 {
		t.Errorf("other-layer clip fade target = %v, want 1", got)
	}
	if got := c.FadeTarget("Wave"); got != 1 {
		t.Errorf("exclusive clip fade target = %v, want 1", got)
	}
}

func TestStopLayerAndStopAll(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.Play("Idle", 1, true, 0)

	c.StopLayer(0, 0)
	c.Update(0.1)
	if c.IsPlaying("Walk") || !c.IsPlaying("Idle") {
		t.Error("StopLayer(0) retired the wrong clips")
	}

	c.StopAll(0)
	c.Update(0.1)
	if c.IsPlaying("Idle") {
		t.Error("StopAll left a clip playing")
	}
}

func TestTimeAdvancesAndLoops(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)

	c.Update(0.75)
	if got := c.Time("Walk"); !almostEqual(got, 0.75) {
		t.Errorf("time after 0.75s = %v", got)
	}
	c.Update(0.5)
	if got := c.Time("Walk"); !almostEqual(got, 0.25) {
		t.Errorf("looped time = %v, want 0.25", got)
	}
}

func TestZeroSpeedPausesClock(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.SetSpeed("Walk", 0)
	c.Update(5)
	if got := c.Time("Walk"); got != 0 {
		t.Errorf("time advanced at speed 0: %v", got)
	}
}

func TestNonLoopedClampsAtEnd(t *testing.T) {
	c, _ := newTestController()
	c.Play("Idle", 0, false, 0)
	c.SetRemoveOnCompletion("Idle", false)
	c.Update(5)
	if got := c.Time("Idle"); got != 2 {
		t.Errorf("time past clip end = %v, want 2", got)
	}
	if !c.IsAtEnd("Idle") {
		t.Error("IsAtEnd = false at clip end")
	}
}

func TestAutoFadeRemovesFinishedClip(t *testing.T) {
	c, _ := newTestController()
	c.Play("Wave", 0, false, 0)
	c.SetAutoFade("Wave", 0.5)

	c.Update(0.25)
	if w := c.Weight("Wave"); w != 1 {
		t.Fatalf("weight before clip end = %v, want 1", w)
	}
	c.Update(0.25) // reaches the end this tick, autofade starts
	if !c.IsPlaying("Wave") {
		t.Fatal("clip removed before autofade completed")
	}
	if w := c.Weight("Wave"); !almostEqual(w, 0.5) {
		t.Errorf("weight mid autofade = %v, want 0.5", w)
	}
	c.Update(0.25)
	if c.IsPlaying("Wave") {
		t.Error("autofaded clip not removed")
	}
}

func TestRemoveOnCompletionFalseKeepsClip(t *testing.T) {
	c, _ := newTestController()
	c.Play("Wave", 0, false, 0)
	c.SetAutoFade("Wave", 0.1)
	c.SetRemoveOnCompletion("Wave", false)

	c.Update(1)
	c.Update(1)
	if !c.IsPlaying("Wave") {
		t.Error("clip removed despite RemoveOnCompletion=false")
	}
	if w := c.Weight("Wave"); w != 0 {
		t.Errorf("weight after autofade = %v, want 0", w)
	}
}

func TestFadeAccessors(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.Fade("Walk", 0.5, 0.75)

	if got := c.FadeTarget("Walk"); !almostEqual(got, 0.5) {
		t.Errorf("FadeTarget = %v, want 0.5", got)
	}
	if got := c.FadeTime("Walk"); !almostEqual(got, 0.75) {
		t.Errorf("FadeTime = %v, want 0.75", got)
	}
	if got := c.FadeTime("NotPlaying"); got != 0 {
		t.Errorf("FadeTime for missing clip = %v, want 0", got)
	}
}

func TestIsFadingInAndOut(t *testing.T) {
	c, _ := newTestController()
	if c.IsFadingIn("Walk") || c.IsFadingOut("Walk") {
		t.Error("missing track reports fading")
	}

	c.Play("Walk", 0, true, 0.5)
	if !c.IsFadingIn("Walk") {
		t.Error("track below its fade target not reported as fading in")
	}
	if c.IsFadingOut("Walk") {
		t.Error("fading-in track reported as fading out")
	}

	c.Update(0.5)
	if c.IsFadingIn("Walk") || c.IsFadingOut("Walk") {
		t.Error("settled track reports fading")
	}

	c.Stop("Walk", 0.5)
	if !c.IsFadingOut("Walk") {
		t.Error("track above its fade target not reported as fading out")
	}
	if c.IsFadingIn("Walk") {
		t.Error("fading-out track reported as fading in")
	}
}

func TestIsFadingOutDuringAutoFade(t *testing.T) {
	c, _ := newTestController()
	c.Play("Wave", 0, false, 0)
	c.SetAutoFade("Wave", 0.5)

	c.Update(0.25)
	if c.IsFadingOut("Wave") {
		t.Error("fading out before clip end")
	}
	c.Update(0.25) // clip ends, autofade takes over
	if !c.IsFadingOut("Wave") {
		t.Error("autofading track not reported as fading out")
	}
}

func TestSetWeightCancelsFade(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 1.0)
	c.SetWeight("Walk", 0.25)

	if w := c.Weight("Walk"); !almostEqual(w, 0.25) {
		t.Fatalf("weight after SetWeight = %v", w)
	}
	c.Update(0.5)
	if w := c.Weight("Walk"); !almostEqual(w, 0.25) {
		t.Errorf("cancelled fade still moved weight: %v", w)
	}
}

func TestSetTimeClamps(t *testing.T) {
	c, _ := newTestController()
	c.Play("Walk", 0, true, 0)
	c.SetTime("Walk", 5)
	if got := c.Time("Walk"); got != 1 {
		t.Errorf("time after out-of-range SetTime = %v, want 1", got)
	}
}

func TestUpdateAppliesWeightedBlend(t *testing.T) {
	c, node := newTestController()
	c.Play("Walk", 0, true, 0)
	c.SetWeight("Walk", 0.5)
	c.SetSpeed("Walk", 0)
	c.SetTime("Walk", 0)

	// Track value at t=0 is 0, base Opacity is 1; half weight lands halfway.
	c.Update(0.1)
	if v, _ := node.Attribute("Opacity"); !almostEqual(v.Float, 0.5) {
		t.Errorf("blended Opacity = %v, want 0.5", v.Float)
	}
}

func TestAdditiveBlend(t *testing.T) {
	c, node := newTestController()
	node.values["Opacity"] = FloatValue(0.25)
	c.Play("Walk", 1, true, 0)
	c.SetBlendMode("Walk", BlendAdditive)
	c.SetSpeed("Walk", 0)
	c.SetTime("Walk", 1)

	// Additive: base 0.25 + sampled 1.0 * weight 1.0.
	c.Update(0.1)
	if v, _ := node.Attribute("Opacity"); !almostEqual(v.Float, 1.25) {
		t.Errorf("additive Opacity = %v, want 1.25", v.Float)
	}
}

func TestConsumeNetDirty(t *testing.T) {
	c, _ := newTestController()
	if c.ConsumeNetDirty() {
		t.Error("fresh controller dirty")
	}
	c.Play("Walk", 0, true, 0)
	if !c.ConsumeNetDirty() {
		t.Error("Play did not mark dirty")
	}
	if c.ConsumeNetDirty() {
		t.Error("dirty flag not cleared by consume")
	}

	dirties := 0
	c.SetOnDirty(func() { dirties++ })
	c.SetSpeed("Walk", 2)
	if dirties != 1 {
		t.Errorf("dirty hook fired %d times, want 1", dirties)
	}
}

func TestNodeAnimationStatesCapacity(t *testing.T) {
	c, node := newTestController()
	clip := c.clips.Get("Walk")
	for i := 0; i < MaxNodeAnimationStates+10; i++ {
		c.AddNodeAnimationState(NewAnimationState(clip, node, nil))
	}
	if got := len(c.NodeAnimationStates()); got != MaxNodeAnimationStates {
		t.Errorf("node state count = %d, want %d", got, MaxNodeAnimationStates)
	}
}

func TestWalkEndToEnd(t *testing.T) {
	c, node := newTestController()
	if !c.Play("Walk", 0, true, 0.25) {
		t.Fatal("Play failed")
	}

	// One tick completes the fade, then the clip loops and keeps driving
	// the target.
	for i := 0; i < 8; i++ {
		c.Update(0.25)
	}
	if w := c.Weight("Walk"); w != 1 {
		t.Fatalf("weight after 2s = %v, want 1", w)
	}
	if got := c.Time("Walk"); !almostEqual(got, 0) && !almostEqual(got, 1) {
		t.Errorf("looped time after 2s = %v, want 0", got)
	}

	c.Stop("Walk", 0.25)
	for i := 0; i < 4; i++ {
		c.Update(0.25)
	}
	if c.IsPlaying("Walk") {
		t.Error("stopped clip still playing")
	}
	_ = node
}
