package anim

import "testing"

func rampCurve(length float32) *ValueAnimation {
	a := NewValueAnimation(TypeFloat)
	a.SetKeyframe(0, FloatValue(0))
	a.SetKeyframe(length, FloatValue(length))
	return a
}

func TestCursorLoopWraps(t *testing.T) {
	vi := NewValueAnimationInfo(rampCurve(1), WrapLoop, 1)

	v, finished := vi.Update(0.75)
	if finished {
		t.Error("looping cursor reported finished")
	}
	if !almostEqual(v.Float, 0.75) {
		t.Errorf("value after 0.75s = %v, want 0.75", v.Float)
	}

	v, finished = vi.Update(0.5)
	if finished {
		t.Error("looping cursor reported finished after wrap")
	}
	if !almostEqual(vi.Time(), 0.25) {
		t.Errorf("time after wrap = %v, want 0.25", vi.Time())
	}
	if !almostEqual(v.Float, 0.25) {
		t.Errorf("value after wrap = %v, want 0.25", v.Float)
	}
}

func TestCursorOnceFinishesOnce(t *testing.T) {
	vi := NewValueAnimationInfo(rampCurve(1), WrapOnce, 1)

	if _, finished := vi.Update(0.5); finished {
		t.Error("finished before reaching end")
	}
	v, finished := vi.Update(1.0)
	if !finished {
		t.Error("did not report finished at end")
	}
	if vi.Time() != 1 || !almostEqual(v.Float, 1) {
		t.Errorf("at end: time=%v value=%v, want 1, 1", vi.Time(), v.Float)
	}
	if _, finished := vi.Update(0.1); finished {
		t.Error("reported finished twice")
	}
}

func TestCursorSetTimeRearmsCompletion(t *testing.T) {
	vi := NewValueAnimationInfo(rampCurve(1), WrapOnce, 1)
	vi.Update(2)
	vi.SetTime(0)
	if _, finished := vi.Update(2); !finished {
		t.Error("restarted cursor did not report finished again")
	}
}

func TestCursorNegativeSpeed(t *testing.T) {
	vi := NewValueAnimationInfo(rampCurve(1), WrapClamp, -1)
	vi.SetTime(1)
	if _, finished := vi.Update(0.5); finished {
		t.Error("finished mid-curve playing backward")
	}
	if _, finished := vi.Update(1); !finished {
		t.Error("did not finish at time 0 playing backward")
	}
	if vi.Time() != 0 {
		t.Errorf("time = %v, want 0", vi.Time())
	}
}

func TestCursorSpeedScalesAdvance(t *testing.T) {
	vi := NewValueAnimationInfo(rampCurve(1), WrapLoop, 2)
	vi.Update(0.25)
	if !almostEqual(vi.Time(), 0.5) {
		t.Errorf("time at speed 2 after 0.25s = %v, want 0.5", vi.Time())
	}
	vi.SetSpeed(0)
	vi.Update(10)
	if !almostEqual(vi.Time(), 0.5) {
		t.Errorf("time advanced at speed 0: %v", vi.Time())
	}
}

func TestCursorWrapDefaultFollowsCurve(t *testing.T) {
	a := rampCurve(1)
	a.SetDefaultWrapMode(WrapOnce)
	vi := NewValueAnimationInfo(a, WrapDefault, 1)
	if _, finished := vi.Update(2); !finished {
		t.Error("WrapDefault did not defer to curve's WrapOnce")
	}
}
