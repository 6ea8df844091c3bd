package state

import (
	"math"
	"testing"
)

func TestStepShifts_EasedMigration(t *testing.T) {
	e := New(79)

	dim := DimReverbMix
	s := &paramShift{
		dim:        dim,
		startValue: 0.4,
		endValue:   0.6,
		duration:   10,
	}
	e.shifts = append(e.shifts, s)

	// Halfway: the cosine ease is exactly 0.5.
	s.elapsed = 5 - frameDT
	e.stepShifts(frameDT)
	if got := e.target[dim]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("midpoint target: got %v, want 0.5", got)
	}

	// Completion writes the end value and retires the shift.
	s.elapsed = 10 - frameDT
	e.stepShifts(frameDT)
	if got := e.target[dim]; got != 0.6 {
		t.Errorf("final target: got %v, want 0.6", got)
	}
	if e.ActiveShiftCount() != 0 {
		t.Errorf("shift not retired: %d active", e.ActiveShiftCount())
	}
}

func TestStepShifts_OverrideRetiresInFlightShift(t *testing.T) {
	e := New(151)
	const name = "reverbMix"
	dim := IndexOf(name)

	e.shifts = append(e.shifts, &paramShift{
		dim:        dim,
		startValue: 0.4,
		endValue:   0.6,
		duration:   10,
	})

	// A lock landing mid-shift owns the target; the shift must not keep
	// writing it.
	e.LockDimension(name, 0.2)
	for frame := 0; frame < 60; frame++ {
		e.Update(frameDT)
		if got := e.target[dim]; got != 0.2 {
			t.Fatalf("frame %d: locked target moved to %v", frame, got)
		}
	}
	if e.ActiveShiftCount() != 0 {
		t.Errorf("shift survived a lock on its dimension")
	}

	// Same under a manual hold.
	e2 := New(157)
	e2.shifts = append(e2.shifts, &paramShift{
		dim:        dim,
		startValue: 0.4,
		endValue:   0.6,
		duration:   10,
	})
	e2.SetManualValue(name, 0.35)
	e2.Update(frameDT)
	if got := e2.target[dim]; got != 0.35 {
		t.Errorf("held target moved to %v, want 0.35", got)
	}
	if e2.ActiveShiftCount() != 0 {
		t.Errorf("shift survived a hold on its dimension")
	}
}

func TestSpawnShift_RespectsContention(t *testing.T) {
	e := New(83)

	// Lock every dimension: rejection sampling must exhaust its budget
	// and abort cleanly.
	for i := 0; i < Count; i++ {
		e.LockDimension(canonicalNames[i], 0.5)
	}
	e.spawnShift()
	if e.ActiveShiftCount() != 0 {
		t.Errorf("spawned a shift with every dimension locked")
	}
}

func TestSpawnShift_Bounds(t *testing.T) {
	e := New(89)

	for i := 0; i < 50; i++ {
		e.shifts = e.shifts[:0]
		e.spawnShift()
		if e.ActiveShiftCount() != 1 {
			t.Fatal("spawn failed on a fresh engine")
		}
		s := e.shifts[0]
		if staticDimensions[s.dim] {
			t.Errorf("shift targets static dim %d", s.dim)
		}
		if s.dim < hueFirst || s.dim > hueLast {
			if s.endValue < 0.25 || s.endValue > 0.75 {
				t.Errorf("shift end %v outside [0.25,0.75]", s.endValue)
			}
		}
		if s.duration < 25 || s.duration > 70 {
			t.Errorf("shift duration %v outside [25,70]", s.duration)
		}
	}
}

func TestSpawnShift_FeedbackShortensAndWidens(t *testing.T) {
	e := New(97)
	e.feedback = 0.9

	for i := 0; i < 50; i++ {
		e.shifts = e.shifts[:0]
		e.spawnShift()
		if e.ActiveShiftCount() != 1 {
			t.Fatal("spawn failed under feedback")
		}
		s := e.shifts[0]
		if !s.isFeedback {
			t.Fatal("shift not marked as feedback-driven")
		}
		if s.duration < 10 || s.duration > 30 {
			t.Errorf("feedback shift duration %v outside [10,30]", s.duration)
		}
	}
}

func TestStepShifts_ConcurrencyCap(t *testing.T) {
	e := New(101)
	e.feedback = 1 // maximize spawn probability
	e.lastShiftTime = -minShiftInterval

	for frame := 0; frame < 6000; frame++ {
		e.Update(frameDT)
		if e.ActiveShiftCount() > maxActiveShifts {
			t.Fatalf("frame %d: %d concurrent shifts, cap is %d",
				frame, e.ActiveShiftCount(), maxActiveShifts)
		}
	}
}

func TestPendulum_VelocityCapped(t *testing.T) {
	e := New(103)

	for frame := 0; frame < 3000; frame++ {
		for i := range e.pendulums {
			e.pendulums[i].step(e.time, frameDT)
		}
		e.time += frameDT
		for i := range e.pendulums {
			if math.Abs(e.pendulums[i].velocity) > pendVelocityCap {
				t.Fatalf("pendulum %d velocity %v over cap", i, e.pendulums[i].velocity)
			}
		}
	}
}

func TestPendulum_RubberBandContains(t *testing.T) {
	p := newPendulum(New(107).rng)
	p.angle = 1.5 // well past the limit

	var t0 float64
	for frame := 0; frame < 60000; frame++ {
		p.step(t0, frameDT)
		t0 += frameDT
	}
	if math.Abs(p.angle) > 1.5 {
		t.Errorf("rubber band failed to contain the pendulum: angle %v", p.angle)
	}
}
