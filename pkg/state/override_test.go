package state

import (
	"math"
	"testing"
)

func TestSetManualValue_HoldsThenReleases(t *testing.T) {
	e := New(31)
	const name = "displacementStrength"
	dim := IndexOf(name)

	e.SetManualValue(name, 0.42)
	if got := e.Get(name); got != 0.42 {
		t.Fatalf("immediately after set: got %v, want 0.42", got)
	}

	// During the hold window the dimension is fully inert, even under
	// heavy influence and coupling.
	for frame := 0; frame < 300; frame++ {
		e.addInfluence(dim, 3)
		e.Update(frameDT)
		if got := e.Get(name); got != 0.42 {
			t.Fatalf("frame %d: held value moved to %v", frame, got)
		}
		if e.velocity[dim] != 0 {
			t.Fatalf("frame %d: held velocity nonzero: %v", frame, e.velocity[dim])
		}
	}
	if e.autoFactor[dim] != 0 {
		t.Errorf("autoFactor during hold: got %v, want 0", e.autoFactor[dim])
	}

	// Jump past the hold window: the release ramp begins.
	e.time = e.holdUntil[dim] + 0.001
	e.Update(frameDT)
	if e.mode[dim] != modeReleasing {
		t.Fatalf("mode after hold expiry: got %v, want releasing", e.mode[dim])
	}
	if af := e.autoFactor[dim]; af <= 0 || af >= 1 {
		t.Errorf("autoFactor early in release: got %v, want in (0,1)", af)
	}

	// Jump past the release window: full autonomy restored.
	e.time = e.releaseStart[dim] + e.releaseDur[dim] + 0.001
	e.Update(frameDT)
	if e.mode[dim] != modeFree {
		t.Errorf("mode after release: got %v, want free", e.mode[dim])
	}
	if e.autoFactor[dim] != 1 {
		t.Errorf("autoFactor after release: got %v, want 1", e.autoFactor[dim])
	}

	// The value may drift again.
	before := e.Get(name)
	for frame := 0; frame < 600; frame++ {
		e.Update(frameDT)
	}
	if e.Get(name) == before {
		t.Error("value did not resume drifting after release")
	}
}

func TestLockDimension_PinsExactly(t *testing.T) {
	e := New(37)
	const name = "chaos"
	dim := IndexOf(name)

	e.LockDimension(name, 0.2)
	for frame := 0; frame < 300; frame++ {
		e.addInfluence(dim, 10)
		e.Update(frameDT)
		if got := e.current[dim]; got != 0.2 {
			t.Fatalf("frame %d: locked value moved to %v", frame, got)
		}
		if got := e.target[dim]; got != 0.2 {
			t.Fatalf("frame %d: locked target moved to %v", frame, got)
		}
	}

	e.UnlockDimension(name)
	for frame := 0; frame < 600; frame++ {
		e.Update(frameDT)
	}
	if e.current[dim] == 0.2 {
		t.Error("value did not move after unlock")
	}
}

func TestLock_TakesPrecedenceOverHold(t *testing.T) {
	e := New(41)
	const name = "mood"
	dim := IndexOf(name)

	e.SetManualValue(name, 0.6)
	e.LockDimension(name, 0.3)
	e.Update(frameDT)
	if got := e.current[dim]; got != 0.3 {
		t.Errorf("locked over held: got %v, want 0.3", got)
	}

	// SetManualValue on a locked dimension is ignored.
	e.SetManualValue(name, 0.9)
	if got := e.current[dim]; got != 0.3 {
		t.Errorf("manual set on locked dim: got %v, want 0.3", got)
	}
}

func TestSetTargetValue_Glides(t *testing.T) {
	e := New(43)
	const name = "bloom"
	dim := IndexOf(name)

	e.velocity[dim] = 0.0004
	e.SetTargetValue(name, 0.9)

	if e.target[dim] != 0.9 {
		t.Errorf("target: got %v, want 0.9", e.target[dim])
	}
	if !floatEquals(e.velocity[dim], 0.0002) {
		t.Errorf("velocity: got %v, want halved to 0.0002", e.velocity[dim])
	}
	if e.mode[dim] != modeFree {
		t.Error("glide must not engage hold or lock")
	}

	// Current approaches the target over time, never jumping.
	start := e.current[dim]
	e.Update(frameDT)
	step := math.Abs(e.current[dim] - start)
	if step > velocityCap*1.01 {
		t.Errorf("glide step too large: %v", step)
	}
}

func TestSetDimensionValue_BypassesSmoothing(t *testing.T) {
	e := New(47)

	e.SetDimensionValue("grainDensity", 0.85)
	if got := e.Get("grainDensity"); got != 0.85 {
		t.Errorf("got %v, want 0.85", got)
	}
	dim := IndexOf("grainDensity")
	if e.target[dim] != 0.85 {
		t.Errorf("target: got %v, want 0.85", e.target[dim])
	}
	if e.mode[dim] != modeFree {
		t.Error("plain set must not engage hold")
	}
}

func TestNormalize_HueWrapsOthersClamp(t *testing.T) {
	e := New(53)

	e.LockDimension("colorHue1", 1.25)
	if got := e.current[DimColorHue1]; !floatEquals(got, 0.25) {
		t.Errorf("hue lock: got %v, want wrapped 0.25", got)
	}

	e.LockDimension("energy", 1.5)
	if got := e.current[DimEnergy]; got != 1.0 {
		t.Errorf("energy lock: got %v, want clamped 1.0", got)
	}
}
