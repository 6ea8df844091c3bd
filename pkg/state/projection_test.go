package state

import (
	"math"
	"reflect"
	"testing"
)

func TestProjection_Idempotent(t *testing.T) {
	e := New(109)
	for frame := 0; frame < 120; frame++ {
		e.Update(frameDT)
	}

	v1, v2 := e.VisualState(), e.VisualState()
	if !reflect.DeepEqual(v1, v2) {
		t.Error("VisualState mutated state between calls")
	}
	a1, a2 := e.AudioState(), e.AudioState()
	if !reflect.DeepEqual(a1, a2) {
		t.Error("AudioState mutated state between calls")
	}
	s1, s2 := e.AllState(), e.AllState()
	if !reflect.DeepEqual(s1, s2) {
		t.Error("AllState mutated state between calls")
	}
}

func TestGetScaled_Affine(t *testing.T) {
	e := New(113)
	e.SetDimensionValue("displacementRings", 0.5)

	got := e.GetScaled("displacementRings", 4, 14)
	if !floatEquals(got, 9) {
		t.Errorf("got %v, want 9", got)
	}
	if got := e.GetScaled("noSuchDimension", 4, 14); got != 4 {
		t.Errorf("unknown name: got %v, want min (4)", got)
	}
}

func TestVisualState_Ranges(t *testing.T) {
	e := New(127)
	for frame := 0; frame < 1800; frame++ {
		e.Update(frameDT)
	}
	v := e.VisualState()

	if v.DisplacementRings < 4 || v.DisplacementRings > 14 {
		t.Errorf("rings: got %d, want [4,14]", v.DisplacementRings)
	}
	if v.Saturation < 0.2-0.05 || v.Saturation > 1.0+0.05 {
		t.Errorf("saturation out of range: %v", v.Saturation)
	}
	for i, h := range []float64{v.Hue1, v.Hue2, v.Hue3, v.Hue4} {
		if h < 0 || h >= 1 {
			t.Errorf("hue%d out of [0,1): %v", i+1, h)
		}
	}
	if v.FocusIntensity < 0 || v.FocusIntensity > 1 {
		t.Errorf("focus intensity out of range: %v", v.FocusIntensity)
	}
}

func TestVisualState_FocusBoost(t *testing.T) {
	e := New(131)
	e.focus.intensity = 0

	base := e.VisualState().DisplacementStrength
	e.focus.intensity = 1
	boosted := e.VisualState().DisplacementStrength

	want := base * (1 + focusDisplacementBoost)
	if math.Abs(boosted-want) > 1e-9 {
		t.Errorf("boosted strength: got %v, want %v", boosted, want)
	}
}

func TestAudioState_Ranges(t *testing.T) {
	e := New(137)
	for frame := 0; frame < 600; frame++ {
		e.Update(frameDT)
	}
	a := e.AudioState()

	if a.DronePitch < 30 || a.DronePitch > 70 {
		t.Errorf("drone pitch out of [30,70]: %v", a.DronePitch)
	}
	if a.FilterCutoff < 100 || a.FilterCutoff > 8000 {
		t.Errorf("filter cutoff out of [100,8000]: %v", a.FilterCutoff)
	}
	if a.FocusBoost < 1 || a.FocusBoost > 1+focusAudioBoost {
		t.Errorf("focus boost out of range: %v", a.FocusBoost)
	}
}

func TestAllState_RoundedAndComplete(t *testing.T) {
	e := New(139)
	for frame := 0; frame < 60; frame++ {
		e.Update(frameDT)
	}
	all := e.AllState()

	if len(all) != Count {
		t.Fatalf("got %d entries, want %d", len(all), Count)
	}
	for name, v := range all {
		if math.Round(v*1000)/1000 != v {
			t.Errorf("%s not rounded to 3 decimals: %v", name, v)
		}
	}
	// Aliases are not separate entries.
	if _, ok := all["waveDelay"]; ok {
		t.Error("alias leaked into AllState")
	}
}

func TestOrbit_CirclesCenter(t *testing.T) {
	e := New(149)
	e.SetDimensionValue("displacementCenterX", 0.5)
	e.SetDimensionValue("displacementCenterY", 0.5)

	for _, tm := range []float64{0, 13, 47, 112} {
		e.time = tm
		v := e.VisualState()
		dx := v.OrbitX - v.DisplacementCenterX
		dy := v.OrbitY - v.DisplacementCenterY
		if math.Abs(dx) > orbitRadius+1e-9 || math.Abs(dy) > orbitRadius+1e-9 {
			t.Errorf("t=%v: orbit strayed beyond radius: (%v,%v)", tm, dx, dy)
		}
	}
}
