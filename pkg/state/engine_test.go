package state

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

const frameDT = 1.0 / 60

func TestNew_Defaults(t *testing.T) {
	e := New(1)

	for i := 0; i < Count; i++ {
		if e.current[i] != e.target[i] {
			t.Errorf("dim %d: current %v != target %v at construction", i, e.current[i], e.target[i])
		}
	}

	// Non-hue, non-curated dimensions start at 0.5.
	if e.current[DimWavePhase] != 0.5 {
		t.Errorf("wavePhase: got %v, want 0.5", e.current[DimWavePhase])
	}
	// Curated defaults override 0.5.
	if e.current[DimMasterVolume] != 0.7 {
		t.Errorf("masterVolume: got %v, want 0.7", e.current[DimMasterVolume])
	}

	// Home snapshot matches initial values.
	for i := 0; i < Count; i++ {
		if !floatEquals(e.home[i], e.current[i]) {
			t.Errorf("dim %d: home %v != initial current %v", i, e.home[i], e.current[i])
		}
	}
}

func TestNew_SessionStructure(t *testing.T) {
	e := New(42)

	if got, want := len(e.connections), len(curatedConnections)+randomEdgeCount; got != want {
		t.Errorf("connections: got %d, want %d", got, want)
	}
	if got, want := e.KeyMappingCount(), len(keyAlphabet); got != want {
		t.Errorf("key mappings: got %d, want %d", got, want)
	}

	for _, c := range e.connections {
		if c.Source == c.Target {
			t.Errorf("self-loop on dim %d", c.Source)
		}
	}
	// Random edges (after the curated block) must be weak and avoid
	// static dimensions.
	for _, c := range e.connections[len(curatedConnections):] {
		if math.Abs(c.Strength) >= 0.04 {
			t.Errorf("random edge %d->%d too strong: %v", c.Source, c.Target, c.Strength)
		}
		if staticDimensions[c.Source] || staticDimensions[c.Target] {
			t.Errorf("random edge %d->%d touches a static dimension", c.Source, c.Target)
		}
	}
}

func TestNew_PaletteInRange(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e := New(seed)
		for i := hueFirst; i <= hueLast; i++ {
			if e.current[i] < 0 || e.current[i] >= 1 {
				t.Errorf("seed %d hue %d out of [0,1): %v", seed, i, e.current[i])
			}
		}
	}
}

func TestPaletteHues_Complementary(t *testing.T) {
	hues := paletteHues(HarmonyComplementary, 0.2)
	want := wrap1(hues[0] + 0.5)
	if math.Abs(hues[1]-want) > 1e-9 {
		t.Errorf("complementary hue2: got %v, want %v", hues[1], want)
	}
}

func TestNew_Deterministic(t *testing.T) {
	a := New(7)
	b := New(7)

	for frame := 0; frame < 300; frame++ {
		if frame == 50 {
			a.HandleAudioInput(0.8, 0.6, 0.4, 0.2)
			b.HandleAudioInput(0.8, 0.6, 0.4, 0.2)
		}
		if frame == 100 {
			a.HandleKeyPress('g')
			b.HandleKeyPress('g')
		}
		a.Update(frameDT)
		b.Update(frameDT)
	}

	sa, sb := a.AllState(), b.AllState()
	for name, va := range sa {
		if vb := sb[name]; va != vb {
			t.Errorf("%s diverged: %v vs %v", name, va, vb)
		}
	}
}

func TestUpdate_SoftClampInvariant(t *testing.T) {
	e := New(3)

	for frame := 0; frame < 600; frame++ {
		// Hammer every dimension with large influence.
		for i := 0; i < Count; i++ {
			e.addInfluence(i, 5)
		}
		e.Update(frameDT)
	}

	for i := 0; i < Count; i++ {
		if i >= hueFirst && i <= hueLast {
			if e.current[i] < 0 || e.current[i] >= 1 {
				t.Errorf("hue %d escaped [0,1): %v", i, e.current[i])
			}
			continue
		}
		if e.current[i] < softClampLow || e.current[i] > softClampHigh {
			t.Errorf("dim %d escaped [%v,%v]: %v", i, softClampLow, softClampHigh, e.current[i])
		}
		if e.target[i] < 0 || e.target[i] > 1 {
			t.Errorf("dim %d target escaped [0,1]: %v", i, e.target[i])
		}
	}
}

func TestUpdate_HueWraps(t *testing.T) {
	e := New(5)
	e.driftScale[DimColorHue1] = 0 // isolate the wrap behavior

	e.target[DimColorHue1] = 1.3
	e.Update(frameDT)

	got := e.target[DimColorHue1]
	if got < 0 || got >= 1 {
		t.Fatalf("hue target not wrapped into [0,1): %v", got)
	}
	// Wraps continuously to ~0.3, not a clamp to 1.0.
	if math.Abs(got-0.3) > 0.02 {
		t.Errorf("hue target: got %v, want ~0.3", got)
	}
	if c := e.current[DimColorHue1]; c < 0 || c >= 1 {
		t.Errorf("hue current not wrapped: %v", c)
	}
}

func TestUpdate_StaticDimensionFrozen(t *testing.T) {
	e := New(9)
	start := e.current[DimVignette]

	for i := 0; i < Count; i++ {
		e.addInfluence(i, 2)
	}
	for frame := 0; frame < 300; frame++ {
		e.Update(frameDT)
	}

	if !floatEquals(e.current[DimVignette], start) {
		t.Errorf("vignette moved: %v -> %v", start, e.current[DimVignette])
	}
}

func TestConnectionPropagation_Deterministic(t *testing.T) {
	e := New(11)

	const src, dst = DimMood, DimFilterResonance
	e.connections = []Connection{{Source: src, Target: dst, Strength: 0.5}}
	e.driftScale[dst] = 0
	e.home[dst] = e.target[dst] // no home pull this frame
	e.current[src] = 1.0

	before := e.target[dst]
	e.Update(frameDT)

	// (current[src]-0.5) * strength * dt * 0.5 * autoFactor
	want := (1.0 - 0.5) * 0.5 * frameDT * connectionGain * 1.0
	got := e.target[dst] - before
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("target delta: got %v, want %v", got, want)
	}
}

func TestUpdate_InfluenceDecays(t *testing.T) {
	e := New(13)
	e.addInfluence(DimBloom, 1)

	e.Update(frameDT)
	after1 := e.influence[DimBloom]
	want := 1 * math.Pow(influenceDecay, 1)
	if math.Abs(after1-want) > 1e-9 {
		t.Errorf("influence after one frame: got %v, want %v", after1, want)
	}

	for frame := 0; frame < 1200; frame++ {
		e.Update(frameDT)
	}
	if e.influence[DimBloom] > 1e-4 {
		t.Errorf("influence did not decay away: %v", e.influence[DimBloom])
	}
}

func TestUpdate_LargeDTBounded(t *testing.T) {
	e := New(17)

	// A multi-second gap (tab in background, projector asleep) must not
	// explode anything.
	e.Update(4.0)

	for i := 0; i < Count; i++ {
		if math.IsNaN(e.current[i]) || math.IsInf(e.current[i], 0) {
			t.Fatalf("dim %d not finite after large dt: %v", i, e.current[i])
		}
	}
	for i := range e.pendulums {
		if math.Abs(e.pendulums[i].velocity) > pendVelocityCap {
			t.Errorf("pendulum %d velocity over cap: %v", i, e.pendulums[i].velocity)
		}
	}
}

func TestTriggerInputFeedback_KeepsMax(t *testing.T) {
	e := New(19)

	e.TriggerInputFeedback(0.8)
	e.TriggerInputFeedback(0.3)
	if e.feedback != 0.8 {
		t.Errorf("feedback: got %v, want 0.8 (max kept)", e.feedback)
	}

	e.Update(frameDT)
	if e.feedback >= 0.8 {
		t.Errorf("feedback did not decay: %v", e.feedback)
	}
}

func TestAlias_SharesCell(t *testing.T) {
	e := New(23)

	e.SetDimensionValue("waveDelay", 0.9)
	if got := e.Get("particleSpeed"); got != 0.9 {
		t.Errorf("particleSpeed after writing waveDelay: got %v, want 0.9", got)
	}
	if IndexOf("waveDelay") != DimParticleSpeed {
		t.Errorf("waveDelay resolves to %d, want %d", IndexOf("waveDelay"), DimParticleSpeed)
	}
}

func TestIndexOf_UnknownName(t *testing.T) {
	if IndexOf("noSuchDimension") != -1 {
		t.Error("unknown name should resolve to -1")
	}
	// Mutators on unknown names are silent no-ops.
	e := New(29)
	e.SetManualValue("noSuchDimension", 0.1)
	e.LockDimension("noSuchDimension", 0.1)
	e.UnlockDimension("noSuchDimension")
	e.SetTargetValue("noSuchDimension", 0.1)
	if e.Get("noSuchDimension") != 0 {
		t.Error("unknown name Get should return 0")
	}
}
