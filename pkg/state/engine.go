package state

import (
	"math"
	"math/rand"
)

// dimMode is the explicit override state of one dimension. Precedence is
// enforced by the transition functions in override.go: lock beats hold,
// hold beats release, release beats free.
type dimMode uint8

const (
	modeFree dimMode = iota
	modeHeld
	modeReleasing
	modeLocked
)

// Tuning constants for the update pipeline. All rates are per-frame at a
// nominal 60fps and scaled by dt*60 where frame-rate independence matters.
const (
	homeStrength       = 0.002
	connectionGain     = 0.5
	influenceEpsilon   = 1e-4
	influenceDecay     = 0.98
	velocityDamping    = 0.998
	velocityGain       = 0.08
	velocityCap        = 0.0008
	boundaryMargin     = 0.15
	boundaryElastic    = 0.0003
	releaseFloor       = 0.08
	softClampLow       = -0.05
	softClampHigh      = 1.05
	staticVelocityFade = 0.5
)

// Engine is the installation's parameter space. One instance exists per
// session; the session runner owns it and is the only caller of Update.
// Input handlers and override methods mutate only the influence
// accumulator and the override bookkeeping, so they are safe to invoke
// between frames on the owning goroutine.
type Engine struct {
	rng  *rand.Rand
	time float64 // monotonic session clock, seconds

	current  [Count]float64
	target   [Count]float64
	velocity [Count]float64

	driftPhase [Count]float64
	driftSpeed [Count]float64
	driftScale [Count]float64
	smoothing  [Count]float64

	influence [Count]float64
	home      [Count]float64

	mode         [Count]dimMode
	lockValue    [Count]float64
	holdValue    [Count]float64
	holdUntil    [Count]float64
	releaseStart [Count]float64
	releaseDur   [Count]float64
	autoFactor   [Count]float64

	connections []Connection
	connBuf     [Count]float64

	keymap map[rune][]KeyBinding

	pendulums [pendCount]pendulum
	focus     focusState

	shifts        []*paramShift
	lastShiftTime float64
	feedback      float64

	harmony HarmonyScheme
	talking bool
}

// New constructs a fully seeded engine. The same seed reproduces the
// entire session: palette, drift parameters, connection noise, key maps,
// pendulum phases, and every runtime random draw.
func New(seed int64) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(seed)),
	}

	for i := 0; i < Count; i++ {
		e.current[i] = 0.5
		e.target[i] = 0.5
		e.driftPhase[i] = e.rng.Float64() * 2 * math.Pi
		e.driftSpeed[i] = 0.01 + e.rng.Float64()*0.09
		e.driftScale[i] = 0.05 + e.rng.Float64()*0.15
		e.smoothing[i] = 0.85 + e.rng.Float64()*0.12
		e.autoFactor[i] = 1
	}

	// Session palette: four harmonious hues from a random base.
	e.harmony = HarmonyScheme(e.rng.Intn(4))
	hues := paletteHues(e.harmony, e.rng.Float64())
	for i, h := range hues {
		e.current[hueFirst+i] = h
		e.target[hueFirst+i] = h
	}

	for dim, v := range curatedDefaults {
		e.current[dim] = v
		e.target[dim] = v
	}

	// The home snapshot is permanent: every dimension is pulled toward
	// this curated resting pose for the rest of the session.
	e.home = e.current

	e.connections = buildConnections(e.rng)
	e.keymap = buildKeyMap(e.rng)
	for i := range e.pendulums {
		e.pendulums[i] = newPendulum(e.rng)
	}
	e.focus = newFocusState(e.rng)

	return e
}

// Harmony returns the session's palette harmony scheme.
func (e *Engine) Harmony() HarmonyScheme {
	return e.harmony
}

// Time returns the session clock in seconds.
func (e *Engine) Time() float64 {
	return e.time
}

// Connections returns the session's coupling graph. The slice is shared;
// callers must not modify it.
func (e *Engine) Connections() []Connection {
	return e.connections
}

// KeyMappingCount reports how many symbols have a key mapping.
func (e *Engine) KeyMappingCount() int {
	return len(e.keymap)
}

// Update advances the parameter space by dt seconds. It must be called
// from a single goroutine, once per frame. The step order is fixed;
// reordering changes the feel of the whole installation.
func (e *Engine) Update(dt float64) {
	if dt <= 0 {
		return
	}
	e.time += dt

	e.computeAutoFactors()
	e.enforceOverrides()
	e.stepPendulums(dt)
	e.stepFocus(dt)
	e.stepShifts(dt)
	e.applyDrift(dt)
	e.propagateConnections(dt)
	e.applyInfluence(dt)
	e.integrate(dt)
	e.wrapValues()
	e.decayInfluence(dt)
}

// computeAutoFactors gates autonomous and coupled movement per dimension:
// 0 under lock, hold or static suppression, a smoothstep ramp from 0.08
// to 1 during release, 1 when free.
func (e *Engine) computeAutoFactors() {
	for i := 0; i < Count; i++ {
		if staticDimensions[i] {
			e.autoFactor[i] = 0
			continue
		}
		switch e.mode[i] {
		case modeLocked:
			e.autoFactor[i] = 0
		case modeHeld:
			if e.time < e.holdUntil[i] {
				e.autoFactor[i] = 0
				continue
			}
			// Hold expired: begin the easing release.
			e.mode[i] = modeReleasing
			e.releaseStart[i] = e.time
			e.autoFactor[i] = releaseFloor
		case modeReleasing:
			p := (e.time - e.releaseStart[i]) / e.releaseDur[i]
			if p >= 1 {
				e.mode[i] = modeFree
				e.autoFactor[i] = 1
				continue
			}
			e.autoFactor[i] = releaseFloor + (1-releaseFloor)*smoothstep(p)
		default:
			e.autoFactor[i] = 1
		}
	}
}

// enforceOverrides pins locked and held dimensions exactly and freezes
// static dimensions without snapping them.
func (e *Engine) enforceOverrides() {
	for i := 0; i < Count; i++ {
		switch {
		case e.mode[i] == modeLocked:
			e.current[i] = e.lockValue[i]
			e.target[i] = e.lockValue[i]
			e.velocity[i] = 0
		case e.mode[i] == modeHeld && e.time < e.holdUntil[i]:
			e.current[i] = e.holdValue[i]
			e.target[i] = e.holdValue[i]
			e.velocity[i] = 0
		case staticDimensions[i]:
			e.target[i] = e.current[i]
			e.velocity[i] *= staticVelocityFade
		}
	}
}

// applyDrift pulls each free dimension toward its home value and adds the
// three-sinusoid wander.
func (e *Engine) applyDrift(dt float64) {
	for i := 0; i < Count; i++ {
		af := e.autoFactor[i]
		if af <= 0 {
			continue
		}
		e.target[i] += (e.home[i] - e.target[i]) * homeStrength * dt * 60 * af

		t := e.time * e.driftSpeed[i]
		drift := math.Sin(t+e.driftPhase[i]) +
			0.5*math.Sin(t*1.7+e.driftPhase[i]*2) +
			0.25*math.Sin(t*2.3+e.driftPhase[i]*0.5)
		e.target[i] += drift * e.driftScale[i] * dt * af
	}
}

// propagateConnections accumulates each edge's contribution into a
// per-frame buffer, then folds the buffer into every target. Two-pass so
// this frame's propagation reads last frame's positions only.
func (e *Engine) propagateConnections(dt float64) {
	for i := range e.connBuf {
		e.connBuf[i] = 0
	}
	for _, c := range e.connections {
		af := e.autoFactor[c.Target]
		if af <= 0 {
			continue
		}
		e.connBuf[c.Target] += (e.current[c.Source] - 0.5) * c.Strength * dt * connectionGain * af
	}
	for i := 0; i < Count; i++ {
		e.target[i] += e.connBuf[i]
	}
}

// applyInfluence folds the externally injected force into targets.
func (e *Engine) applyInfluence(dt float64) {
	for i := 0; i < Count; i++ {
		af := e.autoFactor[i]
		if af <= 0 {
			continue
		}
		if math.Abs(e.influence[i]) <= influenceEpsilon {
			continue
		}
		e.target[i] += e.influence[i] * dt * af
	}
}

// integrate moves current toward target with momentum, boundary
// elasticity and a velocity cap scaled by the auto factor.
func (e *Engine) integrate(dt float64) {
	step := dt * 60
	if step > 1 {
		step = 1
	}
	for i := 0; i < Count; i++ {
		af := e.autoFactor[i]
		if af <= 0 {
			e.velocity[i] = 0
			continue
		}

		diff := e.target[i] - e.current[i]
		e.velocity[i] = e.velocity[i]*velocityDamping + diff*(1-e.smoothing[i])*velocityGain*af

		// Elastic boundaries; hue channels wrap instead.
		if i < hueFirst || i > hueLast {
			if e.current[i] < boundaryMargin {
				e.velocity[i] += (boundaryMargin - e.current[i]) * boundaryElastic
			} else if e.current[i] > 1-boundaryMargin {
				e.velocity[i] -= (e.current[i] - (1 - boundaryMargin)) * boundaryElastic
			}
		}

		vcap := velocityCap * (0.2 + 0.8*af)
		e.velocity[i] = clamp(e.velocity[i], -vcap, vcap)
		e.current[i] += e.velocity[i] * step
	}
}

// wrapValues wraps the hue channels and clamps everything else: current
// softly to [-0.05, 1.05], target hard to [0, 1].
func (e *Engine) wrapValues() {
	for i := hueFirst; i <= hueLast; i++ {
		e.current[i] = wrap1(e.current[i])
		e.target[i] = wrap1(e.target[i])
	}
	for i := 0; i < Count; i++ {
		if i >= hueFirst && i <= hueLast {
			continue
		}
		e.current[i] = clamp(e.current[i], softClampLow, softClampHigh)
		e.target[i] = clamp(e.target[i], 0, 1)
	}
}

// decayInfluence applies the frame-rate independent geometric decay.
func (e *Engine) decayInfluence(dt float64) {
	factor := math.Pow(influenceDecay, dt*60)
	for i := 0; i < Count; i++ {
		e.influence[i] *= factor
	}
}

// addInfluence is the single entry point every input modality funnels
// through; no handler may write current or target directly.
func (e *Engine) addInfluence(dim int, amount float64) {
	if dim < 0 || dim >= Count {
		return
	}
	e.influence[dim] += amount
}
