package state

import (
	"math"
	"math/rand"
)

// Pendulum axis indices. Each axis is an independent damped oscillator
// whose projected position blends very slowly into one dimension target,
// producing camera-like drift that no direct input can reproduce.
const (
	pendX = iota
	pendY
	pendRotation
	pendScale
	pendCount
)

const (
	// pendMaxDT caps the integration step after a pause; a multi-second
	// frame gap must not launch the oscillator.
	pendMaxDT = 0.05

	// pendVelocityCap limits angular velocity per step.
	pendVelocityCap = 0.001

	// pendRubberBandLimit is the angle beyond which the rubber-band
	// restoring force engages.
	pendRubberBandLimit = 0.8

	// pendBlendRate is how fast the projected position leaks into its
	// dimension target. Rotation and scale use pendBlendRate * 0.2.
	pendBlendRate = 0.005
)

// pendulum is a scalar damped oscillator driven by three incommensurate
// sinusoids, with a spring toward zero and a rubber band beyond ±0.8 rad.
// Not a rigid body — just enough physics to wander convincingly.
type pendulum struct {
	angle    float64
	velocity float64

	phase [3]float64 // random per session
	freq  [3]float64

	driftAmp float64
	spring   float64
	rubber   float64
	damping  float64
}

// newPendulum seeds one axis. The drift frequencies are deliberately
// incommensurate so the sum never settles into a visible period.
func newPendulum(rng *rand.Rand) pendulum {
	base := 0.05 + rng.Float64()*0.04
	return pendulum{
		phase:    [3]float64{rng.Float64() * 2 * math.Pi, rng.Float64() * 2 * math.Pi, rng.Float64() * 2 * math.Pi},
		freq:     [3]float64{base, base * 1.713, base * 2.351},
		driftAmp: 0.0004 + rng.Float64()*0.0003,
		spring:   0.002,
		rubber:   0.01,
		damping:  0.995,
	}
}

// step advances the oscillator by dt seconds of session time t.
func (p *pendulum) step(t, dt float64) {
	if dt > pendMaxDT {
		dt = pendMaxDT
	}

	drift := math.Sin(t*p.freq[0]+p.phase[0]) +
		0.5*math.Sin(t*p.freq[1]+p.phase[1]) +
		0.25*math.Sin(t*p.freq[2]+p.phase[2])

	accel := drift*p.driftAmp - p.angle*p.spring

	// Rubber band: a second, stiffer restoring force past the limit.
	if p.angle > pendRubberBandLimit {
		accel -= (p.angle - pendRubberBandLimit) * p.rubber
	} else if p.angle < -pendRubberBandLimit {
		accel -= (p.angle + pendRubberBandLimit) * p.rubber
	}

	p.velocity = (p.velocity + accel*dt*60) * p.damping
	p.velocity = clamp(p.velocity, -pendVelocityCap, pendVelocityCap)
	p.angle += p.velocity * dt * 60
}

// position projects the angle into the [0,1] dimension range.
func (p *pendulum) position() float64 {
	return 0.5 + p.angle*0.35
}

// stepPendulums advances all four oscillators and leaks their positions
// into the gradient offset, rotation and scale targets. The leak respects
// each destination's auto factor so a held dimension stays pinned.
func (e *Engine) stepPendulums(dt float64) {
	for i := range e.pendulums {
		e.pendulums[i].step(e.time, dt)
	}

	blend := func(dim int, pos, rate float64) {
		if e.autoFactor[dim] <= 0 {
			return
		}
		e.target[dim] += (pos - e.target[dim]) * rate * e.autoFactor[dim]
	}

	blend(DimGradientOffsetX, e.pendulums[pendX].position(), pendBlendRate)
	blend(DimGradientOffsetY, e.pendulums[pendY].position(), pendBlendRate)
	blend(DimDisplacementRotation, e.pendulums[pendRotation].position(), pendBlendRate*0.2)
	blend(DimGradientScale, e.pendulums[pendScale].position(), pendBlendRate*0.2)
}
