package state

import "math/rand"

// Focus mode periodically "zooms in": a session-wide intensity multiplier
// eases up for 8-20 seconds, then back down for a 15-45 second rest. The
// projections boost displacement strength and chromatic aberration by it.
type focusState struct {
	active          bool
	intensity       float64
	targetIntensity float64
	nextTransition  float64 // session time of the next toggle
}

const (
	focusEaseIn  = 0.02
	focusEaseOut = 0.015
)

// newFocusState schedules the first activation a short while into the
// session so the opening moments stay wide.
func newFocusState(rng *rand.Rand) focusState {
	return focusState{
		nextTransition: 10 + rng.Float64()*20,
	}
}

// stepFocus toggles focus mode on schedule and eases intensity toward its
// target every frame.
func (e *Engine) stepFocus(dt float64) {
	f := &e.focus
	if e.time >= f.nextTransition {
		if f.active {
			f.active = false
			f.targetIntensity = 0
			f.nextTransition = e.time + 15 + e.rng.Float64()*30
		} else {
			f.active = true
			f.targetIntensity = 0.6 + e.rng.Float64()*0.4
			f.nextTransition = e.time + 8 + e.rng.Float64()*12
		}
	}

	rate := focusEaseOut
	if f.active {
		rate = focusEaseIn
	}
	f.intensity += (f.targetIntensity - f.intensity) * rate * dt * 60
}

// FocusIntensity reports the current focus-mode intensity in [0,1].
func (e *Engine) FocusIntensity() float64 {
	return e.focus.intensity
}

// FocusActive reports whether focus mode is currently holding.
func (e *Engine) FocusActive() bool {
	return e.focus.active
}
