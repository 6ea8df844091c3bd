package state

import "math"

// paramShift is a slow eased migration of one dimension's target over
// tens of seconds. A bounded pool of shifts keeps the space from ever
// settling; input feedback spawns faster, larger ones.
type paramShift struct {
	dim        int
	startValue float64
	endValue   float64
	duration   float64
	elapsed    float64
	isFeedback bool
}

const (
	maxActiveShifts = 2

	// minShiftInterval is the minimum session time between spawns.
	minShiftInterval = 4.0

	// shiftSpawnChance is the base per-frame spawn probability at 60fps.
	shiftSpawnChance = 0.0012

	// shiftSampleBudget bounds rejection sampling for a usable dimension.
	// Exhausting it is an expected, harmless outcome under heavy lock or
	// hold contention: the spawn is simply skipped.
	shiftSampleBudget = 20

	// feedbackDecay is the geometric per-frame decay of input feedback.
	feedbackDecay = 0.995
)

// stepShifts advances active shifts, retires finished ones, decays input
// feedback, and probabilistically spawns a new shift.
func (e *Engine) stepShifts(dt float64) {
	// Advance and retire.
	kept := e.shifts[:0]
	for _, s := range e.shifts {
		// An override landed mid-shift: the pin owns the target now.
		// Retire without writing.
		if e.mode[s.dim] == modeLocked || e.mode[s.dim] == modeHeld {
			continue
		}
		s.elapsed += dt
		progress := s.elapsed / s.duration
		if progress >= 1 {
			e.target[s.dim] = s.endValue
			continue
		}
		// Cosine ease: slow in, slow out.
		eased := 0.5 - math.Cos(math.Pi*progress)/2
		e.target[s.dim] = lerp(s.startValue, s.endValue, eased)
		kept = append(kept, s)
	}
	e.shifts = kept

	if e.feedback > 0 {
		e.feedback *= feedbackDecay
		if e.feedback < 1e-3 {
			e.feedback = 0
		}
	}

	if len(e.shifts) >= maxActiveShifts {
		return
	}
	if e.time-e.lastShiftTime < minShiftInterval {
		return
	}
	chance := (shiftSpawnChance + e.feedback*0.01) * dt * 60
	if e.rng.Float64() >= chance {
		return
	}
	e.spawnShift()
}

// spawnShift picks a free dimension by rejection sampling and schedules a
// migration of its target. Audio dimensions are preferred 60% of the time
// so the drone keeps moving even when the visuals are calm.
func (e *Engine) spawnShift() {
	dim := -1
	for attempt := 0; attempt < shiftSampleBudget; attempt++ {
		var candidate int
		if e.rng.Float64() < 0.6 {
			candidate = audioFirst + e.rng.Intn(audioLast-audioFirst+1)
		} else {
			candidate = e.rng.Intn(Count)
		}
		if !e.shiftUsable(candidate) {
			continue
		}
		dim = candidate
		break
	}
	if dim < 0 {
		return // budget exhausted, abort cleanly
	}

	feedback := e.feedback > 0.1
	delta := 0.04
	if feedback {
		delta = 0.075
	}
	if e.rng.Float64() < 0.5 {
		delta = -delta
	}

	start := e.current[dim]
	end := start + delta
	if dim < hueFirst || dim > hueLast {
		end = clamp(end, 0.25, 0.75)
	} else {
		end = wrap1(end)
	}

	duration := 25 + e.rng.Float64()*45
	if feedback {
		duration = 10 + e.rng.Float64()*20
	}

	e.shifts = append(e.shifts, &paramShift{
		dim:        dim,
		startValue: start,
		endValue:   end,
		duration:   duration,
		isFeedback: feedback,
	})
	e.lastShiftTime = e.time
}

// shiftUsable reports whether dim can host a new shift: unlocked, unheld,
// non-static, and not already migrating.
func (e *Engine) shiftUsable(dim int) bool {
	if staticDimensions[dim] {
		return false
	}
	if e.mode[dim] == modeLocked || e.mode[dim] == modeHeld {
		return false
	}
	for _, s := range e.shifts {
		if s.dim == dim {
			return false
		}
	}
	return true
}

// TriggerInputFeedback bridges input magnitude into the shift subsystem:
// spawn probability and shift size grow with intensity, which then decays
// geometrically. Keeps the max of the current and new intensity.
func (e *Engine) TriggerInputFeedback(intensity float64) {
	intensity = clamp(intensity, 0, 1)
	if intensity > e.feedback {
		e.feedback = intensity
	}
}

// ActiveShiftCount reports how many parameter shifts are in flight.
func (e *Engine) ActiveShiftCount() int {
	return len(e.shifts)
}
