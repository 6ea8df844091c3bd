package state

// Manual override API. Unknown dimension names are silent no-ops so UI
// bindings can reference names optimistically.

// SetDimensionValue writes current and target instantly, bypassing all
// smoothing. Intended for deterministic initialization only; it does not
// engage hold or lock state.
func (e *Engine) SetDimensionValue(name string, value float64) {
	i := IndexOf(name)
	if i < 0 {
		return
	}
	value = e.normalize(i, value)
	e.current[i] = value
	e.target[i] = value
}

// SetManualValue writes the value instantly, then arbitrates: the
// dimension is frozen at the value for a random 10-60s hold, followed by
// a random 20-60s easing release back to full autonomy. This is the
// contract for user-driven slider changes: settle, hold, then gently
// resume organic evolution. A locked dimension ignores the call.
func (e *Engine) SetManualValue(name string, value float64) {
	i := IndexOf(name)
	if i < 0 || e.mode[i] == modeLocked {
		return
	}
	value = e.normalize(i, value)
	e.current[i] = value
	e.target[i] = value
	e.velocity[i] = 0

	e.mode[i] = modeHeld
	e.holdValue[i] = value
	e.holdUntil[i] = e.time + 10 + e.rng.Float64()*50
	e.releaseDur[i] = 20 + e.rng.Float64()*40
}

// LockDimension pins the dimension indefinitely. Lock takes precedence
// over any hold in progress.
func (e *Engine) LockDimension(name string, value float64) {
	i := IndexOf(name)
	if i < 0 {
		return
	}
	value = e.normalize(i, value)
	e.mode[i] = modeLocked
	e.lockValue[i] = value
	e.current[i] = value
	e.target[i] = value
	e.velocity[i] = 0
}

// UnlockDimension releases a locked dimension into the easing release
// window, so autonomy ramps back up instead of snapping.
func (e *Engine) UnlockDimension(name string) {
	i := IndexOf(name)
	if i < 0 || e.mode[i] != modeLocked {
		return
	}
	e.mode[i] = modeReleasing
	e.releaseStart[i] = e.time
	e.releaseDur[i] = 20 + e.rng.Float64()*40
}

// SetTargetValue sets only the target and halves current velocity: a
// smooth glide that does not engage hold or lock.
func (e *Engine) SetTargetValue(name string, value float64) {
	i := IndexOf(name)
	if i < 0 || e.mode[i] == modeLocked {
		return
	}
	e.target[i] = e.normalize(i, value)
	e.velocity[i] *= 0.5
}

// IsLocked reports whether the named dimension is locked. Unknown names
// report false.
func (e *Engine) IsLocked(name string) bool {
	i := IndexOf(name)
	return i >= 0 && e.mode[i] == modeLocked
}

// normalize wraps hue values and clamps everything else to [0,1].
func (e *Engine) normalize(dim int, value float64) float64 {
	if dim >= hueFirst && dim <= hueLast {
		return wrap1(value)
	}
	return clamp(value, 0, 1)
}
