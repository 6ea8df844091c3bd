package state

// External input handlers. Every modality funnels through the influence
// accumulator and obeys the same per-frame decay and damped integration;
// no handler may bypass smoothing. The gain constants are hand-tuned
// against the renderer — change them in front of the projector, not here.

// Gesture carries one frame of pointer/touch gesture features, normalized
// by the gesture tracker.
type Gesture struct {
	IsPinching     bool    `json:"is_pinching"`
	PinchScale     float64 `json:"pinch_scale"` // 1.0 = no change
	PinchCenterX   float64 `json:"pinch_center_x"`
	PinchCenterY   float64 `json:"pinch_center_y"`
	IsRotating     bool    `json:"is_rotating"`
	Rotation       float64 `json:"rotation"` // radians
	SwipeVelocityX float64 `json:"swipe_velocity_x"`
	SwipeVelocityY float64 `json:"swipe_velocity_y"`
}

// FaceFeatures carries one frame of normalized face-feature scalars from
// the landmark extractor. Rotations are in [-1,1], everything else in
// [0,1] unless noted.
type FaceFeatures struct {
	Detected bool `json:"detected"`

	HeadYaw   float64 `json:"head_yaw"`
	HeadPitch float64 `json:"head_pitch"`
	HeadRoll  float64 `json:"head_roll"`

	LeftEyeOpen  float64 `json:"left_eye_open"`
	RightEyeOpen float64 `json:"right_eye_open"`

	GazeX float64 `json:"gaze_x"` // [-1,1]
	GazeY float64 `json:"gaze_y"` // [-1,1]

	MouthOpen  float64 `json:"mouth_open"`
	MouthWidth float64 `json:"mouth_width"`

	BrowRaise  float64 `json:"brow_raise"`
	BrowFurrow float64 `json:"brow_furrow"`

	LookingAtScreen bool    `json:"looking_at_screen"`
	Engagement      float64 `json:"engagement"`
}

// HandleKeyPress applies the session's key mapping for the symbol.
// Unmapped symbols are a no-op.
func (e *Engine) HandleKeyPress(symbol rune) {
	bindings, ok := e.keymap[symbol]
	if !ok {
		return
	}
	for _, b := range bindings {
		e.addInfluence(b.Dim, b.Strength*keyPressGain)
	}
}

// HandleMouseMove steers the displacement center and gradient angle
// toward the pointer. x and y are normalized to [0,1].
func (e *Engine) HandleMouseMove(x, y float64) {
	e.addInfluence(DimDisplacementCenterX, (x-0.5)*0.8)
	e.addInfluence(DimDisplacementCenterY, (y-0.5)*0.8)
	e.addInfluence(DimGradientAngle, (x-0.5)*0.3)
}

// HandleGestureInput maps pinch, rotation and swipe features.
func (e *Engine) HandleGestureInput(g Gesture) {
	if g.IsPinching {
		e.addInfluence(DimZoomLevel, (g.PinchScale-1)*0.8)
		e.addInfluence(DimDisplacementCenterX, (g.PinchCenterX-0.5)*0.5)
		e.addInfluence(DimDisplacementCenterY, (g.PinchCenterY-0.5)*0.5)
	}
	if g.IsRotating {
		e.addInfluence(DimGradientAngle, g.Rotation*0.5)
		e.addInfluence(DimDisplacementRotation, g.Rotation*0.3)
	}
	e.addInfluence(DimFlowSpeed, (abs(g.SwipeVelocityX)+abs(g.SwipeVelocityY))*0.4)
	e.addInfluence(DimFlowAngle, g.SwipeVelocityX*0.3)
}

// HandleAudioInput maps the analyzer's band levels, all in [0,1].
func (e *Engine) HandleAudioInput(volume, bass, mid, treble float64) {
	e.addInfluence(DimDisplacementStrength, bass*0.6)
	e.addInfluence(DimSubBassLevel, bass*0.3)
	e.addInfluence(DimWaveAmplitude, volume*0.5)
	e.addInfluence(DimEnergy, volume*0.3)
	e.addInfluence(DimGrainDensity, mid*0.35)
	e.addInfluence(DimBloom, treble*0.4)
	e.addInfluence(DimShimmerLevel, treble*0.25)
}

// HandleFacePosition maps the absolute face position and apparent size,
// all in [0,1].
func (e *Engine) HandleFacePosition(x, y, size float64) {
	e.addInfluence(DimDisplacementCenterX, (x-0.5)*0.7)
	e.addInfluence(DimDisplacementCenterY, (y-0.5)*0.7)
	e.addInfluence(DimZoomLevel, (size-0.5)*0.5)
}

// HandleFacePositionSmooth maps the tracker's pre-smoothed push vector,
// all in [-1,1].
func (e *Engine) HandleFacePositionSmooth(pushX, pushY, pushSize float64) {
	e.addInfluence(DimGradientOffsetX, pushX*0.4)
	e.addInfluence(DimGradientOffsetY, pushY*0.4)
	e.addInfluence(DimGradientScale, pushSize*0.3)
}

// HandleFaceFeatures maps the structured face-feature frame. A frame with
// Detected=false is ignored entirely.
func (e *Engine) HandleFaceFeatures(f FaceFeatures) {
	if !f.Detected {
		return
	}

	e.addInfluence(DimFlowAngle, f.HeadYaw*0.5)
	e.addInfluence(DimGradientAngle, f.HeadPitch*0.3)
	e.addInfluence(DimDisplacementRotation, f.HeadRoll*0.4)

	eyesOpen := (f.LeftEyeOpen + f.RightEyeOpen) / 2
	e.addInfluence(DimColorBrightness, (eyesOpen-0.5)*0.3)

	e.addInfluence(DimDisplacementCenterX, f.GazeX*0.4)
	e.addInfluence(DimDisplacementCenterY, f.GazeY*0.4)

	e.addInfluence(DimWaveAmplitude, f.MouthOpen*0.6)
	e.addInfluence(DimGrainSize, f.MouthOpen*0.3)
	e.addInfluence(DimColorSaturation, (f.MouthWidth-0.5)*0.2)

	e.addInfluence(DimBloom, f.BrowRaise*0.4)
	e.addInfluence(DimChaos, f.BrowFurrow*0.3)

	e.addInfluence(DimEnergy, f.Engagement*0.5)
	if f.LookingAtScreen {
		e.addInfluence(DimMood, 0.1)
	} else {
		e.addInfluence(DimMood, -0.05)
	}
}

// HandleBlink is a one-shot influence bump on the grain and aberration
// channels: a blink flickers the image.
func (e *Engine) HandleBlink() {
	e.addInfluence(DimGrain, 0.15)
	e.addInfluence(DimChromaticAberration, 0.2)
}

// HandleTalking is level-triggered: entering the talking state lifts the
// shimmer and wave channels, leaving it relaxes them.
func (e *Engine) HandleTalking(isTalking bool) {
	if isTalking == e.talking {
		return
	}
	e.talking = isTalking
	if isTalking {
		e.addInfluence(DimShimmerLevel, 0.3)
		e.addInfluence(DimWaveFrequency, 0.2)
	} else {
		e.addInfluence(DimShimmerLevel, -0.15)
		e.addInfluence(DimWaveFrequency, -0.1)
	}
}

// HandleMotion maps device tilt and shake. Tilt is in [-1,1], shake in
// [0,1].
func (e *Engine) HandleMotion(tiltX, tiltY, shake float64) {
	e.addInfluence(DimGradientOffsetX, tiltX*0.4)
	e.addInfluence(DimGradientOffsetY, tiltY*0.4)
	e.addInfluence(DimChaos, shake*0.8)
	e.addInfluence(DimTurbulence, shake*0.6)
}

// Influence reports the current accumulated influence on a dimension
// index, for diagnostics.
func (e *Engine) Influence(dim int) float64 {
	if dim < 0 || dim >= Count {
		return 0
	}
	return e.influence[dim]
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
