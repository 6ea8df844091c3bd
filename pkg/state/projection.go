package state

import "math"

// State projection: pure, side-effect-free reads mapping raw [0,1]
// channel values into the ranges the renderer and synthesizer expect.
// Calling these twice without an intervening Update returns identical
// structures.

// VisualState is the per-frame snapshot the shader pipeline consumes.
type VisualState struct {
	Hue1 float64 `json:"hue1"`
	Hue2 float64 `json:"hue2"`
	Hue3 float64 `json:"hue3"`
	Hue4 float64 `json:"hue4"`

	Saturation  float64 `json:"saturation"`
	Brightness  float64 `json:"brightness"`
	Contrast    float64 `json:"contrast"`
	Vibrance    float64 `json:"vibrance"`
	ColorMix    float64 `json:"color_mix"`
	CycleSpeed  float64 `json:"cycle_speed"`
	Temperature float64 `json:"temperature"`

	GradientAngle      float64 `json:"gradient_angle"`
	GradientScale      float64 `json:"gradient_scale"`
	GradientOffsetX    float64 `json:"gradient_offset_x"`
	GradientOffsetY    float64 `json:"gradient_offset_y"`
	GradientComplexity float64 `json:"gradient_complexity"`

	DisplacementStrength float64 `json:"displacement_strength"`
	DisplacementScale    float64 `json:"displacement_scale"`
	DisplacementSpeed    float64 `json:"displacement_speed"`
	DisplacementRotation float64 `json:"displacement_rotation"`
	DisplacementCenterX  float64 `json:"displacement_center_x"`
	DisplacementCenterY  float64 `json:"displacement_center_y"`
	DisplacementRings    int     `json:"displacement_rings"`

	OrbitX float64 `json:"orbit_x"`
	OrbitY float64 `json:"orbit_y"`

	RippleStrength float64 `json:"ripple_strength"`
	RippleSpeed    float64 `json:"ripple_speed"`
	RippleDecay    float64 `json:"ripple_decay"`
	WaveAmplitude  float64 `json:"wave_amplitude"`
	WaveFrequency  float64 `json:"wave_frequency"`
	WavePhase      float64 `json:"wave_phase"`
	FlowSpeed      float64 `json:"flow_speed"`
	FlowAngle      float64 `json:"flow_angle"`
	Turbulence     float64 `json:"turbulence"`

	Vignette            float64 `json:"vignette"`
	Grain               float64 `json:"grain"`
	ChromaticAberration float64 `json:"chromatic_aberration"`
	Bloom               float64 `json:"bloom"`
	Blur                float64 `json:"blur"`
	Pixelation          float64 `json:"pixelation"`
	Scanlines           float64 `json:"scanlines"`
	FeedbackAmount      float64 `json:"feedback_amount"`

	ShapeType  int     `json:"shape_type"`
	ShapeCount int     `json:"shape_count"`
	Symmetry   int     `json:"symmetry"`
	Zoom       float64 `json:"zoom"`
	NoiseScale float64 `json:"noise_scale"`
	NoiseSpeed float64 `json:"noise_speed"`

	Mood   float64 `json:"mood"`
	Energy float64 `json:"energy"`
	Chaos  float64 `json:"chaos"`

	FocusIntensity float64 `json:"focus_intensity"`
}

// AudioState is the per-frame snapshot the granular drone patch consumes.
type AudioState struct {
	MasterVolume float64 `json:"master_volume"`
	DroneLevel   float64 `json:"drone_level"`
	DronePitch   float64 `json:"drone_pitch"` // MIDI note number

	GrainDensity float64 `json:"grain_density"` // grains per second
	GrainSize    float64 `json:"grain_size"`    // seconds
	GrainSpread  float64 `json:"grain_spread"`

	FilterCutoff    float64 `json:"filter_cutoff"` // Hz
	FilterResonance float64 `json:"filter_resonance"`

	ReverbMix     float64 `json:"reverb_mix"`
	DelayFeedback float64 `json:"delay_feedback"`

	SubBassLevel float64 `json:"sub_bass_level"`
	ShimmerLevel float64 `json:"shimmer_level"`

	BreathDepth float64 `json:"breath_depth"`
	BreathRate  float64 `json:"breath_rate"` // Hz

	FocusBoost float64 `json:"focus_boost"`
}

// Focus-mode boost factors applied in the projections.
const (
	focusDisplacementBoost = 0.6
	focusAberrationBoost   = 0.8
	focusAudioBoost        = 0.4
)

// Orbit motion for the secondary ripple origin: slow circular travel
// around the primary displacement center, computed live from session time.
const (
	orbitRadius = 0.18
	orbitSpeed  = 0.07
)

// Get returns the raw current value of a named dimension, or 0 for
// unknown names.
func (e *Engine) Get(name string) float64 {
	i := IndexOf(name)
	if i < 0 {
		return 0
	}
	return e.current[i]
}

// GetScaled maps the raw current value through an affine rescale into
// [min, max]. Unknown names return min.
func (e *Engine) GetScaled(name string, min, max float64) float64 {
	i := IndexOf(name)
	if i < 0 {
		return min
	}
	return min + e.current[i]*(max-min)
}

// scaled is the internal index-based rescale used by the projections.
func (e *Engine) scaled(dim int, min, max float64) float64 {
	return min + e.current[dim]*(max-min)
}

// VisualState projects the renderer's snapshot.
func (e *Engine) VisualState() VisualState {
	focus := e.focus.intensity
	centerX := e.current[DimDisplacementCenterX]
	centerY := e.current[DimDisplacementCenterY]

	return VisualState{
		Hue1: e.current[DimColorHue1],
		Hue2: e.current[DimColorHue2],
		Hue3: e.current[DimColorHue3],
		Hue4: e.current[DimColorHue4],

		Saturation:  e.scaled(DimColorSaturation, 0.2, 1.0),
		Brightness:  e.scaled(DimColorBrightness, 0.2, 0.9),
		Contrast:    e.scaled(DimColorContrast, 0.6, 1.4),
		Vibrance:    e.current[DimColorVibrance],
		ColorMix:    e.current[DimColorMix],
		CycleSpeed:  e.scaled(DimColorCycleSpeed, 0, 0.4),
		Temperature: e.scaled(DimColorTemperature, -1, 1),

		GradientAngle:      e.scaled(DimGradientAngle, 0, 2*math.Pi),
		GradientScale:      e.scaled(DimGradientScale, 0.5, 2.5),
		GradientOffsetX:    e.scaled(DimGradientOffsetX, -0.5, 0.5),
		GradientOffsetY:    e.scaled(DimGradientOffsetY, -0.5, 0.5),
		GradientComplexity: e.scaled(DimGradientComplexity, 1, 5),

		DisplacementStrength: e.scaled(DimDisplacementStrength, 0, 0.35) * (1 + focus*focusDisplacementBoost),
		DisplacementScale:    e.scaled(DimDisplacementScale, 0.5, 4),
		DisplacementSpeed:    e.scaled(DimDisplacementSpeed, 0, 1.5),
		DisplacementRotation: e.scaled(DimDisplacementRotation, -math.Pi, math.Pi),
		DisplacementCenterX:  centerX,
		DisplacementCenterY:  centerY,
		DisplacementRings:    int(clamp(e.scaled(DimDisplacementRings, 4, 14), 4, 14)),

		OrbitX: e.calculateOrbitX(centerX),
		OrbitY: e.calculateOrbitY(centerY),

		RippleStrength: e.scaled(DimRippleStrength, 0, 0.5),
		RippleSpeed:    e.scaled(DimRippleSpeed, 0, 2),
		RippleDecay:    e.scaled(DimRippleDecay, 0.5, 4),
		WaveAmplitude:  e.scaled(DimWaveAmplitude, 0, 0.6),
		WaveFrequency:  e.scaled(DimWaveFrequency, 0.5, 8),
		WavePhase:      e.scaled(DimWavePhase, 0, 2*math.Pi),
		FlowSpeed:      e.scaled(DimFlowSpeed, 0, 1.2),
		FlowAngle:      e.scaled(DimFlowAngle, 0, 2*math.Pi),
		Turbulence:     e.current[DimTurbulence],

		Vignette:            e.scaled(DimVignette, 0, 0.8),
		Grain:               e.scaled(DimGrain, 0, 0.25),
		ChromaticAberration: e.scaled(DimChromaticAberration, 0, 0.02) * (1 + focus*focusAberrationBoost),
		Bloom:               e.scaled(DimBloom, 0, 1.2),
		Blur:                e.scaled(DimBlurAmount, 0, 6),
		Pixelation:          e.scaled(DimPixelation, 0, 0.5),
		Scanlines:           e.scaled(DimScanlines, 0, 0.4),
		FeedbackAmount:      e.scaled(DimFeedbackAmount, 0, 0.9),

		ShapeType:  int(clamp(e.scaled(DimShapeType, 0, 5), 0, 5)),
		ShapeCount: int(clamp(e.scaled(DimShapeCount, 1, 9), 1, 9)),
		Symmetry:   int(clamp(e.scaled(DimSymmetry, 1, 8), 1, 8)),
		Zoom:       e.scaled(DimZoomLevel, 0.6, 1.8),
		NoiseScale: e.scaled(DimNoiseScale, 0.5, 6),
		NoiseSpeed: e.scaled(DimNoiseSpeed, 0, 1),

		Mood:   e.current[DimMood],
		Energy: e.current[DimEnergy],
		Chaos:  e.current[DimChaos],

		FocusIntensity: focus,
	}
}

// AudioState projects the synthesizer's snapshot.
func (e *Engine) AudioState() AudioState {
	return AudioState{
		MasterVolume: e.current[DimMasterVolume],
		DroneLevel:   e.scaled(DimDroneLevel, 0, 0.9),
		DronePitch:   e.scaled(DimDronePitch, 30, 70),

		GrainDensity: e.scaled(DimGrainDensity, 2, 40),
		GrainSize:    e.scaled(DimGrainSize, 0.02, 0.5),
		GrainSpread:  e.current[DimGrainSpread],

		FilterCutoff:    e.scaled(DimFilterCutoff, 100, 8000),
		FilterResonance: e.scaled(DimFilterResonance, 0, 0.9),

		ReverbMix:     e.scaled(DimReverbMix, 0, 0.9),
		DelayFeedback: e.scaled(DimDelayFeedback, 0, 0.85),

		SubBassLevel: e.scaled(DimSubBassLevel, 0, 0.8),
		ShimmerLevel: e.scaled(DimShimmerLevel, 0, 0.7),

		BreathDepth: e.current[DimBreathDepth],
		BreathRate:  e.scaled(DimBreathRate, 0.05, 0.4),

		FocusBoost: 1 + e.focus.intensity*focusAudioBoost,
	}
}

// AllState returns every canonical dimension's current value rounded to
// three decimals, for debug and introspection.
func (e *Engine) AllState() map[string]float64 {
	out := make(map[string]float64, Count)
	for i := 0; i < Count; i++ {
		out[canonicalNames[i]] = math.Round(e.current[i]*1000) / 1000
	}
	return out
}

// calculateOrbitX returns the secondary ripple origin's x position.
func (e *Engine) calculateOrbitX(centerX float64) float64 {
	return centerX + orbitRadius*math.Cos(e.time*orbitSpeed)
}

// calculateOrbitY returns the secondary ripple origin's y position. The
// vertical rate is detuned so the orbit precesses instead of circling.
func (e *Engine) calculateOrbitY(centerY float64) float64 {
	return centerY + orbitRadius*math.Sin(e.time*orbitSpeed*1.3)
}
