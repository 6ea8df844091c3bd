// Package state implements the installation's parameter space: a
// 64-dimension continuous state engine with autonomous drift,
// cross-dimension coupling, external input influence, manual override
// arbitration and damped smoothing. The renderer and synthesizer consume
// its projections verbatim; all input modalities feed it through the
// influence accumulator.
//
// The engine is single-owner: all mutation happens inside one Update call
// per frame, driven by the session runner. It takes no locks and performs
// no I/O.
package state

// Count is the number of scalar channels in the parameter space.
const Count = 64

// Dimension index layout. Indices are grouped by concern:
// color/gradient 0-15, displacement 16-31, post-processing 32-39,
// audio synthesis 40-51, global mood and shape controls 52-63.
const (
	// Color / gradient (0-15). The four hue channels are circular in [0,1).
	DimColorHue1 = iota
	DimColorHue2
	DimColorHue3
	DimColorHue4
	DimColorSaturation
	DimColorBrightness
	DimColorContrast
	DimColorVibrance
	DimGradientAngle
	DimGradientScale
	DimGradientOffsetX
	DimGradientOffsetY
	DimColorMix
	DimColorCycleSpeed
	DimGradientComplexity
	DimColorTemperature

	// Displacement field (16-31).
	DimDisplacementStrength
	DimDisplacementScale
	DimDisplacementSpeed
	DimDisplacementRotation
	DimDisplacementCenterX
	DimDisplacementCenterY
	DimDisplacementRings
	DimRippleStrength
	DimRippleSpeed
	DimRippleDecay
	DimWaveAmplitude
	DimWaveFrequency
	DimWavePhase
	DimFlowSpeed
	DimFlowAngle
	DimTurbulence

	// Post-processing (32-39).
	DimVignette
	DimGrain
	DimChromaticAberration
	DimBloom
	DimBlurAmount
	DimPixelation
	DimScanlines
	DimFeedbackAmount

	// Audio synthesis (40-51).
	DimMasterVolume
	DimDroneLevel
	DimDronePitch
	DimGrainDensity
	DimGrainSize
	DimGrainSpread
	DimFilterCutoff
	DimFilterResonance
	DimReverbMix
	DimDelayFeedback
	DimSubBassLevel
	DimShimmerLevel

	// Global mood and shape controls (52-63). Several indices in this
	// block are shared between two semantic names (see aliasNames).
	DimMood
	DimEnergy
	DimChaos
	DimShapeType
	DimShapeCount
	DimParticleSpeed
	DimSymmetry
	DimZoomLevel
	DimNoiseScale
	DimNoiseSpeed
	DimBreathDepth
	DimBreathRate
)

// Hue channels wrap modulo 1 instead of clamping.
const (
	hueFirst = DimColorHue1
	hueLast  = DimColorHue4
)

// Audio and mood sub-ranges, used by key mapping and parameter shifts.
const (
	audioFirst = DimMasterVolume
	audioLast  = DimShimmerLevel
	colorFirst = DimColorHue1
	colorLast  = DimColorTemperature
	dispFirst  = DimDisplacementStrength
	dispLast   = DimTurbulence
	moodFirst  = DimMood
	moodLast   = DimBreathRate
)

// canonicalNames maps each index to its primary name.
var canonicalNames = [Count]string{
	DimColorHue1:            "colorHue1",
	DimColorHue2:            "colorHue2",
	DimColorHue3:            "colorHue3",
	DimColorHue4:            "colorHue4",
	DimColorSaturation:      "colorSaturation",
	DimColorBrightness:      "colorBrightness",
	DimColorContrast:        "colorContrast",
	DimColorVibrance:        "colorVibrance",
	DimGradientAngle:        "gradientAngle",
	DimGradientScale:        "gradientScale",
	DimGradientOffsetX:      "gradientOffsetX",
	DimGradientOffsetY:      "gradientOffsetY",
	DimColorMix:             "colorMix",
	DimColorCycleSpeed:      "colorCycleSpeed",
	DimGradientComplexity:   "gradientComplexity",
	DimColorTemperature:     "colorTemperature",
	DimDisplacementStrength: "displacementStrength",
	DimDisplacementScale:    "displacementScale",
	DimDisplacementSpeed:    "displacementSpeed",
	DimDisplacementRotation: "displacementRotation",
	DimDisplacementCenterX:  "displacementCenterX",
	DimDisplacementCenterY:  "displacementCenterY",
	DimDisplacementRings:    "displacementRings",
	DimRippleStrength:       "rippleStrength",
	DimRippleSpeed:          "rippleSpeed",
	DimRippleDecay:          "rippleDecay",
	DimWaveAmplitude:        "waveAmplitude",
	DimWaveFrequency:        "waveFrequency",
	DimWavePhase:            "wavePhase",
	DimFlowSpeed:            "flowSpeed",
	DimFlowAngle:            "flowAngle",
	DimTurbulence:           "turbulence",
	DimVignette:             "vignette",
	DimGrain:                "grain",
	DimChromaticAberration:  "chromaticAberration",
	DimBloom:                "bloom",
	DimBlurAmount:           "blurAmount",
	DimPixelation:           "pixelation",
	DimScanlines:            "scanlines",
	DimFeedbackAmount:       "feedbackAmount",
	DimMasterVolume:         "masterVolume",
	DimDroneLevel:           "droneLevel",
	DimDronePitch:           "dronePitch",
	DimGrainDensity:         "grainDensity",
	DimGrainSize:            "grainSize",
	DimGrainSpread:          "grainSpread",
	DimFilterCutoff:         "filterCutoff",
	DimFilterResonance:      "filterResonance",
	DimReverbMix:            "reverbMix",
	DimDelayFeedback:        "delayFeedback",
	DimSubBassLevel:         "subBassLevel",
	DimShimmerLevel:         "shimmerLevel",
	DimMood:                 "mood",
	DimEnergy:               "energy",
	DimChaos:                "chaos",
	DimShapeType:            "shapeType",
	DimShapeCount:           "shapeCount",
	DimParticleSpeed:        "particleSpeed",
	DimSymmetry:             "symmetry",
	DimZoomLevel:            "zoomLevel",
	DimNoiseScale:           "noiseScale",
	DimNoiseSpeed:           "noiseSpeed",
	DimBreathDepth:          "breathDepth",
	DimBreathRate:           "breathRate",
}

// aliasNames maps secondary names onto indices already owned by a
// canonical name. Writing through an alias mutates the shared cell;
// aliased names are mutually exclusive by design (parameter reuse, the
// visual and audio layers never read both names of a pair at once).
var aliasNames = map[string]int{
	"waveDelay":      DimParticleSpeed,
	"patternRepeat":  DimSymmetry,
	"cameraDistance": DimZoomLevel,
}

// staticDimensions never evolve autonomously. Currently only the
// vignette: a wandering vignette reads as a rendering glitch rather
// than mood.
var staticDimensions = map[int]bool{
	DimVignette: true,
}

// curatedDefaults override the 0.5 construction default for channels
// whose resting value was tuned by hand against the renderer and the
// drone patch.
var curatedDefaults = map[int]float64{
	DimColorSaturation:      0.65,
	DimColorBrightness:      0.55,
	DimColorVibrance:        0.6,
	DimDisplacementStrength: 0.35,
	DimDisplacementScale:    0.45,
	DimWaveAmplitude:        0.4,
	DimWaveFrequency:        0.45,
	DimVignette:             0.3,
	DimGrain:                0.2,
	DimChromaticAberration:  0.15,
	DimBloom:                0.4,
	DimMasterVolume:         0.7,
	DimDroneLevel:           0.6,
	DimGrainDensity:         0.45,
	DimFilterCutoff:         0.6,
	DimReverbMix:            0.55,
	DimSubBassLevel:         0.4,
	DimMood:                 0.5,
	DimEnergy:               0.4,
	DimChaos:                0.3,
	DimShapeType:            0.25,
	DimBreathDepth:          0.35,
	DimBreathRate:           0.3,
}

// nameIndex is built once from canonicalNames plus aliasNames.
var nameIndex = buildNameIndex()

func buildNameIndex() map[string]int {
	idx := make(map[string]int, Count+len(aliasNames))
	for i, name := range canonicalNames {
		idx[name] = i
	}
	for name, i := range aliasNames {
		if i < moodFirst || i > moodLast {
			panic("state: alias " + name + " outside the shared mood/shape block")
		}
		if _, taken := idx[name]; taken {
			panic("state: alias " + name + " collides with a canonical name")
		}
		idx[name] = i
	}
	return idx
}

// IndexOf resolves a dimension name (canonical or alias) to its index.
// Unknown names return -1; accessors and mutators treat that as a no-op.
func IndexOf(name string) int {
	if i, ok := nameIndex[name]; ok {
		return i
	}
	return -1
}

// Name returns the canonical name for a dimension index.
func Name(i int) string {
	if i < 0 || i >= Count {
		return ""
	}
	return canonicalNames[i]
}

// HarmonyScheme identifies the color harmony used to seed the session's
// four hue channels.
type HarmonyScheme int

const (
	HarmonyAnalogous HarmonyScheme = iota
	HarmonyComplementary
	HarmonyTriadic
	HarmonySplitComplementary
)

// String returns the scheme name for logs and introspection.
func (h HarmonyScheme) String() string {
	switch h {
	case HarmonyAnalogous:
		return "analogous"
	case HarmonyComplementary:
		return "complementary"
	case HarmonyTriadic:
		return "triadic"
	case HarmonySplitComplementary:
		return "split-complementary"
	}
	return "unknown"
}

// paletteHues derives four harmonious hues from a base hue.
func paletteHues(scheme HarmonyScheme, base float64) [4]float64 {
	switch scheme {
	case HarmonyComplementary:
		return [4]float64{
			wrap1(base),
			wrap1(base + 0.5),
			wrap1(base + 0.0556),
			wrap1(base + 0.5556),
		}
	case HarmonyTriadic:
		return [4]float64{
			wrap1(base),
			wrap1(base + 1.0/3.0),
			wrap1(base + 2.0/3.0),
			wrap1(base + 1.0/6.0),
		}
	case HarmonySplitComplementary:
		return [4]float64{
			wrap1(base),
			wrap1(base + 0.4167),
			wrap1(base + 0.5833),
			wrap1(base + 0.0833),
		}
	default: // analogous
		return [4]float64{
			wrap1(base),
			wrap1(base + 0.0833),
			wrap1(base - 0.0833),
			wrap1(base + 0.1667),
		}
	}
}

// wrap1 wraps v into [0,1).
func wrap1(v float64) float64 {
	v -= float64(int(v))
	if v < 0 {
		v++
	}
	return v
}

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// lerp performs linear interpolation.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep provides smooth easing (slow start/end).
func smoothstep(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
