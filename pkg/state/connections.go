package state

import "math/rand"

// Connection is a directed coupling: the source's deviation from center
// (0.5) nudges the target's target value proportionally to Strength each
// frame. The graph may contain cycles; the small strengths and the damped
// integration downstream keep them stable.
type Connection struct {
	Source   int
	Target   int
	Strength float64 // [-1, 1]
}

// randomEdgeCount is the number of weak random links added on top of the
// curated set each session.
const randomEdgeCount = 15

// curatedConnections are the domain-meaningful couplings. Tuned by ear
// and by eye; the sign on breathRate keeps slow breathing deep.
var curatedConnections = []Connection{
	{DimColorSaturation, DimColorVibrance, 0.3},
	{DimChaos, DimTurbulence, 0.5},
	{DimChaos, DimNoiseScale, 0.3},
	{DimChaos, DimChromaticAberration, 0.25},
	{DimEnergy, DimDisplacementSpeed, 0.4},
	{DimEnergy, DimParticleSpeed, 0.3},
	{DimEnergy, DimChaos, 0.15},
	{DimMood, DimColorTemperature, 0.35},
	{DimMood, DimColorBrightness, 0.2},
	{DimMasterVolume, DimBloom, 0.15},
	{DimDroneLevel, DimSubBassLevel, 0.25},
	{DimGrainDensity, DimGrain, 0.2},
	{DimDisplacementStrength, DimRippleStrength, 0.3},
	{DimDisplacementSpeed, DimRippleSpeed, 0.3},
	{DimWaveFrequency, DimWavePhase, 0.2},
	{DimBreathRate, DimBreathDepth, -0.2},
	{DimFilterCutoff, DimShimmerLevel, 0.3},
	{DimReverbMix, DimDelayFeedback, 0.25},
	{DimTurbulence, DimFlowSpeed, 0.3},
	{DimNoiseSpeed, DimColorCycleSpeed, 0.2},
}

// buildConnections returns the session's fixed connection list: the
// curated set plus randomEdgeCount weak random links. Random links never
// touch static dimensions and never form self-loops.
func buildConnections(rng *rand.Rand) []Connection {
	conns := make([]Connection, 0, len(curatedConnections)+randomEdgeCount)
	conns = append(conns, curatedConnections...)

	for added := 0; added < randomEdgeCount; {
		src := rng.Intn(Count)
		tgt := rng.Intn(Count)
		if src == tgt || staticDimensions[src] || staticDimensions[tgt] {
			continue
		}
		// Weak by construction: |strength| < 0.04.
		strength := (rng.Float64()*2 - 1) * 0.04
		conns = append(conns, Connection{Source: src, Target: tgt, Strength: strength})
		added++
	}
	return conns
}
