package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	DefaultMasterVolume = 0.5
)

// Impact triggering
const (
	// ImpactThreshold is the approach speed (units/s) below which contacts stay silent
	ImpactThreshold = 1.0
	// ImpactFullSpeed is the approach speed that plays at full volume
	ImpactFullSpeed = 15.0
	// MinImpactGap rate-limits impacts so a resting pile does not saturate the mixer
	MinImpactGap = 25 * time.Millisecond
	// MaxImpactVoices caps concurrently playing impacts
	MaxImpactVoices = 16
)

// Particle-particle click
const (
	ClickSoundDuration = 70 * time.Millisecond
	ClickSoundAttack   = 2 * time.Millisecond
	ClickSoundRelease  = 60 * time.Millisecond
	ClickBaseFreq      = 660.0
)

// Particle-plane thud
const (
	ThudSoundDuration = 120 * time.Millisecond
	ThudSoundAttack   = 3 * time.Millisecond
	ThudSoundRelease  = 100 * time.Millisecond
	ThudBaseFreq      = 110.0
)
