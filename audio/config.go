package audio

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/physics"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "PARTICLE_SANDBOX_AUDIO_ENABLED"
	EnvMasterVolume    = "PARTICLE_SANDBOX_MASTER_VOLUME"
	EnvSampleRate      = "PARTICLE_SANDBOX_SAMPLE_RATE"
	EnvImpactThreshold = "PARTICLE_SANDBOX_IMPACT_THRESHOLD"
	EnvSFXVolumes      = "PARTICLE_SANDBOX_SFX_VOLUMES"
)

// Config controls impact sound playback
type Config struct {
	Enabled         bool
	MasterVolume    float64 // 0.0-1.0
	SampleRate      int
	ImpactThreshold float64
	MinGap          time.Duration
	MaxVoices       int
	KindVolumes     map[physics.ContactKind]float64
}

// DefaultConfig returns audio enabled at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MasterVolume:    parameter.DefaultMasterVolume,
		SampleRate:      parameter.AudioSampleRate,
		ImpactThreshold: parameter.ImpactThreshold,
		MinGap:          parameter.MinImpactGap,
		MaxVoices:       parameter.MaxImpactVoices,
		KindVolumes: map[physics.ContactKind]float64{
			physics.ParticleParticle: 0.6,
			physics.ParticlePlane:    1.0,
		},
	}
}

// LoadConfig overlays environment variables on DefaultConfig; malformed values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv(EnvEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if threshold := os.Getenv(EnvImpactThreshold); threshold != "" {
		if val, err := strconv.ParseFloat(threshold, 64); err == nil && val >= 0 {
			cfg.ImpactThreshold = val
		}
	}

	// JSON object keyed by contact kind: {"particle": 0.5, "plane": 1}
	if kindVols := os.Getenv(EnvSFXVolumes); kindVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(kindVols), &volumes); err == nil {
			if v, ok := volumes["particle"]; ok {
				cfg.KindVolumes[physics.ParticleParticle] = clampUnit(v)
			}
			if v, ok := volumes["plane"]; ok {
				cfg.KindVolumes[physics.ParticlePlane] = clampUnit(v)
			}
		}
	}

	return cfg
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
