package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/particle-sandbox/physics"
)

// newTestPlayer returns an initialized player whose output is captured instead of sent to a speaker
func newTestPlayer(cfg *Config, clock *time.Time) (*ImpactPlayer, *[]beep.Streamer) {
	p := NewImpactPlayer(cfg)
	var captured []beep.Streamer
	p.sink = func(s beep.Streamer) { captured = append(captured, s) }
	p.now = func() time.Time { return *clock }
	p.initialized = true
	return p, &captured
}

func TestImpactPlayerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	p := NewImpactPlayer(cfg)

	if err := p.Initialize(); !errors.Is(err, ErrAudioDisabled) {
		t.Errorf("Expected ErrAudioDisabled, got %v", err)
	}

	// Uninitialized player ignores contacts
	p.OnContact(physics.Contact{Kind: physics.ParticlePlane, ImpactSpeed: 10})
	if played, dropped := p.Stats(); played != 0 || dropped != 0 {
		t.Errorf("Expected no activity, got played=%d dropped=%d", played, dropped)
	}
	p.Cleanup()
}

func TestImpactPlayerThreshold(t *testing.T) {
	clock := time.Unix(0, 0)
	p, captured := newTestPlayer(DefaultConfig(), &clock)

	p.OnContact(physics.Contact{Kind: physics.ParticlePlane, ImpactSpeed: 0.5})
	p.OnContact(physics.Contact{Kind: physics.ParticlePlane, ImpactSpeed: 1.0})
	if len(*captured) != 0 {
		t.Fatalf("Expected soft contacts to be ignored, got %d sounds", len(*captured))
	}

	p.OnContact(physics.Contact{Kind: physics.ParticlePlane, ImpactSpeed: 5})
	if len(*captured) != 1 {
		t.Fatalf("Expected 1 sound, got %d", len(*captured))
	}
	if played, dropped := p.Stats(); played != 1 || dropped != 0 {
		t.Errorf("Expected played=1 dropped=0, got played=%d dropped=%d", played, dropped)
	}
}

func TestImpactPlayerRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinGap = 10 * time.Millisecond
	clock := time.Unix(0, 0)
	p, captured := newTestPlayer(cfg, &clock)

	hit := physics.Contact{Kind: physics.ParticleParticle, ImpactSpeed: 8}

	p.OnContact(hit)
	p.OnContact(hit) // same instant
	clock = clock.Add(5 * time.Millisecond)
	p.OnContact(hit) // still inside the gap
	clock = clock.Add(10 * time.Millisecond)
	p.OnContact(hit)

	if len(*captured) != 2 {
		t.Errorf("Expected 2 sounds, got %d", len(*captured))
	}
	if played, dropped := p.Stats(); played != 2 || dropped != 2 {
		t.Errorf("Expected played=2 dropped=2, got played=%d dropped=%d", played, dropped)
	}
}

func TestImpactPlayerMaxVoices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinGap = 0
	cfg.MaxVoices = 3
	clock := time.Unix(0, 0)
	p, captured := newTestPlayer(cfg, &clock)

	hit := physics.Contact{Kind: physics.ParticlePlane, ImpactSpeed: 8}
	for i := 0; i < 5; i++ {
		clock = clock.Add(time.Millisecond)
		p.OnContact(hit)
	}
	if len(*captured) != 3 {
		t.Fatalf("Expected voice cap of 3, got %d", len(*captured))
	}

	// Draining one voice frees a slot
	drain((*captured)[0])
	clock = clock.Add(time.Millisecond)
	p.OnContact(hit)
	if len(*captured) != 4 {
		t.Errorf("Expected freed voice to be reused, got %d sounds", len(*captured))
	}
	if played, dropped := p.Stats(); played != 4 || dropped != 2 {
		t.Errorf("Expected played=4 dropped=2, got played=%d dropped=%d", played, dropped)
	}
}
