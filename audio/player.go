package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/particle-sandbox/physics"
)

// ImpactPlayer turns collision contacts into short sounds
// Safe for concurrent use; OnContact never blocks on audio output
type ImpactPlayer struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool

	// sink receives ready-to-play streamers; set by Initialize
	sink func(beep.Streamer)
	now  func() time.Time

	last    time.Time
	voices  []*beep.Ctrl
	played  int
	dropped int
}

// NewImpactPlayer creates a player; nil cfg uses DefaultConfig
func NewImpactPlayer(cfg *Config) *ImpactPlayer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ImpactPlayer{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker and starts the mixer
// A disabled config initializes nothing and returns ErrAudioDisabled
func (p *ImpactPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if !p.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(bufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)

	p.sink = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.initialized = true
	return nil
}

// Cleanup silences everything and closes the speaker
func (p *ImpactPlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	for _, v := range p.voices {
		v.Paused = true
	}
	p.voices = nil

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	p.sink = nil
	p.initialized = false
}

// OnContact plays an impact for contacts above the threshold, subject to the rate limit
func (p *ImpactPlayer) OnContact(c physics.Contact) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.sink == nil {
		return
	}
	if c.ImpactSpeed <= p.cfg.ImpactThreshold {
		return
	}

	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.cfg.MinGap {
		p.dropped++
		return
	}

	p.pruneVoices()
	if p.cfg.MaxVoices > 0 && len(p.voices) >= p.cfg.MaxVoices {
		p.dropped++
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVoice(ImpactSound(p.cfg, c.Kind, c.ImpactSpeed))}
	p.voices = append(p.voices, ctrl)
	p.last = now
	p.played++
	p.sink(ctrl)
}

// pruneVoices forgets voices the mixer has already drained
func (p *ImpactPlayer) pruneVoices() {
	live := p.voices[:0]
	for _, v := range p.voices {
		if !drained(v) {
			live = append(live, v)
		}
	}
	p.voices = live
}

// Stats reports how many impacts were played and dropped by the rate limit
func (p *ImpactPlayer) Stats() (played, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played, p.dropped
}
