package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/physics"
)

// Wave is the shape of one partial
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

func (w Wave) at(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Partial is one periodic component of a Tone
type Partial struct {
	Freq float64
	Amp  float64
	Wave Wave
}

// Tone is a short additive sound: periodic partials plus white noise under one linear attack/release
// Amplitudes are summed as given; keep the total at or below 1 to avoid clipping
type Tone struct {
	Partials []Partial
	Noise    float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
}

// clickTone is the bright particle-on-particle tick: a sine with a quiet square an octave up
func clickTone(pitch float64) Tone {
	f := parameter.ClickBaseFreq * pitch
	return Tone{
		Partials: []Partial{
			{Freq: f, Amp: 0.8, Wave: WaveSine},
			{Freq: 2 * f, Amp: 0.1, Wave: WaveSquare},
		},
		Duration: parameter.ClickSoundDuration,
		Attack:   parameter.ClickSoundAttack,
		Release:  parameter.ClickSoundRelease,
	}
}

// thudTone is the dull plane hit: a low sine roughened with noise
func thudTone(pitch float64) Tone {
	return Tone{
		Partials: []Partial{{Freq: parameter.ThudBaseFreq * pitch, Amp: 0.8, Wave: WaveSine}},
		Noise:    0.2,
		Duration: parameter.ThudSoundDuration,
		Attack:   parameter.ThudSoundAttack,
		Release:  parameter.ThudSoundRelease,
	}
}

// Streamer renders the tone at rate; rng feeds the noise and may be nil
func (t Tone) Streamer(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	total := rate.N(t.Duration)
	att := min(rate.N(t.Attack), total)
	rel := rate.N(t.Release)
	if t.Noise > 0 && rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &toneStreamer{
		partials:     t.Partials,
		phases:       make([]float64, len(t.Partials)),
		step:         1 / float64(rate),
		noise:        t.Noise,
		rng:          rng,
		total:        total,
		attack:       att,
		release:      rel,
		releaseStart: att + max(total-att-rel, 0),
	}
}

type toneStreamer struct {
	partials []Partial
	phases   []float64
	step     float64
	noise    float64
	rng      *rand.Rand

	pos          int
	total        int
	attack       int
	release      int
	releaseStart int
}

func (ts *toneStreamer) gain() float64 {
	if ts.pos < ts.attack {
		return float64(ts.pos) / float64(ts.attack)
	}
	if ts.release > 0 && ts.pos >= ts.releaseStart {
		return float64(ts.total-ts.pos) / float64(ts.release)
	}
	return 1
}

func (ts *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if ts.pos >= ts.total {
			return i, i > 0
		}

		var v float64
		for j, p := range ts.partials {
			v += p.Amp * p.Wave.at(ts.phases[j])
			ts.phases[j] += p.Freq * ts.step
			ts.phases[j] -= math.Floor(ts.phases[j])
		}
		if ts.noise > 0 {
			v += ts.noise * (ts.rng.Float64()*2 - 1)
		}
		v *= ts.gain()

		samples[i][0] = v
		samples[i][1] = v
		ts.pos++
	}
	return len(samples), true
}

func (ts *toneStreamer) Err() error { return nil }

// newVolume maps a linear gain onto effects.Volume
// math.Log2(0) is -Inf, so zero gain is handled as silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ImpactGain maps approach speed to a linear gain in [0,1]
func ImpactGain(cfg *Config, speed float64) float64 {
	if speed <= cfg.ImpactThreshold {
		return 0
	}
	span := parameter.ImpactFullSpeed - cfg.ImpactThreshold
	if span <= 0 {
		return 1
	}
	return clampUnit((speed - cfg.ImpactThreshold) / span)
}

// ImpactSound builds the streamer for one contact
// Particle pairs click, plane hits thud; harder hits are louder and slightly higher
func ImpactSound(cfg *Config, kind physics.ContactKind, speed float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	gain := ImpactGain(cfg, speed)
	pitch := 1.0 + 0.5*gain

	tone := clickTone(pitch)
	if kind == physics.ParticlePlane {
		tone = thudTone(pitch)
	}
	shaped := tone.Streamer(rate, nil)

	kindVol, ok := cfg.KindVolumes[kind]
	if !ok {
		kindVol = 1
	}
	return newVolume(shaped, gain*kindVol*cfg.MasterVolume)
}
