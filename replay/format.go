package replay

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/simulation"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

const (
	ManifestVersion = 1

	manifestFile = "manifest.json"
	framesFile   = "frames.bin.zst"
	eventsFile   = "events.jsonl.sz"

	// step u64, sim time ns i64, particle count u32
	frameHeaderSize = 8 + 8 + 4
	// x, y, z, radius f64, r, g, b u8
	particleRecordSize = 4*8 + 3
	// upper bound on particles per frame accepted when reading
	maxFrameParticles = 1 << 20
)

// Manifest describes the bundle layout so players can locate the streams
type Manifest struct {
	Version    int    `json:"version"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
	FramesPath string `json:"frames_path"`
	EventsPath string `json:"events_path"`
}

// FrameParticle is the recorded state of one particle
type FrameParticle struct {
	Position vmath.Vec3F
	Radius   float64
	Color    vmath.Vec3F
}

// Frame is one recorded simulation step
type Frame struct {
	Step      uint64
	Time      float64
	Particles []FrameParticle
}

// Snapshot converts the frame into the shape renderers and the stream hub consume
// Springs and pin state are not recorded
func (f Frame) Snapshot() simulation.Snapshot {
	snap := simulation.Snapshot{
		Step:      f.Step,
		Time:      f.Time,
		Particles: make([]simulation.ParticleState, len(f.Particles)),
	}
	for i, p := range f.Particles {
		snap.Particles[i] = simulation.ParticleState{Position: p.Position, Radius: p.Radius, Color: p.Color}
	}
	return snap
}

// ContactEvent is one contact line of the event log
type ContactEvent struct {
	Step    uint64
	Contact physics.Contact
}

// contactRecord is the JSON shape of a ContactEvent
type contactRecord struct {
	Step   uint64     `json:"step"`
	Kind   string     `json:"kind"`
	A      int        `json:"a"`
	B      int        `json:"b"`
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
	Depth  float64    `json:"depth"`
	Impact float64    `json:"impact"`
}

func toRecord(step uint64, c physics.Contact) contactRecord {
	return contactRecord{
		Step:   step,
		Kind:   c.Kind.String(),
		A:      c.A,
		B:      c.B,
		Point:  [3]float64{c.Point.X, c.Point.Y, c.Point.Z},
		Normal: [3]float64{c.Normal.X, c.Normal.Y, c.Normal.Z},
		Depth:  c.Depth,
		Impact: c.ImpactSpeed,
	}
}

func (r contactRecord) event() (ContactEvent, error) {
	var kind physics.ContactKind
	switch r.Kind {
	case physics.ParticleParticle.String():
		kind = physics.ParticleParticle
	case physics.ParticlePlane.String():
		kind = physics.ParticlePlane
	default:
		return ContactEvent{}, fmt.Errorf("unknown contact kind %q", r.Kind)
	}
	return ContactEvent{
		Step: r.Step,
		Contact: physics.Contact{
			Kind:        kind,
			A:           r.A,
			B:           r.B,
			Point:       vmath.V3F(r.Point[0], r.Point[1], r.Point[2]),
			Normal:      vmath.V3F(r.Normal[0], r.Normal[1], r.Normal[2]),
			Depth:       r.Depth,
			ImpactSpeed: r.Impact,
		},
	}, nil
}

// encodeFrame appends the binary frame for snap to buf
func encodeFrame(buf []byte, step uint64, simTime float64, snap simulation.Snapshot) []byte {
	le := binary.LittleEndian
	buf = le.AppendUint64(buf, step)
	buf = le.AppendUint64(buf, uint64(int64(simTime*float64(time.Second))))
	buf = le.AppendUint32(buf, uint32(len(snap.Particles)))
	for _, p := range snap.Particles {
		buf = le.AppendUint64(buf, math.Float64bits(p.Position.X))
		buf = le.AppendUint64(buf, math.Float64bits(p.Position.Y))
		buf = le.AppendUint64(buf, math.Float64bits(p.Position.Z))
		buf = le.AppendUint64(buf, math.Float64bits(p.Radius))
		buf = append(buf, colorByte(p.Color.X), colorByte(p.Color.Y), colorByte(p.Color.Z))
	}
	return buf
}

// decodeParticles reads count particle records from data
func decodeParticles(data []byte, count int) []FrameParticle {
	le := binary.LittleEndian
	out := make([]FrameParticle, count)
	for i := range out {
		rec := data[i*particleRecordSize:]
		out[i] = FrameParticle{
			Position: vmath.V3F(
				math.Float64frombits(le.Uint64(rec[0:8])),
				math.Float64frombits(le.Uint64(rec[8:16])),
				math.Float64frombits(le.Uint64(rec[16:24])),
			),
			Radius: math.Float64frombits(le.Uint64(rec[24:32])),
			Color:  vmath.V3F(float64(rec[32])/255, float64(rec[33])/255, float64(rec[34])/255),
		}
	}
	return out
}

func colorByte(c float64) byte {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return byte(math.Round(c * 255))
}
