package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/simulation"
)

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

const stampLayout = "20060102T150405Z"

// Recorder writes simulation frames to a zstd stream and contacts to a snappy JSONL log
// It is a simulation.ContactListener; contacts are tagged with the step after the last recorded frame
// Steps and times written to the bundle are offset by the run base so they keep increasing across Rebase
type Recorder struct {
	mu  sync.Mutex
	dir string

	frameFile   *os.File
	frameStream *zstd.Encoder
	eventFile   *os.File
	eventStream *snappy.Writer

	buf      []byte
	step     uint64
	lastTime float64
	stepBase uint64
	timeBase float64
	frames   int
	contacts int
	err      error
	closed   bool
}

var _ simulation.ContactListener = (*Recorder)(nil)

// NewRecorder creates <root>/<name>-<UTC stamp>/ with the manifest and both compressed sinks
func NewRecorder(root, name string, clock func() time.Time) (*Recorder, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, ErrRootRequired
	}
	if clock == nil {
		clock = time.Now
	}

	cleaned := nameCleaner.ReplaceAllString(name, "")
	if cleaned == "" {
		cleaned = "scene"
	}
	created := clock().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", cleaned, created.Format(stampLayout)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, Manifest{}, err
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		Name:       cleaned,
		CreatedAt:  created.Format(time.RFC3339Nano),
		FramesPath: framesFile,
		EventsPath: eventsFile,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		return nil, Manifest{}, err
	}

	frameFile, err := os.Create(filepath.Join(dir, framesFile))
	if err != nil {
		return nil, Manifest{}, err
	}
	frameStream, err := zstd.NewWriter(frameFile, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		frameFile.Close()
		return nil, Manifest{}, err
	}
	eventFile, err := os.Create(filepath.Join(dir, eventsFile))
	if err != nil {
		frameStream.Close()
		frameFile.Close()
		return nil, Manifest{}, err
	}

	return &Recorder{
		dir:         dir,
		frameFile:   frameFile,
		frameStream: frameStream,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
	}, manifest, nil
}

// Directory returns the bundle directory
func (r *Recorder) Directory() string {
	return r.dir
}

// AppendFrame encodes one snapshot into the frame stream
// step and simTime are relative to the current run
func (r *Recorder) AppendFrame(step uint64, simTime float64, snap simulation.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}
	step += r.stepBase
	simTime += r.timeBase
	r.step = step
	r.lastTime = simTime
	r.buf = encodeFrame(r.buf[:0], step, simTime, snap)
	if _, err := r.frameStream.Write(r.buf); err != nil {
		r.keep(err)
		return err
	}
	r.frames++
	return nil
}

// AppendContact writes one JSON line to the event log
// step is relative to the current run
func (r *Recorder) AppendContact(step uint64, c physics.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendContactLocked(step+r.stepBase, c)
}

// Rebase starts a new run after the last recorded frame
// Call it when the simulation is rebuilt and its step counter and clock restart from zero
func (r *Recorder) Rebase() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stepBase = r.step
	r.timeBase = r.lastTime
}

func (r *Recorder) appendContactLocked(step uint64, c physics.Contact) error {
	if r.closed {
		return ErrRecorderClosed
	}
	line, err := json.Marshal(toRecord(step, c))
	if err != nil {
		return err
	}
	line = append(line, '\n')
	if _, err := r.eventStream.Write(line); err != nil {
		r.keep(err)
		return err
	}
	r.contacts++
	return nil
}

// OnContact records c against the most recent frame step
// Write failures are kept and reported by Err and Close
func (r *Recorder) OnContact(c physics.Contact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	_ = r.appendContactLocked(r.step+1, c)
}

// Counts reports how many frames and contacts were written
func (r *Recorder) Counts() (frames, contacts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames, r.contacts
}

// Err returns the first write failure seen so far
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) keep(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Close flushes and closes every sink; the first error wins
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.err
	}
	r.closed = true

	firstErr := r.err
	for _, fn := range []func() error{
		r.frameStream.Close,
		r.frameFile.Close,
		r.eventStream.Close,
		r.eventFile.Close,
	} {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.err = firstErr
	return firstErr
}
