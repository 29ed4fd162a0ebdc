package replay

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Player reads a recorded bundle back frame by frame
type Player struct {
	dir      string
	manifest Manifest

	frameFile *os.File
	frames    *zstd.Decoder
	header    [frameHeaderSize]byte
	body      []byte
}

// Open loads the manifest in dir and prepares the frame stream
// dir may also point directly at manifest.json
func Open(dir string) (*Player, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if manifest.Version != ManifestVersion {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedVersion, manifest.Version)
	}

	frameFile, err := os.Open(filepath.Join(dir, manifest.FramesPath))
	if err != nil {
		return nil, err
	}
	frames, err := zstd.NewReader(frameFile)
	if err != nil {
		frameFile.Close()
		return nil, err
	}

	return &Player{
		dir:       dir,
		manifest:  manifest,
		frameFile: frameFile,
		frames:    frames,
	}, nil
}

// Manifest returns the bundle manifest
func (p *Player) Manifest() Manifest {
	return p.manifest
}

// Next decodes the following frame, io.EOF after the last one
func (p *Player) Next() (Frame, error) {
	if _, err := io.ReadFull(p.frames, p.header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrTruncatedFrame
		}
		return Frame{}, err
	}

	le := binary.LittleEndian
	step := le.Uint64(p.header[0:8])
	ns := int64(le.Uint64(p.header[8:16]))
	n := le.Uint32(p.header[16:20])
	if n > maxFrameParticles {
		return Frame{}, fmt.Errorf("%w: %d particles at step %d", ErrFrameTooLarge, n, step)
	}
	count := int(n)

	size := count * particleRecordSize
	if cap(p.body) < size {
		p.body = make([]byte, size)
	}
	p.body = p.body[:size]
	if _, err := io.ReadFull(p.frames, p.body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrTruncatedFrame
		}
		return Frame{}, err
	}

	return Frame{
		Step:      step,
		Time:      time.Duration(ns).Seconds(),
		Particles: decodeParticles(p.body, count),
	}, nil
}

// Contacts decodes the whole event log
func (p *Player) Contacts() ([]ContactEvent, error) {
	file, err := os.Open(filepath.Join(p.dir, p.manifest.EventsPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(snappy.NewReader(file))
	var events []ContactEvent
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec contactRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, err
		}
		ev, err := rec.event()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Close releases the frame stream
func (p *Player) Close() error {
	p.frames.Close()
	return p.frameFile.Close()
}
