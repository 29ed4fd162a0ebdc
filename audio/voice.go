package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/particle-sandbox/parameter"
)

const bufferDuration = parameter.AudioBufferDuration

// voice reports when its wrapped streamer runs dry
// done is written on the speaker goroutine and read under the player lock
type voice struct {
	beep.Streamer
	done atomic.Bool
}

func newVoice(s beep.Streamer) *voice {
	return &voice{Streamer: s}
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	n, ok := v.Streamer.Stream(samples)
	if !ok {
		v.done.Store(true)
	}
	return n, ok
}

// drained reports whether the voice behind ctrl has finished
func drained(ctrl *beep.Ctrl) bool {
	if v, ok := ctrl.Streamer.(*voice); ok {
		return v.done.Load()
	}
	return true
}
