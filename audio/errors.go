package audio

import "errors"

// ErrAudioDisabled is returned by Initialize when the config turns audio off
var ErrAudioDisabled = errors.New("audio disabled by configuration")
