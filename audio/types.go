package audio

import (
	"errors"
)

// Sentinel errors
var (
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	ErrGeneration        = errors.New("waveform generation failed")
	ErrComposition       = errors.New("loop composition failed")
	ErrPlayback          = errors.New("playback rejected")
)
