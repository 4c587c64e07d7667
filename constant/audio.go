package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 22050
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes

	// AudioBufferSize is the speaker buffer in frames; 512 at 22.05kHz
	// keeps latency around 23ms
	AudioBufferSize = 512
)

// Loop Composition
const (
	// LoopDuration is the nominal length of every channel loop
	LoopDuration = 4 * time.Second

	// PercussionBeats is the fixed drum grid length
	PercussionBeats = 16

	// Fade lengths for the click-killing linear envelope
	ToneFade  = 5 * time.Millisecond
	NoiseFade = 3 * time.Millisecond
)

// Channel mix levels applied at synthesis time
const (
	BassLevel   = 0.5
	MelodyLevel = 0.4
	KickLevel   = 0.6
	SnareLevel  = 0.5
	HatLevel    = 0.3
)

// Dynamic Mix
// target = VolumeFloor + VolumeSwing*min(1, speed/SpeedFull), halved
// while an enemy is near, then smoothed by VolumeSmoothing per frame
const (
	VolumeFloor     = 0.3
	VolumeSwing     = 0.4
	SpeedFull       = 5.0
	EnemyDucking    = 0.5
	VolumeSmoothing = 0.1

	// InitialTarget is the per-channel target right after a theme starts;
	// channels fade in from silence toward it
	InitialTarget = 0.5
)
