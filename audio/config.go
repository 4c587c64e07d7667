package audio

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

// AudioConfig holds device and mix settings
type AudioConfig struct {
	Enabled      bool
	BufferSize   int // speaker buffer in frames
	MasterVolume float64
	LoopSeconds  float64
	// ChannelTrims scales the smoothed gain per channel, default 1.0
	ChannelTrims map[core.ChannelID]float64
}

// DefaultAudioConfig returns the stock configuration
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		BufferSize:   constant.AudioBufferSize,
		MasterVolume: 1.0,
		LoopSeconds:  constant.LoopDuration.Seconds(),
		ChannelTrims: map[core.ChannelID]float64{},
	}
}

// LoadAudioConfig loads configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("CHIPTALE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume as 0-100, converted to 0.0-1.0
	if volume := os.Getenv("CHIPTALE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	// Per-channel trims from JSON, e.g. {"bass":0.8,"percussion":0.6}
	if trims := os.Getenv("CHIPTALE_CHANNEL_VOLUMES"); trims != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(trims), &volumes); err == nil {
			if v, ok := volumes["bass"]; ok {
				cfg.ChannelTrims[core.ChannelBass] = v
			}
			if v, ok := volumes["melody"]; ok {
				cfg.ChannelTrims[core.ChannelMelody] = v
			}
			if v, ok := volumes["percussion"]; ok {
				cfg.ChannelTrims[core.ChannelPercussion] = v
			}
		}
	}

	if bufSize := os.Getenv("CHIPTALE_BUFFER_SIZE"); bufSize != "" {
		if val, err := strconv.Atoi(bufSize); err == nil && val > 0 {
			cfg.BufferSize = val
		}
	}

	return cfg
}

// BufferDuration returns the speaker buffer length in time
func (c *AudioConfig) BufferDuration() time.Duration {
	return time.Duration(c.BufferSize) * time.Second / constant.AudioSampleRate
}
