package audio

import (
	"fmt"

	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

// LoopSet holds the three channel loops for one theme. All three are
// exactly the same frame count so they stay phase-locked while looping.
type LoopSet struct {
	Bass       *SynthBuffer
	Melody     *SynthBuffer
	Percussion *SynthBuffer
}

// Channel returns the buffer for a channel
func (ls *LoopSet) Channel(id core.ChannelID) *SynthBuffer {
	switch id {
	case core.ChannelBass:
		return ls.Bass
	case core.ChannelMelody:
		return ls.Melody
	case core.ChannelPercussion:
		return ls.Percussion
	}
	return nil
}

// ComposeLoop builds a seamlessly looping LoopSet for the theme: one
// beat-duration tone per sequence entry, pattern cycles tiled to cover
// the target duration and truncated to the exact frame count.
func ComposeLoop(theme core.Theme, duration float64) (*LoopSet, error) {
	target := durationToSamples(duration)
	if target <= 0 {
		return nil, fmt.Errorf("%w: target of %d frames for %gs loop", ErrComposition, target, duration)
	}

	p := Params(theme)
	beatDur := 60.0 / p.TempoBPM
	beatFrames := durationToSamples(beatDur)
	if beatFrames <= 0 {
		return nil, fmt.Errorf("%w: zero-length beat at %g BPM", ErrComposition, p.TempoBPM)
	}

	bass, err := composeTonal(p.BassFreqs, beatFrames, target, func(freq float64) (*SynthBuffer, error) {
		return TriangleWave(freq, beatDur, constant.BassLevel)
	})
	if err != nil {
		return nil, err
	}

	melody, err := composeTonal(p.MelodyNotes, beatFrames, target, func(freq float64) (*SynthBuffer, error) {
		return PulseWave(freq, beatDur, p.PulseDuty, constant.MelodyLevel)
	})
	if err != nil {
		return nil, err
	}

	percussion, err := composePercussion(beatDur, beatFrames, target)
	if err != nil {
		return nil, err
	}

	// Equal lengths are the looping invariant; a mismatch here is a bug
	// in the tiling above, not a recoverable condition
	if bass.Frames() != target || melody.Frames() != target || percussion.Frames() != target {
		return nil, fmt.Errorf("%w: channel lengths %d/%d/%d, want %d",
			ErrComposition, bass.Frames(), melody.Frames(), percussion.Frames(), target)
	}

	return &LoopSet{Bass: bass, Melody: melody, Percussion: percussion}, nil
}

// composeTonal renders one pattern cycle beat by beat, substituting
// silence for rest entries, then tiles it to the target frame count
func composeTonal(freqs []float64, beatFrames, target int, synth func(freq float64) (*SynthBuffer, error)) (*SynthBuffer, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: empty note sequence", ErrComposition)
	}
	parts := make([]*SynthBuffer, 0, len(freqs))
	for _, freq := range freqs {
		if freq == 0 {
			parts = append(parts, silence(beatFrames))
			continue
		}
		tone, err := synth(freq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrComposition, err)
		}
		parts = append(parts, tone)
	}
	return concatBuffers(parts...).tile(target), nil
}

// composePercussion lays the fixed 16-beat drum grid: kick on quarter
// notes, snare on beat 6 of each half, hi-hat on the remaining odd beats
func composePercussion(beatDur float64, beatFrames, target int) (*SynthBuffer, error) {
	parts := make([]*SynthBuffer, 0, constant.PercussionBeats)
	for i := 0; i < constant.PercussionBeats; i++ {
		var (
			hit *SynthBuffer
			err error
		)
		switch {
		case i%4 == 0:
			hit, err = Drum(beatDur, core.DrumKick, constant.KickLevel)
		case i%8 == 6:
			hit, err = Drum(beatDur, core.DrumSnare, constant.SnareLevel)
		case i%2 == 1:
			hit, err = Drum(beatDur, core.DrumHat, constant.HatLevel)
		default:
			hit = silence(beatFrames)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrComposition, err)
		}
		parts = append(parts, hit)
	}
	return concatBuffers(parts...).tile(target), nil
}
