package audio

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

// Drum synthesizes one percussion hit
func Drum(duration float64, kind core.DrumKind, volume float64) (*SynthBuffer, error) {
	switch kind {
	case core.DrumKick:
		return kick(duration, volume)
	case core.DrumSnare:
		return snare(duration, volume)
	case core.DrumHat:
		// Hi-hat is a plain noise burst at reduced level
		return Noise(duration, volume*0.7, NoiseWhite)
	default:
		return nil, fmt.Errorf("%w: unknown drum kind %d", ErrGeneration, kind)
	}
}

// kick layers a sine whose pitch and amplitude both decay exponentially
// from 120Hz with a short noise slap
func kick(duration, volume float64) (*SynthBuffer, error) {
	samples := durationToSamples(duration)
	if err := checkSamples(samples); err != nil {
		return nil, err
	}
	buf := make(floatBuffer, samples)
	for i := range buf {
		t := float64(i) / constant.AudioSampleRate
		pitch := 120 * math.Exp(-20*t)
		tone := math.Sin(2*math.Pi*pitch*t) * math.Exp(-20*t)
		slap := (rand.Float64()*0.6 - 0.3) * math.Exp(-30*t)
		buf[i] = tone + slap
	}
	return quantize(buf, volume), nil
}

// snare mixes 60% decaying noise with a 40% 180Hz body tone
func snare(duration, volume float64) (*SynthBuffer, error) {
	samples := durationToSamples(duration)
	if err := checkSamples(samples); err != nil {
		return nil, err
	}
	buf := make(floatBuffer, samples)
	for i := range buf {
		t := float64(i) / constant.AudioSampleRate
		noise := (rand.Float64()*2 - 1) * math.Exp(-20*t)
		tone := math.Sin(2*math.Pi*180*t) * math.Exp(-15*t)
		buf[i] = 0.6*noise + 0.4*tone
	}
	return quantize(buf, volume), nil
}
