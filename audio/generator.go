package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/chiptale/constant"
)

// NoiseMode selects the noise register
type NoiseMode int

const (
	NoiseWhite NoiseMode = iota
	// NoisePeriodic attenuates every other sample for a textured,
	// metallic register
	NoisePeriodic
)

// durationToSamples converts seconds to a frame count at the device rate
func durationToSamples(d float64) int {
	return int(math.Round(d * constant.AudioSampleRate))
}

// checkSamples validates the target frame count of a generator call
func checkSamples(samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %d samples", ErrGeneration, samples)
	}
	return nil
}

// applyFade applies a linear fade-in/fade-out envelope in place to kill
// boundary clicks
func applyFade(buf floatBuffer, fade time.Duration) {
	n := int(fade.Seconds() * constant.AudioSampleRate)
	if n*2 > len(buf) {
		n = len(buf) / 2
	}
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		ramp := float64(i) / float64(n)
		buf[i] *= ramp
		buf[len(buf)-1-i] *= ramp
	}
}

// PulseWave synthesizes a square wave with the given duty cycle.
// duty 0.125/0.25/0.5/0.75 reproduce the classic 2A03 timbres.
func PulseWave(freq, duration, duty, volume float64) (*SynthBuffer, error) {
	samples := durationToSamples(duration)
	if err := checkSamples(samples); err != nil {
		return nil, err
	}
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / constant.AudioSampleRate
	for i := range buf {
		if phase < duty {
			buf[i] = 1.0
		} else {
			buf[i] = -1.0
		}
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	applyFade(buf, constant.ToneFade)
	return quantize(buf, volume), nil
}

// TriangleWave synthesizes a triangle wave, the hollow tone used for
// the bass channel
func TriangleWave(freq, duration, volume float64) (*SynthBuffer, error) {
	samples := durationToSamples(duration)
	if err := checkSamples(samples); err != nil {
		return nil, err
	}
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / constant.AudioSampleRate
	for i := range buf {
		buf[i] = 2*math.Abs(2*phase-1) - 1
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	applyFade(buf, constant.ToneFade)
	return quantize(buf, volume), nil
}

// Noise synthesizes uniform noise. Periodic mode attenuates every other
// sample by 0.7 to approximate the console's looped noise channel.
func Noise(duration, volume float64, mode NoiseMode) (*SynthBuffer, error) {
	samples := durationToSamples(duration)
	if err := checkSamples(samples); err != nil {
		return nil, err
	}
	buf := make(floatBuffer, samples)
	for i := range buf {
		buf[i] = rand.Float64()*2 - 1
	}
	if mode == NoisePeriodic {
		for i := 0; i < len(buf); i += 2 {
			buf[i] *= 0.7
		}
	}
	applyFade(buf, constant.NoiseFade)
	return quantize(buf, volume), nil
}
