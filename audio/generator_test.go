package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/chiptale/constant"
)

// TestPulseWaveFrameCount verifies exact frame counts across durations
func TestPulseWaveFrameCount(t *testing.T) {
	cases := []struct {
		freq     float64
		duration float64
		duty     float64
	}{
		{440, 1.0, 0.5},
		{220, 0.5, 0.25},
		{110, 0.123, 0.125},
		{880, 0.0171, 0.75},
	}

	for _, tc := range cases {
		buf, err := PulseWave(tc.freq, tc.duration, tc.duty, 1.0)
		if err != nil {
			t.Fatalf("PulseWave(%v, %v, %v) failed: %v", tc.freq, tc.duration, tc.duty, err)
		}
		want := int(math.Round(tc.duration * constant.AudioSampleRate))
		if buf.Frames() != want {
			t.Errorf("PulseWave(%v, %v): got %d frames, want %d", tc.freq, tc.duration, buf.Frames(), want)
		}
	}
}

// TestPulseWaveStereoDuplicate verifies both channels carry the same signal
func TestPulseWaveStereoDuplicate(t *testing.T) {
	buf, err := PulseWave(440, 0.1, 0.5, 0.8)
	if err != nil {
		t.Fatalf("PulseWave failed: %v", err)
	}
	for i := 0; i < buf.Frames(); i++ {
		l, r := buf.At(i)
		if l != r {
			t.Fatalf("frame %d: L=%d R=%d, want equal", i, l, r)
		}
	}
}

// TestPulseWaveDutyCycle verifies the high fraction tracks the duty value
func TestPulseWaveDutyCycle(t *testing.T) {
	for _, duty := range []float64{0.125, 0.25, 0.5, 0.75} {
		buf, err := PulseWave(100, 1.0, duty, 1.0)
		if err != nil {
			t.Fatalf("PulseWave failed: %v", err)
		}

		high := 0
		total := 0
		for i := 0; i < buf.Frames(); i++ {
			l, _ := buf.At(i)
			if l == 0 {
				continue // fade edges
			}
			total++
			if l > 0 {
				high++
			}
		}
		got := float64(high) / float64(total)
		if math.Abs(got-duty) > 0.02 {
			t.Errorf("duty %v: high fraction %v", duty, got)
		}
	}
}

// TestTriangleWavePeriodic verifies period sample_rate/frequency within
// one sample
func TestTriangleWavePeriodic(t *testing.T) {
	// 441Hz at 22050Hz gives an exact 50-frame period
	buf, err := TriangleWave(441, 1.0, 1.0)
	if err != nil {
		t.Fatalf("TriangleWave failed: %v", err)
	}

	period := constant.AudioSampleRate / 441
	for i := 1000; i < 10000; i++ {
		a, _ := buf.At(i)
		b, _ := buf.At(i + period)
		if diff := int(a) - int(b); diff < -4 || diff > 4 {
			t.Fatalf("frame %d vs %d: %d vs %d, not periodic", i, i+period, a, b)
		}
	}
}

// TestTriangleWaveZeroMean verifies a full interior period sums to zero
func TestTriangleWaveZeroMean(t *testing.T) {
	buf, err := TriangleWave(441, 1.0, 1.0)
	if err != nil {
		t.Fatalf("TriangleWave failed: %v", err)
	}

	period := constant.AudioSampleRate / 441
	start := period * 40 // away from the fade regions
	sum := 0
	for i := start; i < start+period; i++ {
		l, _ := buf.At(i)
		sum += int(l)
	}
	if sum < -64 || sum > 64 {
		t.Errorf("period sum %d, want ~0", sum)
	}
}

// TestTriangleWaveRange verifies samples stay inside the int16 range at
// full volume
func TestTriangleWaveRange(t *testing.T) {
	buf, err := TriangleWave(220, 0.5, 1.0)
	if err != nil {
		t.Fatalf("TriangleWave failed: %v", err)
	}
	for i := 0; i < buf.Frames(); i++ {
		l, _ := buf.At(i)
		if l < -32767 || l > 32767 {
			t.Fatalf("frame %d out of range: %d", i, l)
		}
	}
}

// TestGeneratorsRejectDegenerateDuration verifies GenerationError for
// zero and negative durations
func TestGeneratorsRejectDegenerateDuration(t *testing.T) {
	for _, duration := range []float64{0, -1, -0.0001} {
		if _, err := PulseWave(440, duration, 0.5, 1.0); !errors.Is(err, ErrGeneration) {
			t.Errorf("PulseWave(%v): got %v, want ErrGeneration", duration, err)
		}
		if _, err := TriangleWave(440, duration, 1.0); !errors.Is(err, ErrGeneration) {
			t.Errorf("TriangleWave(%v): got %v, want ErrGeneration", duration, err)
		}
		if _, err := Noise(duration, 1.0, NoiseWhite); !errors.Is(err, ErrGeneration) {
			t.Errorf("Noise(%v): got %v, want ErrGeneration", duration, err)
		}
	}
}

// TestNoiseFrameCount verifies noise honors the same frame contract
func TestNoiseFrameCount(t *testing.T) {
	buf, err := Noise(0.25, 1.0, NoiseWhite)
	if err != nil {
		t.Fatalf("Noise failed: %v", err)
	}
	want := int(math.Round(0.25 * constant.AudioSampleRate))
	if buf.Frames() != want {
		t.Errorf("got %d frames, want %d", buf.Frames(), want)
	}
}

// TestNoisePeriodicAttenuation verifies the 0.7 attenuation on every
// other sample shows up statistically
func TestNoisePeriodicAttenuation(t *testing.T) {
	buf, err := Noise(1.0, 1.0, NoisePeriodic)
	if err != nil {
		t.Fatalf("Noise failed: %v", err)
	}

	// Skip fade regions
	fade := int(constant.NoiseFade.Seconds()*constant.AudioSampleRate) + 1
	var evenSum, oddSum float64
	var evenN, oddN int
	for i := fade; i < buf.Frames()-fade; i++ {
		l, _ := buf.At(i)
		if i%2 == 0 {
			evenSum += math.Abs(float64(l))
			evenN++
		} else {
			oddSum += math.Abs(float64(l))
			oddN++
		}
	}

	ratio := (evenSum / float64(evenN)) / (oddSum / float64(oddN))
	if math.Abs(ratio-0.7) > 0.05 {
		t.Errorf("even/odd mean magnitude ratio %v, want ~0.7", ratio)
	}
}

// TestFadeStartsAndEndsSilent verifies the click-killing envelope zeroes
// the buffer edges
func TestFadeStartsAndEndsSilent(t *testing.T) {
	buf, err := PulseWave(440, 0.5, 0.5, 1.0)
	if err != nil {
		t.Fatalf("PulseWave failed: %v", err)
	}
	if l, _ := buf.At(0); l != 0 {
		t.Errorf("first frame %d, want 0", l)
	}
	if l, _ := buf.At(buf.Frames() - 1); l != 0 {
		t.Errorf("last frame %d, want 0", l)
	}
}

// TestQuantizeVolumeScales verifies the volume scalar reaches the PCM
// output
func TestQuantizeVolumeScales(t *testing.T) {
	loud, err := TriangleWave(220, 0.2, 1.0)
	if err != nil {
		t.Fatalf("TriangleWave failed: %v", err)
	}
	quiet, err := TriangleWave(220, 0.2, 0.5)
	if err != nil {
		t.Fatalf("TriangleWave failed: %v", err)
	}

	peak := func(b *SynthBuffer) int {
		max := 0
		for i := 0; i < b.Frames(); i++ {
			l, _ := b.At(i)
			if v := int(l); v > max {
				max = v
			}
		}
		return max
	}

	loudPeak, quietPeak := peak(loud), peak(quiet)
	if loudPeak < 32000 {
		t.Errorf("full-volume peak %d, want near 32767", loudPeak)
	}
	if quietPeak > loudPeak/2+16 || quietPeak < loudPeak/2-16 {
		t.Errorf("half-volume peak %d, want ~%d", quietPeak, loudPeak/2)
	}
}
