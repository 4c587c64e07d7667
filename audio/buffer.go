package audio

import (
	"fmt"

	"github.com/gopxl/beep"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// SynthBuffer is a finite stereo sound: interleaved L/R int16 frames at
// the device sample rate. Built once, read-only afterwards; longer
// buffers are produced by tiling, never by mutation.
type SynthBuffer struct {
	pcm []int16 // len = 2 * frame count
}

// quantize scales mono samples by volume, clamps to the int16 range and
// duplicates the signal to both stereo channels
func quantize(mono floatBuffer, volume float64) *SynthBuffer {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	pcm := make([]int16, len(mono)*2)
	for i, v := range mono {
		v *= volume
		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}
		s := int16(v * 32767)
		pcm[i*2] = s
		pcm[i*2+1] = s
	}
	return &SynthBuffer{pcm: pcm}
}

// FromMono builds a SynthBuffer from mono samples in [-1,1], applying
// the same volume/clamp/stereo-duplicate step the generators use
func FromMono(mono []float64, volume float64) *SynthBuffer {
	return quantize(floatBuffer(mono), volume)
}

// silence returns an all-zero buffer of the given frame count
func silence(frames int) *SynthBuffer {
	return &SynthBuffer{pcm: make([]int16, frames*2)}
}

// Frames returns the number of stereo sample pairs
func (b *SynthBuffer) Frames() int {
	return len(b.pcm) / 2
}

// At returns the left and right samples of frame i
func (b *SynthBuffer) At(i int) (int16, int16) {
	return b.pcm[i*2], b.pcm[i*2+1]
}

// concatBuffers joins parts into a single buffer
func concatBuffers(parts ...*SynthBuffer) *SynthBuffer {
	total := 0
	for _, p := range parts {
		total += len(p.pcm)
	}
	pcm := make([]int16, 0, total)
	for _, p := range parts {
		pcm = append(pcm, p.pcm...)
	}
	return &SynthBuffer{pcm: pcm}
}

// tile repeats b until it covers at least frames, then truncates to
// exactly frames
func (b *SynthBuffer) tile(frames int) *SynthBuffer {
	if b.Frames() == 0 || frames <= 0 {
		return silence(frames)
	}
	pcm := make([]int16, 0, frames*2)
	for len(pcm) < frames*2 {
		pcm = append(pcm, b.pcm...)
	}
	return &SynthBuffer{pcm: pcm[:frames*2]}
}

// Streamer returns a seekable beep streamer over the whole buffer
func (b *SynthBuffer) Streamer() beep.StreamSeeker {
	return &bufferStreamer{buf: b}
}

// bufferStreamer adapts a SynthBuffer to beep's streaming model
type bufferStreamer struct {
	buf *SynthBuffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.buf.Frames() {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.buf.Frames() {
			return i, true
		}
		l, r := s.buf.At(s.pos)
		samples[i][0] = float64(l) / 32767
		samples[i][1] = float64(r) / 32767
		s.pos++
	}
	return len(samples), true
}

func (s *bufferStreamer) Err() error {
	return nil
}

func (s *bufferStreamer) Len() int {
	return s.buf.Frames()
}

func (s *bufferStreamer) Position() int {
	return s.pos
}

func (s *bufferStreamer) Seek(p int) error {
	if p < 0 || p > s.buf.Frames() {
		return fmt.Errorf("%w: seek to %d of %d", ErrPlayback, p, s.buf.Frames())
	}
	s.pos = p
	return nil
}
