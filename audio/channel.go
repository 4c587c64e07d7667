package audio

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/chiptale/core"
)

// channel is the endless beep streamer behind one music channel. It
// tiles the current loop and applies the smoothed gain per sample. The
// update thread swaps loops and stores gains; only the audio output
// goroutine calls Stream.
type channel struct {
	id core.ChannelID

	mu   sync.Mutex
	loop *SynthBuffer
	pos  int

	gain   atomic.Uint64 // float64 bits, read lock-free by Stream
	starts atomic.Uint64
}

func newChannel(id core.ChannelID) *channel {
	return &channel{id: id}
}

// start begins looping the buffer from frame zero
func (c *channel) start(loop *SynthBuffer) {
	c.mu.Lock()
	c.loop = loop
	c.pos = 0
	c.mu.Unlock()
	c.starts.Add(1)
}

// stop silences the channel and releases the loop
func (c *channel) stop() {
	c.mu.Lock()
	c.loop = nil
	c.pos = 0
	c.mu.Unlock()
}

func (c *channel) playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop != nil
}

// current returns the loop being played, nil when stopped
func (c *channel) current() *SynthBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop
}

func (c *channel) setGain(g float64) {
	if g < 0 {
		g = 0
	} else if g > 1 {
		g = 1
	}
	c.gain.Store(math.Float64bits(g))
}

func (c *channel) gainValue() float64 {
	return math.Float64frombits(c.gain.Load())
}

// Stream never ends: it emits silence while stopped and wraps the loop
// seamlessly while playing, so the channel stays resident in the output
// mixer for the engine lifetime
func (c *channel) Stream(samples [][2]float64) (n int, ok bool) {
	gain := c.gainValue()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loop == nil || c.loop.Frames() == 0 {
		for i := range samples {
			samples[i][0] = 0
			samples[i][1] = 0
		}
		return len(samples), true
	}

	frames := c.loop.Frames()
	for i := range samples {
		l, r := c.loop.At(c.pos)
		samples[i][0] = float64(l) / 32767 * gain
		samples[i][1] = float64(r) / 32767 * gain
		c.pos++
		if c.pos >= frames {
			c.pos = 0
		}
	}
	return len(samples), true
}

func (c *channel) Err() error {
	return nil
}
