package audio

import (
	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

// ChannelState tracks the volume smoothing of one channel
type ChannelState struct {
	Target  float64
	Current float64
}

// Mixer smooths per-channel volumes toward a gameplay-driven target,
// producing the ducking/intensity effect. It is driven once per
// simulation frame by the update thread; no other goroutine touches it.
type Mixer struct {
	channels []*channel
	trims    [core.ChannelCount]float64
	states   [core.ChannelCount]ChannelState

	speed     float64
	enemyNear bool
}

func newMixer(channels []*channel, trims map[core.ChannelID]float64) *Mixer {
	m := &Mixer{channels: channels}
	for i := range m.trims {
		m.trims[i] = 1.0
	}
	for id, v := range trims {
		if id >= 0 && id < core.ChannelCount {
			m.trims[id] = clampUnit(v)
		}
	}
	return m
}

// TargetVolume computes the shared per-frame target from the gameplay
// signals: louder with player speed, halved while an enemy is near
func TargetVolume(speed float64, enemyNear bool) float64 {
	if speed < 0 {
		speed = 0
	}
	norm := speed / constant.SpeedFull
	if norm > 1 {
		norm = 1
	}
	v := constant.VolumeFloor + constant.VolumeSwing*norm
	if enemyNear {
		v *= constant.EnemyDucking
	}
	return clampUnit(v)
}

// Advance ingests one frame of gameplay signals, smooths every channel
// toward the shared target and applies the result as channel gain. It
// runs every frame whether or not playback state changed.
func (m *Mixer) Advance(speed float64, enemyNear bool) {
	m.speed = speed
	m.enemyNear = enemyNear

	target := TargetVolume(speed, enemyNear)
	for i := range m.states {
		st := &m.states[i]
		st.Target = target
		st.Current += (target - st.Current) * constant.VolumeSmoothing
		m.channels[i].setGain(st.Current * m.trims[i])
	}
}

// resetLevels arms a fade-in: channels restart from silence and climb
// toward the fresh-start target
func (m *Mixer) resetLevels() {
	for i := range m.states {
		m.states[i] = ChannelState{Target: constant.InitialTarget, Current: 0}
		m.channels[i].setGain(0)
	}
}

// State returns a copy of one channel's smoothing state
func (m *Mixer) State(id core.ChannelID) ChannelState {
	if id < 0 || id >= core.ChannelCount {
		return ChannelState{}
	}
	return m.states[id]
}

// Signals returns the last observed gameplay signals
func (m *Mixer) Signals() (speed float64, enemyNear bool) {
	return m.speed, m.enemyNear
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
