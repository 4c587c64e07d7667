package audio

import (
	"math"
	"testing"

	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

func testChannels() []*channel {
	chans := make([]*channel, 0, core.ChannelCount)
	for id := core.ChannelID(0); id < core.ChannelCount; id++ {
		chans = append(chans, newChannel(id))
	}
	return chans
}

// TestTargetVolume verifies the gameplay-to-volume mapping at its
// defining points
func TestTargetVolume(t *testing.T) {
	cases := []struct {
		speed     float64
		enemyNear bool
		want      float64
	}{
		{0, false, 0.3},
		{2.5, false, 0.5},
		{5, false, 0.7},
		{10, false, 0.7}, // speed saturates at SpeedFull
		{5, true, 0.35},
		{0, true, 0.15},
		{-3, false, 0.3}, // negative speed treated as rest
	}

	for _, tc := range cases {
		got := TargetVolume(tc.speed, tc.enemyNear)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("TargetVolume(%v, %v) = %v, want %v", tc.speed, tc.enemyNear, got, tc.want)
		}
	}
}

// TestMixerConvergence verifies the exponential smoothing: after N
// frames from silence, current = target * (1 - 0.9^N)
func TestMixerConvergence(t *testing.T) {
	m := newMixer(testChannels(), nil)
	m.resetLevels()

	const frames = 60
	for i := 0; i < frames; i++ {
		m.Advance(constant.SpeedFull, false)
	}

	want := 0.7 * (1 - math.Pow(1-constant.VolumeSmoothing, frames))
	for id := core.ChannelID(0); id < core.ChannelCount; id++ {
		st := m.State(id)
		if math.Abs(st.Current-want) > 1e-9 {
			t.Errorf("channel %s: current %v, want %v", id, st.Current, want)
		}
		if st.Target != 0.7 {
			t.Errorf("channel %s: target %v, want 0.7", id, st.Target)
		}
	}
}

// TestMixerNeverOvershoots verifies current approaches the target
// monotonically from below and stays bounded by it
func TestMixerNeverOvershoots(t *testing.T) {
	m := newMixer(testChannels(), nil)
	m.resetLevels()

	prev := 0.0
	for i := 0; i < 500; i++ {
		m.Advance(constant.SpeedFull, false)
		cur := m.State(core.ChannelBass).Current
		if cur < prev {
			t.Fatalf("frame %d: current fell from %v to %v", i, prev, cur)
		}
		if cur > 0.7+1e-12 {
			t.Fatalf("frame %d: current %v overshot target 0.7", i, cur)
		}
		prev = cur
	}
	if prev < 0.699 {
		t.Errorf("after 500 frames current %v, want ~0.7", prev)
	}
}

// TestMixerTracksDucking verifies the target drops immediately when an
// enemy appears while current decays gradually
func TestMixerTracksDucking(t *testing.T) {
	m := newMixer(testChannels(), nil)
	m.resetLevels()

	for i := 0; i < 200; i++ {
		m.Advance(constant.SpeedFull, false)
	}
	before := m.State(core.ChannelBass).Current

	m.Advance(constant.SpeedFull, true)
	st := m.State(core.ChannelBass)
	if st.Target != 0.35 {
		t.Errorf("target %v, want 0.35", st.Target)
	}
	if st.Current >= before {
		t.Errorf("current %v did not fall from %v", st.Current, before)
	}
	if st.Current < 0.35 {
		t.Errorf("current %v fell below the new target in one frame", st.Current)
	}
}

// TestMixerAppliesTrims verifies the per-channel trim scales the gain
// pushed to the channel but not the smoothing state
func TestMixerAppliesTrims(t *testing.T) {
	chans := testChannels()
	m := newMixer(chans, map[core.ChannelID]float64{
		core.ChannelBass: 0.5,
	})
	m.resetLevels()

	for i := 0; i < 100; i++ {
		m.Advance(constant.SpeedFull, false)
	}

	bass := m.State(core.ChannelBass)
	melody := m.State(core.ChannelMelody)
	if math.Abs(bass.Current-melody.Current) > 1e-12 {
		t.Errorf("trim leaked into smoothing state: bass %v, melody %v", bass.Current, melody.Current)
	}

	wantBass := bass.Current * 0.5
	if got := chans[core.ChannelBass].gainValue(); math.Abs(got-wantBass) > 1e-12 {
		t.Errorf("bass gain %v, want %v", got, wantBass)
	}
	if got := chans[core.ChannelMelody].gainValue(); math.Abs(got-melody.Current) > 1e-12 {
		t.Errorf("melody gain %v, want %v", got, melody.Current)
	}
}

// TestMixerResetLevels verifies a theme start rearms the fade-in
func TestMixerResetLevels(t *testing.T) {
	chans := testChannels()
	m := newMixer(chans, nil)
	for i := 0; i < 50; i++ {
		m.Advance(constant.SpeedFull, false)
	}

	m.resetLevels()
	for id := core.ChannelID(0); id < core.ChannelCount; id++ {
		st := m.State(id)
		if st.Current != 0 {
			t.Errorf("channel %s: current %v, want 0", id, st.Current)
		}
		if st.Target != constant.InitialTarget {
			t.Errorf("channel %s: target %v, want %v", id, st.Target, constant.InitialTarget)
		}
		if g := chans[id].gainValue(); g != 0 {
			t.Errorf("channel %s: gain %v, want 0", id, g)
		}
	}
}

// TestMixerSignals verifies the last ingested signals are observable
func TestMixerSignals(t *testing.T) {
	m := newMixer(testChannels(), nil)
	m.Advance(3.5, true)
	speed, near := m.Signals()
	if speed != 3.5 || !near {
		t.Errorf("Signals() = %v, %v, want 3.5, true", speed, near)
	}
}

// TestMixerIgnoresBadTrimKeys verifies out-of-range trim keys are
// dropped instead of panicking
func TestMixerIgnoresBadTrimKeys(t *testing.T) {
	m := newMixer(testChannels(), map[core.ChannelID]float64{
		core.ChannelID(99): 0.1,
		core.ChannelID(-1): 0.1,
	})
	m.Advance(0, false)
	if st := m.State(core.ChannelID(99)); st != (ChannelState{}) {
		t.Errorf("out-of-range state %+v, want zero value", st)
	}
}
