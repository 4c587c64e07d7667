package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/chiptale/constant"
	"github.com/lixenwraith/chiptale/core"
)

// Engine is the music front end: device lifecycle, loop cache, playback
// control and the dynamic mixer. One instance per process; created at
// startup, advanced every frame, closed at exit.
//
// Failure policy: any device, generation or playback failure disables
// the engine for the rest of the process. Disabled calls are no-ops, so
// the game loop never has to care whether audio works.
type Engine struct {
	config *AudioConfig
	cache  *loopCache
	mixer  *Mixer

	channels [core.ChannelCount]*channel
	out      *beep.Mixer
	master   *effects.Volume

	mu            sync.Mutex // guards theme/route state and config writes
	theme         core.Theme
	themeSelected bool
	route         core.Route

	initialized atomic.Bool
	silentMode  atomic.Bool
	disabled    atomic.Bool
	muted       atomic.Bool

	generated atomic.Uint64
	failures  atomic.Uint64
}

// NewEngine creates an engine; the device is not touched until
// Initialize
func NewEngine(cfg ...*AudioConfig) *Engine {
	config := DefaultAudioConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}

	e := &Engine{
		config: config,
		cache:  newLoopCache(),
		out:    &beep.Mixer{},
		route:  core.RoutePacifist,
	}
	e.muted.Store(!config.Enabled)

	chans := make([]*channel, 0, core.ChannelCount)
	for id := core.ChannelID(0); id < core.ChannelCount; id++ {
		ch := newChannel(id)
		e.channels[id] = ch
		e.out.Add(ch)
		chans = append(chans, ch)
	}
	e.mixer = newMixer(chans, config.ChannelTrims)
	e.master = &effects.Volume{Streamer: e.out, Base: 2, Volume: 0, Silent: true}

	return e
}

// Initialize acquires the audio device and starts the output chain.
// On failure the engine runs in silent mode for its entire lifetime:
// all state machinery still works, nothing reaches a speaker, and no
// retry is ever attempted.
func (e *Engine) Initialize() error {
	if e.initialized.Load() {
		return nil
	}

	err := speaker.Init(beep.SampleRate(constant.AudioSampleRate), e.config.BufferSize)
	if err != nil {
		e.silentMode.Store(true)
		e.initialized.Store(true)
		wrapped := fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		log.Printf("audio: running silent: %v", wrapped)
		return wrapped
	}

	speaker.Play(e.master)
	e.initialized.Store(true)
	e.applyMaster()
	return nil
}

// Close stops all channels and detaches from the device
func (e *Engine) Close() {
	if !e.initialized.CompareAndSwap(true, false) {
		return
	}

	for _, ch := range e.channels {
		ch.stop()
	}

	if !e.silentMode.Load() {
		speaker.Lock()
		e.master.Silent = true
		speaker.Unlock()
		speaker.Clear()
	}

	e.mu.Lock()
	e.themeSelected = false
	e.mu.Unlock()
}

// SelectTheme switches the three looping channels to the theme's
// LoopSet, composing and caching it on first use. Selecting the active
// theme is a no-op: no restart, no regeneration.
func (e *Engine) SelectTheme(t core.Theme) {
	if e.disabled.Load() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.themeSelected && t == e.theme {
		return
	}
	e.startTheme(t)
}

// SetRoute updates the story branch tag. Only the finale theme reacts
// today, by restarting, which is the hook point for route-specific
// variants.
func (e *Engine) SetRoute(r core.Route) {
	if e.disabled.Load() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if r == e.route {
		return
	}
	e.route = r

	if e.themeSelected && e.theme == core.ThemeLast {
		e.startTheme(core.ThemeLast)
	}
}

// startTheme stops every channel, then starts the theme's loops in
// lockstep. Caller holds e.mu.
func (e *Engine) startTheme(t core.Theme) {
	// Old theme goes fully silent before any new buffer starts; two
	// themes must never overlap
	for _, ch := range e.channels {
		ch.stop()
	}

	before := e.cache.size()
	set, err := e.cache.get(t, e.config.LoopSeconds)
	if err != nil {
		e.disable(err)
		return
	}
	if e.cache.size() > before {
		e.generated.Add(1)
	}

	for id := core.ChannelID(0); id < core.ChannelCount; id++ {
		buf := set.Channel(id)
		if buf == nil || buf.Frames() == 0 {
			e.disable(fmt.Errorf("%w: empty %s loop for theme %s", ErrPlayback, id, t))
			return
		}
		e.channels[id].start(buf)
	}

	e.theme = t
	e.themeSelected = true
	e.mixer.resetLevels()
}

// Advance ingests one frame of gameplay signals. It runs every frame
// regardless of playback state changes.
func (e *Engine) Advance(playerSpeed float64, enemyNear bool) {
	if e.disabled.Load() {
		return
	}
	e.mixer.Advance(playerSpeed, enemyNear)
}

// Warm composes every theme up front so no SelectTheme call stalls the
// frame loop later
func (e *Engine) Warm() error {
	if e.disabled.Load() {
		return nil
	}
	for t := core.Theme(0); t < core.ThemeCount; t++ {
		before := e.cache.size()
		if _, err := e.cache.get(t, e.config.LoopSeconds); err != nil {
			e.mu.Lock()
			e.disable(err)
			e.mu.Unlock()
			return err
		}
		if e.cache.size() > before {
			e.generated.Add(1)
		}
	}
	return nil
}

// disable permanently silences the engine. Idempotent; the diagnostic
// is logged once. Caller holds e.mu or is on the Warm path.
func (e *Engine) disable(err error) {
	for _, ch := range e.channels {
		ch.stop()
	}
	if e.disabled.CompareAndSwap(false, true) {
		e.failures.Add(1)
		log.Printf("audio: disabled for process lifetime: %v", err)
	}
}

// ToggleMute flips mute, returns true if audio is now audible
func (e *Engine) ToggleMute() bool {
	newMute := !e.muted.Load()
	e.muted.Store(newMute)
	e.applyMaster()
	return !newMute
}

// IsMuted returns the mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// SetMasterVolume updates the output gain (0.0-1.0)
func (e *Engine) SetMasterVolume(vol float64) {
	e.mu.Lock()
	e.config.MasterVolume = clampUnit(vol)
	e.mu.Unlock()
	e.applyMaster()
}

// MasterVolume returns the output gain
func (e *Engine) MasterVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.MasterVolume
}

// applyMaster pushes mute/volume onto the output chain.
// math.Log2(0) is -Inf, so zero volume switches to Silent instead.
func (e *Engine) applyMaster() {
	if !e.initialized.Load() || e.silentMode.Load() {
		return
	}

	e.mu.Lock()
	vol := e.config.MasterVolume
	e.mu.Unlock()

	speaker.Lock()
	if e.muted.Load() || vol <= 0 {
		e.master.Silent = true
	} else {
		e.master.Silent = false
		e.master.Volume = math.Log2(vol)
	}
	speaker.Unlock()
}

// CurrentTheme returns the selected theme; ok is false before the first
// successful SelectTheme
func (e *Engine) CurrentTheme() (theme core.Theme, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme, e.themeSelected
}

// Route returns the active story branch tag
func (e *Engine) Route() core.Route {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.route
}

// ChannelState returns a copy of one channel's volume smoothing state
func (e *Engine) ChannelState(id core.ChannelID) ChannelState {
	return e.mixer.State(id)
}

// IsDisabled returns true once a failure has silenced the engine
func (e *Engine) IsDisabled() bool {
	return e.disabled.Load()
}

// IsSilent returns true when no audio device could be acquired
func (e *Engine) IsSilent() bool {
	return e.silentMode.Load()
}

// IsRunning returns true between Initialize and Close, silent mode
// included
func (e *Engine) IsRunning() bool {
	return e.initialized.Load()
}

// Stats returns loops generated, total channel starts and failure count
func (e *Engine) Stats() (generated, starts, failures uint64) {
	for _, ch := range e.channels {
		starts += ch.starts.Load()
	}
	return e.generated.Load(), starts, e.failures.Load()
}
