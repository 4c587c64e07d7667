package system

import (
	"github.com/lixenwraith/chiptale/audio"
	"github.com/lixenwraith/chiptale/core"
	"github.com/lixenwraith/chiptale/event"
)

// MusicSystem translates game events into audio engine calls.
// Decouples the game loop from direct Engine access.
type MusicSystem struct {
	engine *audio.Engine

	enabled bool
}

// NewMusicSystem creates a music system.
// engine may be nil if audio is disabled.
func NewMusicSystem(engine *audio.Engine) *MusicSystem {
	s := &MusicSystem{engine: engine}
	s.Init()
	return s
}

// Init resets session state
func (s *MusicSystem) Init() {
	s.enabled = true
}

// Name returns the system name
func (s *MusicSystem) Name() string {
	return "music"
}

// EventTypes returns handled event types
func (s *MusicSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventThemeChange,
		event.EventRouteChange,
		event.EventFrame,
		event.EventGameReset,
	}
}

// HandleEvent processes music events
func (s *MusicSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		if s.engine != nil {
			s.engine.SelectTheme(core.ThemeRuins)
			s.engine.SetRoute(core.RoutePacifist)
		}
		return
	}

	if !s.enabled || s.engine == nil {
		return
	}

	switch ev.Type {
	case event.EventThemeChange:
		if payload, ok := ev.Payload.(*event.ThemeChangePayload); ok {
			s.engine.SelectTheme(payload.Theme)
		}

	case event.EventRouteChange:
		if payload, ok := ev.Payload.(*event.RouteChangePayload); ok {
			s.engine.SetRoute(payload.Route)
		}

	case event.EventFrame:
		if payload, ok := ev.Payload.(*event.FramePayload); ok {
			s.engine.Advance(payload.PlayerSpeed, payload.EnemyNear)
		}
	}
}

// Update implements the system interface; all work is event-driven
func (s *MusicSystem) Update() {}
