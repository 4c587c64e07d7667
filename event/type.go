package event

// EventType identifies a game event
type EventType uint16

const (
	EventNone EventType = iota
	// EventThemeChange fires when the active level changes
	EventThemeChange
	// EventRouteChange fires when the story branch flips
	EventRouteChange
	// EventFrame carries the per-frame gameplay signals
	EventFrame
	// EventGameReset asks systems to drop session state
	EventGameReset
	eventTypeCount
)

func (t EventType) String() string {
	names := [...]string{"none", "theme_change", "route_change", "frame", "game_reset"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// GameEvent is the unit moved through the queue
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
