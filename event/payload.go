package event

import (
	"github.com/lixenwraith/chiptale/core"
)

// ThemeChangePayload carries the new level's theme
type ThemeChangePayload struct {
	Theme core.Theme
}

// RouteChangePayload carries the new story branch tag
type RouteChangePayload struct {
	Route core.Route
}

// FramePayload carries the gameplay signals sampled once per
// simulation frame
type FramePayload struct {
	PlayerSpeed float64
	EnemyNear   bool
}
