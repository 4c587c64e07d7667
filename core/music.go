package core

// Theme identifies the musical configuration tied to a game area
type Theme int

const (
	ThemeRuins Theme = iota
	ThemeSnowdin
	ThemeWaterfall
	ThemeHotland
	ThemeCore
	ThemeLast
	ThemeCount
)

var themeNames = [...]string{"ruins", "snowdin", "waterfall", "hotland", "core", "last"}

func (t Theme) String() string {
	if t >= 0 && int(t) < len(themeNames) {
		return themeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a defined theme
func (t Theme) Valid() bool {
	return t >= 0 && t < ThemeCount
}

// ThemeByName resolves a level name to its theme
func ThemeByName(name string) (Theme, bool) {
	for i, n := range themeNames {
		if n == name {
			return Theme(i), true
		}
	}
	return 0, false
}

// Route is the story branch tag. It influences audio selection only;
// today a route change just forces a reload of the finale theme.
type Route int

const (
	RoutePacifist Route = iota
	RouteGenocide
)

func (r Route) String() string {
	names := [...]string{"pacifist", "genocide"}
	if r >= 0 && int(r) < len(names) {
		return names[r]
	}
	return "unknown"
}

// ChannelID identifies one of the three looping music channels
type ChannelID int

const (
	ChannelBass ChannelID = iota
	ChannelMelody
	ChannelPercussion
	ChannelCount
)

func (c ChannelID) String() string {
	names := [...]string{"bass", "melody", "percussion"}
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// DrumKind selects a percussion voice
type DrumKind int

const (
	DrumKick DrumKind = iota
	DrumSnare
	DrumHat
)

func (d DrumKind) String() string {
	names := [...]string{"kick", "snare", "hat"}
	if d >= 0 && int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}
