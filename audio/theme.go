package audio

import (
	"github.com/lixenwraith/chiptale/core"
)

// MusicParameters is the hand-authored content for one theme. Sequences
// are never empty; a zero frequency marks a rest beat, not an error.
type MusicParameters struct {
	BassFreqs   []float64 // Hz per beat, triangle channel
	MelodyNotes []float64 // Hz per beat, pulse channel
	TempoBPM    float64
	PulseDuty   float64 // fraction of the period spent high, in (0,1]
}

// themeParams is fixed content, not computed: faster tempo and sharper
// duty for the tense areas, slower and rounder for the calm ones
var themeParams = [core.ThemeCount]MusicParameters{
	core.ThemeRuins: {
		BassFreqs:   []float64{110, 110, 98, 98}, // A2 A2 G2 G2
		MelodyNotes: []float64{220, 262, 294, 330, 0, 330, 294, 262},
		TempoBPM:    120,
		PulseDuty:   0.5,
	},
	core.ThemeSnowdin: {
		BassFreqs:   []float64{98, 98, 110, 110}, // G2 G2 A2 A2
		MelodyNotes: []float64{330, 294, 262, 220, 0, 220, 262, 294},
		TempoBPM:    140,
		PulseDuty:   0.25, // brighter lead
	},
	core.ThemeWaterfall: {
		BassFreqs:   []float64{65, 65, 73, 73}, // C2 C2 D2 D2
		MelodyNotes: []float64{196, 220, 262, 294, 0, 262, 220, 196},
		TempoBPM:    100,
		PulseDuty:   0.5,
	},
	core.ThemeHotland: {
		BassFreqs:   []float64{82, 82, 92, 92}, // E2 E2 F#2 F#2
		MelodyNotes: []float64{330, 311, 294, 262, 0, 294, 311, 330},
		TempoBPM:    160,
		PulseDuty:   0.125, // raspy lead
	},
	core.ThemeCore: {
		BassFreqs:   []float64{110, 98, 110, 98}, // A2 G2 A2 G2
		MelodyNotes: []float64{349, 330, 311, 294, 0, 294, 311, 330},
		TempoBPM:    180,
		PulseDuty:   0.75, // thick sound
	},
	core.ThemeLast: {
		BassFreqs:   []float64{65, 73, 65, 73}, // C2 D2 C2 D2
		MelodyNotes: []float64{220, 262, 330, 392, 0, 392, 330, 262},
		TempoBPM:    200,
		PulseDuty:   0.5,
	},
}

// Params returns the musical parameters for a theme. Unknown themes get
// the finale parameters.
func Params(t core.Theme) MusicParameters {
	if !t.Valid() {
		return themeParams[core.ThemeLast]
	}
	return themeParams[t]
}
