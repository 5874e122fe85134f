// Package diphone turns an ordered phoneme sequence into the list of
// transition units the synthesizer renders: diphones spanning adjacent
// phoneme targets, plus explicit pauses.
package diphone

import (
	"strings"

	"github.com/phonolabs/retrovox/internal/phoneme"
)

// Pause markers travel inline with phoneme symbols, as produced by the
// text normalizer.
const (
	PauseShort  = "<PAUSE_SHORT>"
	PauseMedium = "<PAUSE_MEDIUM>"
	PauseLong   = "<PAUSE_LONG>"

	pausePrefix = "<PAUSE"
)

// Unit is either a diphone transition (Start -> End) or a pause with an
// explicit duration. Units exist only for the synthesis of one utterance.
type Unit struct {
	Start string
	End   string

	Pause    bool
	Duration float64 // pause duration in seconds, 0 for diphones
}

// IsPauseMarker reports whether symbol is an inline pause marker rather
// than a phoneme.
func IsPauseMarker(symbol string) bool {
	return strings.HasPrefix(symbol, pausePrefix)
}

// PauseDuration maps a pause marker to seconds. Unrecognized markers get
// the medium duration.
func PauseDuration(marker string) float64 {
	switch {
	case strings.Contains(marker, "LONG"):
		return 0.5
	case strings.Contains(marker, "MEDIUM"):
		return 0.3
	case strings.Contains(marker, "SHORT"):
		return 0.2
	default:
		return 0.3
	}
}

// Sequence converts a phoneme sequence (with inline pause markers) into
// diphone units. Utterances that do not start or end on a pause get
// synthetic transitions from and to silence. A phoneme adjacent to a
// pause is emitted as a degenerate self-transition so its target is
// still voiced on that side of the pause.
func Sequence(symbols []string) []Unit {
	if len(symbols) == 0 {
		return nil
	}

	var units []Unit
	if !IsPauseMarker(symbols[0]) {
		units = append(units, Unit{Start: phoneme.Silence, End: symbols[0]})
	}

	for i := 0; i < len(symbols)-1; i++ {
		cur, next := symbols[i], symbols[i+1]
		if IsPauseMarker(cur) {
			units = append(units, Unit{Pause: true, Duration: PauseDuration(cur)})
			continue
		}
		if IsPauseMarker(next) {
			units = append(units, Unit{Start: cur, End: cur})
			continue
		}
		units = append(units, Unit{Start: cur, End: next})
	}

	if last := symbols[len(symbols)-1]; !IsPauseMarker(last) {
		units = append(units, Unit{Start: last, End: phoneme.Silence})
	}

	return units
}
