// Package phoneme holds the static acoustic inventory used by the
// synthesizer: per-phoneme formant targets, voicing, and nominal durations.
// The tables are process-wide read-only data, initialized once.
package phoneme

// Silence is the symbol used for utterance-boundary transitions.
const Silence = "SIL"

// Phoneme describes the acoustic target of one ARPABET-style symbol:
// three formant center frequencies with relative amplitudes, a voicing
// flag, and a nominal duration in seconds.
type Phoneme struct {
	Symbol   string
	F1, F2, F3 float64 // formant center frequencies, Hz
	A1, A2, A3 float64 // relative amplitudes, 0..1
	Voiced   bool
	Duration float64 // seconds
}

// BaseDuration is the fallback diphone duration for symbols without a
// table entry.
const BaseDuration = 0.08

// Default is the acoustic target used for unknown symbols. Lookups never
// fail; they degrade to this entry.
var Default = Phoneme{
	Symbol: "",
	F1:     500, F2: 1500, F3: 2500,
	A1: 0.5, A2: 0.3, A3: 0.1,
	Voiced:   false,
	Duration: BaseDuration,
}

// Lookup returns the inventory entry for symbol, or Default (with the
// requested symbol filled in) when the symbol is unknown.
func Lookup(symbol string) Phoneme {
	if p, ok := inventory[symbol]; ok {
		return p
	}
	p := Default
	p.Symbol = symbol
	return p
}

// Known reports whether symbol has an inventory entry.
func Known(symbol string) bool {
	_, ok := inventory[symbol]
	return ok
}

// IsFricative reports whether symbol belongs to the fricative/affricate
// class that gets high-frequency noise emphasis.
func IsFricative(symbol string) bool {
	switch symbol {
	case "S", "SH", "F", "TH", "Z", "ZH", "CH", "JH", "DH":
		return true
	}
	return false
}

// IsStop reports whether symbol is a plosive that gets a burst envelope.
func IsStop(symbol string) bool {
	switch symbol {
	case "P", "T", "K", "B", "D", "G":
		return true
	}
	return false
}

var inventory = map[string]Phoneme{
	// Vowels.
	"AA": {Symbol: "AA", F1: 730, F2: 1090, F3: 2440, A1: 1.0, A2: 0.6, A3: 0.3, Voiced: true, Duration: 0.12},
	"AE": {Symbol: "AE", F1: 660, F2: 1720, F3: 2410, A1: 1.0, A2: 0.8, A3: 0.3, Voiced: true, Duration: 0.10},
	"AH": {Symbol: "AH", F1: 520, F2: 1190, F3: 2390, A1: 1.0, A2: 0.5, A3: 0.2, Voiced: true, Duration: 0.08},
	"AO": {Symbol: "AO", F1: 570, F2: 840, F3: 2410, A1: 1.0, A2: 0.4, A3: 0.2, Voiced: true, Duration: 0.12},
	"EH": {Symbol: "EH", F1: 530, F2: 1840, F3: 2480, A1: 1.0, A2: 0.7, A3: 0.3, Voiced: true, Duration: 0.10},
	"ER": {Symbol: "ER", F1: 490, F2: 1350, F3: 1690, A1: 1.0, A2: 0.6, A3: 0.4, Voiced: true, Duration: 0.12},
	"IH": {Symbol: "IH", F1: 390, F2: 1990, F3: 2550, A1: 1.0, A2: 0.8, A3: 0.3, Voiced: true, Duration: 0.08},
	"IY": {Symbol: "IY", F1: 270, F2: 2290, F3: 3010, A1: 1.0, A2: 0.9, A3: 0.4, Voiced: true, Duration: 0.12},
	"OW": {Symbol: "OW", F1: 570, F2: 840, F3: 2410, A1: 1.0, A2: 0.4, A3: 0.2, Voiced: true, Duration: 0.14},
	"UH": {Symbol: "UH", F1: 440, F2: 1020, F3: 2240, A1: 1.0, A2: 0.4, A3: 0.2, Voiced: true, Duration: 0.08},
	"UW": {Symbol: "UW", F1: 300, F2: 870, F3: 2240, A1: 1.0, A2: 0.3, A3: 0.2, Voiced: true, Duration: 0.12},

	// Diphthongs share targets with their dominant vowel.
	"AY": {Symbol: "AY", F1: 660, F2: 1720, F3: 2410, A1: 1.0, A2: 0.8, A3: 0.3, Voiced: true, Duration: 0.14},
	"AW": {Symbol: "AW", F1: 730, F2: 1090, F3: 2440, A1: 1.0, A2: 0.6, A3: 0.3, Voiced: true, Duration: 0.14},
	"EY": {Symbol: "EY", F1: 530, F2: 1840, F3: 2480, A1: 1.0, A2: 0.7, A3: 0.3, Voiced: true, Duration: 0.14},
	"OY": {Symbol: "OY", F1: 570, F2: 840, F3: 2410, A1: 1.0, A2: 0.4, A3: 0.2, Voiced: true, Duration: 0.14},

	// Stops and nasals: formant targets during transitions.
	"B":  {Symbol: "B", F1: 200, F2: 1000, F3: 2500, A1: 0.3, A2: 0.2, A3: 0.1, Voiced: true, Duration: 0.06},
	"D":  {Symbol: "D", F1: 200, F2: 1700, F3: 2600, A1: 0.3, A2: 0.2, A3: 0.1, Voiced: true, Duration: 0.04},
	"G":  {Symbol: "G", F1: 200, F2: 1400, F3: 2200, A1: 0.3, A2: 0.2, A3: 0.1, Voiced: true, Duration: 0.06},
	"P":  {Symbol: "P", F1: 200, F2: 1000, F3: 2500, A1: 0.1, A2: 0.1, A3: 0.05, Voiced: false, Duration: 0.06},
	"T":  {Symbol: "T", F1: 200, F2: 1700, F3: 2600, A1: 0.1, A2: 0.1, A3: 0.05, Voiced: false, Duration: 0.04},
	"K":  {Symbol: "K", F1: 200, F2: 1400, F3: 2200, A1: 0.1, A2: 0.1, A3: 0.05, Voiced: false, Duration: 0.06},
	"M":  {Symbol: "M", F1: 250, F2: 1000, F3: 2200, A1: 0.8, A2: 0.3, A3: 0.2, Voiced: true, Duration: 0.06},
	"N":  {Symbol: "N", F1: 250, F2: 1700, F3: 2600, A1: 0.8, A2: 0.3, A3: 0.2, Voiced: true, Duration: 0.06},
	"NG": {Symbol: "NG", F1: 250, F2: 1400, F3: 2200, A1: 0.8, A2: 0.3, A3: 0.2, Voiced: true, Duration: 0.08},

	// Liquids and glides.
	"L": {Symbol: "L", F1: 400, F2: 1200, F3: 2600, A1: 0.9, A2: 0.5, A3: 0.3, Voiced: true, Duration: 0.06},
	"R": {Symbol: "R", F1: 300, F2: 1300, F3: 1600, A1: 0.9, A2: 0.5, A3: 0.4, Voiced: true, Duration: 0.06},
	"W": {Symbol: "W", F1: 300, F2: 870, F3: 2240, A1: 0.8, A2: 0.3, A3: 0.2, Voiced: true, Duration: 0.06},
	"Y": {Symbol: "Y", F1: 270, F2: 2290, F3: 3010, A1: 0.8, A2: 0.7, A3: 0.3, Voiced: true, Duration: 0.06},

	// Fricatives and affricates.
	"F":  {Symbol: "F", F1: 200, F2: 1000, F3: 4000, A1: 0.2, A2: 0.3, A3: 0.8, Voiced: false, Duration: 0.08},
	"V":  {Symbol: "V", F1: 200, F2: 1000, F3: 4000, A1: 0.4, A2: 0.4, A3: 0.6, Voiced: true, Duration: 0.06},
	"TH": {Symbol: "TH", F1: 200, F2: 1400, F3: 4500, A1: 0.2, A2: 0.3, A3: 0.8, Voiced: false, Duration: 0.08},
	"DH": {Symbol: "DH", F1: 200, F2: 1400, F3: 4500, A1: 0.4, A2: 0.4, A3: 0.6, Voiced: true, Duration: 0.06},
	"S":  {Symbol: "S", F1: 200, F2: 2000, F3: 6000, A1: 0.1, A2: 0.5, A3: 1.0, Voiced: false, Duration: 0.08},
	"Z":  {Symbol: "Z", F1: 200, F2: 2000, F3: 6000, A1: 0.3, A2: 0.6, A3: 0.8, Voiced: true, Duration: 0.06},
	"SH": {Symbol: "SH", F1: 200, F2: 1200, F3: 4000, A1: 0.1, A2: 0.3, A3: 0.9, Voiced: false, Duration: 0.08},
	"ZH": {Symbol: "ZH", F1: 200, F2: 1200, F3: 4000, A1: 0.3, A2: 0.4, A3: 0.7, Voiced: true, Duration: 0.08},
	"CH": {Symbol: "CH", F1: 200, F2: 1200, F3: 4000, A1: 0.1, A2: 0.3, A3: 0.8, Voiced: false, Duration: 0.08},
	"JH": {Symbol: "JH", F1: 200, F2: 1200, F3: 4000, A1: 0.3, A2: 0.4, A3: 0.6, Voiced: true, Duration: 0.08},
	"HH": {Symbol: "HH", F1: 300, F2: 1500, F3: 3000, A1: 0.3, A2: 0.2, A3: 0.1, Voiced: false, Duration: 0.06},

	Silence: {Symbol: Silence, Voiced: false, Duration: 0.02},
}
