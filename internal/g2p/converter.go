// Package g2p converts normalized text into ARPABET-style phoneme
// symbols with a small exception dictionary and letter-context rules, in
// the manner of early rule-based speech systems.
package g2p

import (
	"regexp"
	"strings"
)

var nonAlnumRE = regexp.MustCompile(`[^A-Z0-9]`)

// Convert maps normalized text to a phoneme sequence. Pause markers pass
// through unchanged; every other word goes through the exception
// dictionary or the letter rules.
func Convert(text string) []string {
	var phonemes []string
	for _, word := range strings.Fields(text) {
		phonemes = append(phonemes, ConvertWord(word)...)
	}
	return phonemes
}

// ConvertWord maps a single word to phonemes.
func ConvertWord(word string) []string {
	if strings.HasPrefix(word, "<PAUSE") {
		return []string{word}
	}

	clean := nonAlnumRE.ReplaceAllString(strings.ToUpper(word), "")
	if clean == "" {
		return nil
	}

	if ph, ok := exceptions[clean]; ok {
		out := make([]string, len(ph))
		copy(out, ph)
		return out
	}

	return applyRules(clean)
}

// applyRules walks the word left to right: digraphs first, then
// contextual vowel rules, then single consonants. Letters with no rule
// (digits included) pass through as themselves and render with default
// formants downstream.
func applyRules(word string) []string {
	var phonemes []string
	for i := 0; i < len(word); {
		if i+1 < len(word) {
			if ph, ok := digraphs[word[i:i+2]]; ok {
				phonemes = append(phonemes, ph...)
				i += 2
				continue
			}
		}

		letter := word[i]
		switch {
		case strings.IndexByte("AEIOU", letter) >= 0:
			phonemes = append(phonemes, vowelAt(word, i))
		default:
			if ph, ok := consonants[letter]; ok {
				phonemes = append(phonemes, ph...)
			} else {
				phonemes = append(phonemes, string(letter))
			}
		}
		i++
	}
	return phonemes
}

// vowelAt resolves a vowel with positional context: word-final silent E,
// the magic-E long vowel pattern, then the short defaults.
func vowelAt(word string, pos int) string {
	vowel := word[pos]

	if pos == len(word)-1 && vowel == 'E' && len(word) > 1 &&
		strings.IndexByte("AEIOU", word[pos-1]) < 0 {
		return "SIL"
	}

	if pos < len(word)-2 && word[pos+2] == 'E' &&
		strings.IndexByte("AEIOU", word[pos+1]) < 0 {
		switch vowel {
		case 'A':
			return "EY"
		case 'I':
			return "AY"
		case 'O':
			return "OW"
		case 'U':
			return "UW"
		}
	}

	return shortVowels[vowel]
}

var shortVowels = map[byte]string{
	'A': "AE", // cat
	'E': "EH", // bed
	'I': "IH", // bit
	'O': "AO", // cot
	'U': "AH", // but
}

var consonants = map[byte][]string{
	'B': {"B"},
	'C': {"K"},
	'D': {"D"},
	'F': {"F"},
	'G': {"G"},
	'H': {"HH"},
	'J': {"JH"},
	'K': {"K"},
	'L': {"L"},
	'M': {"M"},
	'N': {"N"},
	'P': {"P"},
	'Q': {"K", "W"},
	'R': {"R"},
	'S': {"S"},
	'T': {"T"},
	'V': {"V"},
	'W': {"W"},
	'X': {"K", "S"},
	'Z': {"Z"},
}

var digraphs = map[string][]string{
	// Consonant digraphs.
	"CH": {"CH"},
	"SH": {"SH"},
	"TH": {"TH"},
	"WH": {"W"},
	"PH": {"F"},
	"GH": {"F"}, // laugh, rough
	"CK": {"K"},
	"NG": {"NG"},

	// Vowel teams.
	"AI": {"EY"}, // rain
	"AY": {"EY"}, // day
	"EA": {"IY"}, // eat
	"EE": {"IY"}, // see
	"EI": {"EY"}, // eight
	"EY": {"EY"}, // they
	"IE": {"IY"}, // piece
	"OA": {"OW"}, // boat
	"OO": {"UW"}, // moon
	"OU": {"AW"}, // out
	"OW": {"AW"}, // cow
	"OY": {"OY"}, // boy
	"UI": {"UW"}, // suit
	"UE": {"UW"}, // blue
	"AU": {"AO"}, // caught
	"AW": {"AO"}, // saw
	"EW": {"UW"}, // new
	"OI": {"OY"}, // oil

	// Silent-letter clusters.
	"QU": {"K", "W"},
	"SC": {"S"}, // science
	"KN": {"N"}, // knife
	"WR": {"R"}, // write
	"MB": {"M"}, // lamb
	"BT": {"T"}, // debt
}

var exceptions = map[string][]string{
	// Function words.
	"THE": {"DH", "AH"},
	"A":   {"AH"},
	"AN":  {"AE", "N"},
	"AND": {"AE", "N", "D"},
	"OF":  {"AH", "V"},
	"TO":  {"T", "UW"},
	"IN":  {"IH", "N"},
	"IS":  {"IH", "Z"},
	"IT":  {"IH", "T"},
	"FOR": {"F", "AO", "R"},
	"AS":  {"AE", "Z"},

	"WITH": {"W", "IH", "TH"},
	"HIS":  {"HH", "IH", "Z"},
	"HER":  {"HH", "ER"},
	"HIM":  {"HH", "IH", "M"},
	"HAS":  {"HH", "AE", "Z"},
	"HAD":  {"HH", "AE", "D"},
	"HAVE": {"HH", "AE", "V"},
	"BE":   {"B", "IY"},
	"BEEN": {"B", "IH", "N"},
	"WAS":  {"W", "AH", "Z"},
	"WERE": {"W", "ER"},
	"ARE":  {"AA", "R"},

	"WHAT":  {"W", "AH", "T"},
	"WHEN":  {"W", "EH", "N"},
	"WHERE": {"W", "EH", "R"},
	"WHO":   {"HH", "UW"},
	"WHY":   {"W", "AY"},
	"HOW":   {"HH", "AW"},

	"WOULD":  {"W", "UH", "D"},
	"COULD":  {"K", "UH", "D"},
	"SHOULD": {"SH", "UH", "D"},

	// Spelled numbers.
	"ONE":      {"W", "AH", "N"},
	"TWO":      {"T", "UW"},
	"THREE":    {"TH", "R", "IY"},
	"FOUR":     {"F", "AO", "R"},
	"FIVE":     {"F", "AY", "V"},
	"SIX":      {"S", "IH", "K", "S"},
	"SEVEN":    {"S", "EH", "V", "AH", "N"},
	"EIGHT":    {"EY", "T"},
	"NINE":     {"N", "AY", "N"},
	"TEN":      {"T", "EH", "N"},
	"ELEVEN":   {"IH", "L", "EH", "V", "AH", "N"},
	"TWELVE":   {"T", "W", "EH", "L", "V"},
	"ZERO":     {"Z", "IH", "R", "OW"},
	"HUNDRED":  {"HH", "AH", "N", "D", "R", "AH", "D"},
	"THOUSAND": {"TH", "AW", "Z", "AH", "N", "D"},
	"MILLION":  {"M", "IH", "L", "Y", "AH", "N"},
	"BILLION":  {"B", "IH", "L", "Y", "AH", "N"},

	// Technology vocabulary.
	"COMPUTER":    {"K", "AH", "M", "P", "Y", "UW", "T", "ER"},
	"PROGRAM":     {"P", "R", "OW", "G", "R", "AE", "M"},
	"SYSTEM":      {"S", "IH", "S", "T", "AH", "M"},
	"MACHINE":     {"M", "AH", "SH", "IY", "N"},
	"DEVICE":      {"D", "IH", "V", "AY", "S"},
	"NETWORK":     {"N", "EH", "T", "W", "ER", "K"},
	"SOFTWARE":    {"S", "AO", "F", "T", "W", "EH", "R"},
	"HARDWARE":    {"HH", "AA", "R", "D", "W", "EH", "R"},
	"MEMORY":      {"M", "EH", "M", "ER", "IY"},
	"PROCESSOR":   {"P", "R", "AA", "S", "EH", "S", "ER"},
	"TECHNOLOGY":  {"T", "EH", "K", "N", "AA", "L", "AH", "JH", "IY"},
	"ELECTRONIC":  {"IH", "L", "EH", "K", "T", "R", "AA", "N", "IH", "K"},
	"DIGITAL":     {"D", "IH", "JH", "IH", "T", "AH", "L"},
	"INTERFACE":   {"IH", "N", "T", "ER", "F", "EY", "S"},
	"INFORMATION": {"IH", "N", "F", "ER", "M", "EY", "SH", "AH", "N"},

	// Silent letters the rules cannot reach.
	"KNIFE":     {"N", "AY", "F"},
	"KNOW":      {"N", "OW"},
	"KNEE":      {"N", "IY"},
	"WRITE":     {"R", "AY", "T"},
	"WRONG":     {"R", "AO", "NG"},
	"LAMB":      {"L", "AE", "M"},
	"THUMB":     {"TH", "AH", "M"},
	"DEBT":      {"D", "EH", "T"},
	"DOUBT":     {"D", "AW", "T"},
	"ISLAND":    {"AY", "L", "AH", "N", "D"},
	"LISTEN":    {"L", "IH", "S", "AH", "N"},
	"CASTLE":    {"K", "AE", "S", "AH", "L"},
	"CHRISTMAS": {"K", "R", "IH", "S", "M", "AH", "S"},
	"WEDNESDAY": {"W", "EH", "N", "Z", "D", "EY"},
	"FEBRUARY":  {"F", "EH", "B", "R", "UW", "EH", "R", "IY"},
}
