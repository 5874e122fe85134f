// Package textnorm normalizes raw input text into the uppercase,
// fully-spelled-out form the phoneme converter expects: contractions and
// abbreviations expanded, numbers written out, and punctuation turned
// into inline pause markers or spoken symbol names.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// Pause markers inserted for sentence and clause punctuation. They pass
// through phoneme conversion untouched and become silent units during
// synthesis.
const (
	PauseShort  = "<PAUSE_SHORT>"
	PauseMedium = "<PAUSE_MEDIUM>"
	PauseLong   = "<PAUSE_LONG>"
)

const punctuationChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	spaceRE       = regexp.MustCompile(`\s+`)
	sentenceEndRE = regexp.MustCompile(`[.!?]+`)
	clauseRE      = regexp.MustCompile(`[,;]`)
)

// contractionReplacer expands possessive-free contractions. Longer forms
// are matched first, so SHE'S never falls through to the HE'S rule.
var contractionReplacer = strings.NewReplacer(
	"WON'T", "WILL NOT",
	"CAN'T", "CANNOT",
	"DON'T", "DO NOT",
	"ISN'T", "IS NOT",
	"AREN'T", "ARE NOT",
	"WASN'T", "WAS NOT",
	"WEREN'T", "WERE NOT",
	"HAVEN'T", "HAVE NOT",
	"HASN'T", "HAS NOT",
	"HADN'T", "HAD NOT",
	"WOULDN'T", "WOULD NOT",
	"SHOULDN'T", "SHOULD NOT",
	"COULDN'T", "COULD NOT",
	"MUSTN'T", "MUST NOT",
	"NEEDN'T", "NEED NOT",
	"I'M", "I AM",
	"YOU'RE", "YOU ARE",
	"THEY'RE", "THEY ARE",
	"WE'RE", "WE ARE",
	"SHE'S", "SHE IS",
	"HE'S", "HE IS",
	"IT'S", "IT IS",
	"I'VE", "I HAVE",
	"YOU'VE", "YOU HAVE",
	"WE'VE", "WE HAVE",
	"THEY'VE", "THEY HAVE",
	"I'LL", "I WILL",
	"YOU'LL", "YOU WILL",
	"SHE'LL", "SHE WILL",
	"HE'LL", "HE WILL",
	"WE'LL", "WE WILL",
	"THEY'LL", "THEY WILL",
	"I'D", "I WOULD",
	"YOU'D", "YOU WOULD",
	"SHE'D", "SHE WOULD",
	"HE'D", "HE WOULD",
	"WE'D", "WE WOULD",
	"THEY'D", "THEY WOULD",
)

var abbreviations = map[string]string{
	// Titles.
	"MR.": "MISTER", "MRS.": "MISSES", "MS.": "MISS",
	"DR.": "DOCTOR", "PROF.": "PROFESSOR", "REV.": "REVEREND",
	"SEN.": "SENATOR", "REP.": "REPRESENTATIVE",
	"GEN.": "GENERAL", "COL.": "COLONEL", "MAJ.": "MAJOR",
	"CAPT.": "CAPTAIN", "LT.": "LIEUTENANT", "SGT.": "SERGEANT",

	// Common.
	"ETC.": "ET CETERA", "VS.": "VERSUS",
	"E.G.": "FOR EXAMPLE", "I.E.": "THAT IS",
	"A.M.": "A M", "P.M.": "P M",
	"INC.": "INCORPORATED", "CORP.": "CORPORATION",
	"LTD.": "LIMITED", "CO.": "COMPANY",

	// Units.
	"FT.": "FEET", "IN.": "INCHES",
	"LB.": "POUND", "LBS.": "POUNDS", "OZ.": "OUNCE",
	"PT.": "PINT", "QT.": "QUART", "GAL.": "GALLON",
	"MPH": "MILES PER HOUR", "MPG": "MILES PER GALLON",

	// Addresses.
	"ST.": "STREET", "AVE.": "AVENUE", "BLVD.": "BOULEVARD",
	"RD.": "ROAD", "CT.": "COURT", "PL.": "PLACE", "APT.": "APARTMENT",

	// State codes.
	"CA": "CALIFORNIA", "NY": "NEW YORK", "TX": "TEXAS",
	"FL": "FLORIDA", "IL": "ILLINOIS", "PA": "PENNSYLVANIA",
	"OH": "OHIO", "MI": "MICHIGAN", "WA": "WASHINGTON", "OR": "OREGON",
}

// ordinalReplacer expands ordinal numerals, longest form first so 21ST
// is not torn apart by the 1ST rule.
var ordinalReplacer = strings.NewReplacer(
	"30TH", "THIRTIETH",
	"23RD", "TWENTY THIRD",
	"22ND", "TWENTY SECOND",
	"21ST", "TWENTY FIRST",
	"20TH", "TWENTIETH",
	"19TH", "NINETEENTH",
	"18TH", "EIGHTEENTH",
	"17TH", "SEVENTEENTH",
	"16TH", "SIXTEENTH",
	"15TH", "FIFTEENTH",
	"14TH", "FOURTEENTH",
	"13TH", "THIRTEENTH",
	"12TH", "TWELFTH",
	"11TH", "ELEVENTH",
	"10TH", "TENTH",
	"9TH", "NINTH",
	"8TH", "EIGHTH",
	"7TH", "SEVENTH",
	"6TH", "SIXTH",
	"5TH", "FIFTH",
	"4TH", "FOURTH",
	"3RD", "THIRD",
	"2ND", "SECOND",
	"1ST", "FIRST",
)

var cardinals = map[int]string{
	0: "ZERO", 1: "ONE", 2: "TWO", 3: "THREE", 4: "FOUR",
	5: "FIVE", 6: "SIX", 7: "SEVEN", 8: "EIGHT", 9: "NINE",
	10: "TEN", 11: "ELEVEN", 12: "TWELVE", 13: "THIRTEEN",
	14: "FOURTEEN", 15: "FIFTEEN", 16: "SIXTEEN", 17: "SEVENTEEN",
	18: "EIGHTEEN", 19: "NINETEEN", 20: "TWENTY", 30: "THIRTY",
	40: "FORTY", 50: "FIFTY", 60: "SIXTY", 70: "SEVENTY",
	80: "EIGHTY", 90: "NINETY",
}

// symbolNames spells the punctuation that survives pause conversion.
var symbolNames = map[rune]string{
	'"': " QUOTE ", '\'': " APOSTROPHE ",
	'(': " OPEN PARENTHESIS ", ')': " CLOSE PARENTHESIS ",
	'[': " OPEN BRACKET ", ']': " CLOSE BRACKET ",
	'{': " OPEN BRACE ", '}': " CLOSE BRACE ",
	'-': " DASH ", '_': " UNDERSCORE ",
	'/': " SLASH ", '\\': " BACKSLASH ",
	'&': " AND ", '@': " AT ", '#': " HASH ",
	'$': " DOLLAR ", '%': " PERCENT ", '*': " ASTERISK ",
	'+': " PLUS ", '=': " EQUALS ",
	'<': " LESS THAN ", '>': " GREATER THAN ",
}

// Normalize runs the full pipeline: uppercase cleanup, contraction and
// abbreviation expansion, number spelling, and punctuation-to-pause
// conversion. The result contains only words and pause markers.
func Normalize(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	text = spaceRE.ReplaceAllString(text, " ")
	text = contractionReplacer.Replace(text)
	text = expandAbbreviations(text)
	text = expandNumbers(text)
	text = processPunctuation(text)
	return spaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
}

func expandAbbreviations(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if full, ok := abbreviations[w]; ok {
			out = append(out, full)
			continue
		}
		base := strings.TrimRight(w, punctuationChars)
		if full, ok := abbreviations[base]; ok {
			out = append(out, full+w[len(base):])
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func expandNumbers(text string) string {
	text = ordinalReplacer.Replace(text)

	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		digits := strings.TrimRight(w, punctuationChars)
		if digits != "" && isDigits(digits) {
			out = append(out, numberToWords(digits)+w[len(digits):])
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// numberToWords spells integers up to one thousand; anything larger is
// left as digits and falls through to letter-by-letter conversion.
func numberToWords(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	switch {
	case n <= 20:
		return cardinals[n]
	case n <= 99:
		tens, ones := n/10*10, n%10
		if ones == 0 {
			return cardinals[tens]
		}
		return cardinals[tens] + " " + cardinals[ones]
	case n == 100:
		return "ONE HUNDRED"
	case n <= 999:
		hundreds, rest := n/100, n%100
		if rest == 0 {
			return cardinals[hundreds] + " HUNDRED"
		}
		return cardinals[hundreds] + " HUNDRED " + numberToWords(strconv.Itoa(rest))
	case n == 1000:
		return "ONE THOUSAND"
	default:
		return s
	}
}

func processPunctuation(text string) string {
	text = sentenceEndRE.ReplaceAllString(text, " "+PauseLong+" ")
	text = clauseRE.ReplaceAllString(text, " "+PauseShort+" ")
	text = strings.ReplaceAll(text, ":", " "+PauseMedium+" ")

	// Symbol spelling runs per word so the freshly inserted pause
	// markers keep their angle brackets and underscores.
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, "<PAUSE") {
			out = append(out, w)
			continue
		}
		var b strings.Builder
		for _, r := range w {
			if name, ok := symbolNames[r]; ok {
				b.WriteString(name)
			} else {
				b.WriteRune(r)
			}
		}
		out = append(out, strings.Fields(b.String())...)
	}
	return strings.Join(out, " ")
}
