package textnorm

import "testing"

func TestNormalizeUppercasesAndCollapses(t *testing.T) {
	got := Normalize("  hello   world  ")
	if got != "HELLO WORLD" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeExpandsContractions(t *testing.T) {
	cases := map[string]string{
		"don't":  "DO NOT",
		"can't":  "CANNOT",
		"she's":  "SHE IS",
		"he's":   "HE IS",
		"I'll":   "I WILL",
		"won't":  "WILL NOT",
		"they'd": "THEY WOULD",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeExpandsAbbreviations(t *testing.T) {
	// The abbreviation match consumes the trailing period, so no
	// sentence pause is produced here.
	got := Normalize("Dr. Smith lives on Elm St.")
	want := "DOCTOR SMITH LIVES ON ELM STREET"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeExpandsNumbers(t *testing.T) {
	cases := map[string]string{
		"7":    "SEVEN",
		"42":   "FORTY TWO",
		"100":  "ONE HUNDRED",
		"365":  "THREE HUNDRED SIXTY FIVE",
		"1000": "ONE THOUSAND",
		"21st": "TWENTY FIRST",
		"3rd":  "THIRD",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLargeNumberLeftAsDigits(t *testing.T) {
	if got := Normalize("1234"); got != "1234" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizePunctuationToPauses(t *testing.T) {
	got := Normalize("Hello, world! How are you?")
	want := "HELLO <PAUSE_SHORT> WORLD <PAUSE_LONG> HOW ARE YOU <PAUSE_LONG>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeColonBecomesMediumPause(t *testing.T) {
	got := Normalize("note: done")
	want := "NOTE <PAUSE_MEDIUM> DONE"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeSpellsSymbols(t *testing.T) {
	got := Normalize("a & b")
	want := "A AND B"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	got = Normalize("50%")
	want = "FIFTY PERCENT"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizePreservesPauseMarkers(t *testing.T) {
	// Marker punctuation must not be re-spelled as LESS THAN etc.
	got := Normalize("one. two")
	want := "ONE <PAUSE_LONG> TWO"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
