package g2p

import (
	"slices"
	"testing"
)

func TestConvertWordException(t *testing.T) {
	got := ConvertWord("the")
	if !slices.Equal(got, []string{"DH", "AH"}) {
		t.Fatalf("got %v", got)
	}
}

func TestConvertWordRules(t *testing.T) {
	got := ConvertWord("HELLO")
	if !slices.Equal(got, []string{"HH", "EH", "L", "L", "AO"}) {
		t.Fatalf("got %v", got)
	}
}

func TestConvertWordDigraphs(t *testing.T) {
	got := ConvertWord("CHEESE")
	if !slices.Equal(got, []string{"CH", "IY", "S", "SIL"}) {
		t.Fatalf("got %v", got)
	}
}

func TestConvertWordMagicE(t *testing.T) {
	got := ConvertWord("CAKE")
	if !slices.Equal(got, []string{"K", "EY", "K", "SIL"}) {
		t.Fatalf("got %v", got)
	}
}

func TestConvertWordSilentFinalE(t *testing.T) {
	got := ConvertWord("MADE")
	// Magic E lengthens the A and the final E itself is silent.
	if !slices.Equal(got, []string{"M", "EY", "D", "SIL"}) {
		t.Fatalf("got %v", got)
	}
}

func TestConvertPreservesPauseMarkers(t *testing.T) {
	got := Convert("HELLO <PAUSE_LONG> WORLD")
	wantMarker := false
	for _, p := range got {
		if p == "<PAUSE_LONG>" {
			wantMarker = true
		}
	}
	if !wantMarker {
		t.Fatalf("pause marker lost: %v", got)
	}
}

func TestConvertWordStripsPunctuation(t *testing.T) {
	got := ConvertWord("IT!")
	if !slices.Equal(got, []string{"IH", "T"}) {
		t.Fatalf("got %v", got)
	}
}

func TestConvertWordEmptyAfterCleanup(t *testing.T) {
	if got := ConvertWord("..."); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestConvertWordDigitsPassThrough(t *testing.T) {
	got := ConvertWord("1234")
	if !slices.Equal(got, []string{"1", "2", "3", "4"}) {
		t.Fatalf("got %v", got)
	}
}
