package utterancelog

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/phonolabs/retrovox/internal/config"
)

func testStore(t *testing.T, mutate func(*config.UtteranceLogConfig)) *Store {
	t.Helper()
	cfg := config.UtteranceLogConfig{
		Enabled:       true,
		Path:          filepath.Join(t.TempDir(), "utterances.db"),
		RetentionDays: 30,
		MaxUtterances: 100,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := Open(context.Background(), cfg, slog.Default())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := testStore(t, nil)
	ctx := context.Background()

	for i, text := range []string{"first", "second", "third"} {
		err := s.Append(ctx, Utterance{
			SessionID:  "s1",
			Text:       text,
			Phonemes:   i + 1,
			Samples:    1000 * (i + 1),
			DurationMS: int64(100 * (i + 1)),
			Preset:     "dr_sbaitso",
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Second).UTC(),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 utterances, got %d", len(got))
	}
	if got[0].Text != "third" {
		t.Fatalf("expected newest first, got %q", got[0].Text)
	}
	if got[0].Preset != "dr_sbaitso" {
		t.Fatalf("preset not persisted: %q", got[0].Preset)
	}
}

func TestPruneMaxUtterances(t *testing.T) {
	s := testStore(t, func(c *config.UtteranceLogConfig) {
		c.MaxUtterances = 2
	})
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		err := s.Append(ctx, Utterance{
			Text:      "utterance",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := s.Prune(ctx); err != nil {
		t.Fatalf("prune: %v", err)
	}
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 utterances after prune, got %d", len(got))
	}
}

func TestPruneRetentionDays(t *testing.T) {
	s := testStore(t, nil)
	ctx := context.Background()

	old := time.Now().Add(-40 * 24 * time.Hour).UTC()
	if err := s.Append(ctx, Utterance{Text: "stale", CreatedAt: old}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, Utterance{Text: "fresh"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Prune(ctx); err != nil {
		t.Fatalf("prune: %v", err)
	}
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Text != "fresh" {
		t.Fatalf("expected only the fresh utterance, got %v", got)
	}
}

func TestDisabledStoreIsNoOp(t *testing.T) {
	s, err := Open(context.Background(), config.UtteranceLogConfig{Enabled: false}, slog.Default())
	if err != nil {
		t.Fatalf("open disabled store: %v", err)
	}
	ctx := context.Background()
	if err := s.Append(ctx, Utterance{Text: "dropped"}); err != nil {
		t.Fatalf("append on disabled store: %v", err)
	}
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent on disabled store: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
