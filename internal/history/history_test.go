package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("record and read back", func(t *testing.T) {
		store, err := Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()

		rec := RunRecord{
			ID:        "run-1",
			StartedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			Duration:  1530 * time.Millisecond,
			Total:     3,
			Completed: 3,
			Failed:    1,
			DryRun:    true,
		}
		if err := store.RecordRun(ctx, rec); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}

		runs, err := store.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("failed to read runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}

		got := runs[0]
		if got.ID != rec.ID || got.Total != 3 || got.Completed != 3 || got.Failed != 1 {
			t.Errorf("unexpected record %+v", got)
		}
		if !got.DryRun {
			t.Error("expected dry-run flag to persist")
		}
		if got.Duration != rec.Duration {
			t.Errorf("expected duration %v, got %v", rec.Duration, got.Duration)
		}
		if !got.StartedAt.Equal(rec.StartedAt) {
			t.Errorf("expected start %v, got %v", rec.StartedAt, got.StartedAt)
		}
	})

	t.Run("recent is newest first and limited", func(t *testing.T) {
		store, err := Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()

		base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			rec := RunRecord{
				ID:        string(rune('a' + i)),
				StartedAt: base.Add(time.Duration(i) * time.Minute),
				Total:     1,
				Completed: 1,
			}
			if err := store.RecordRun(ctx, rec); err != nil {
				t.Fatalf("failed to record run %d: %v", i, err)
			}
		}

		runs, err := store.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("failed to read runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != "c" || runs[1].ID != "b" {
			t.Errorf("expected newest first [c b], got [%s %s]", runs[0].ID, runs[1].ID)
		}
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		store, err := Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()

		rec := RunRecord{ID: "dup", StartedAt: time.Now(), Total: 1, Completed: 1}
		if err := store.RecordRun(ctx, rec); err != nil {
			t.Fatalf("first insert failed: %v", err)
		}
		if err := store.RecordRun(ctx, rec); err == nil {
			t.Error("expected duplicate insert to fail")
		}
	})

	t.Run("persists across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.db")

		store, err := Open(path)
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		rec := RunRecord{ID: "persist", StartedAt: time.Now(), Total: 2, Completed: 2}
		if err := store.RecordRun(ctx, rec); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
		store.Close()

		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer reopened.Close()

		runs, err := reopened.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("failed to read runs: %v", err)
		}
		if len(runs) != 1 || runs[0].ID != "persist" {
			t.Errorf("expected persisted run, got %+v", runs)
		}
	})
}
