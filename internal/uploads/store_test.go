package uploads

import (
	"context"
	"testing"

	"caption/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestStoreAddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "movie.mp4", "video/mp4", 1024, "https://blobs.example/movie.mp4")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("Add returned zero ID")
	}

	second, err := store.Add(ctx, "audio.mp3", "audio/mpeg", 2048, "https://blobs.example/audio.mp3")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	// Newest first.
	if records[0].ID != second.ID {
		t.Fatalf("first listed ID = %d, want %d", records[0].ID, second.ID)
	}
	if records[1].Filename != "movie.mp4" || records[1].SizeBytes != 1024 {
		t.Fatalf("unexpected record: %+v", records[1])
	}
	if records[1].CreatedAt.IsZero() {
		t.Fatal("CreatedAt not persisted")
	}
}

func TestStoreListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Add(ctx, "f.mp4", "video/mp4", 1, "https://blobs.example/f.mp4"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	records, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
}

func TestStoreListEmpty(t *testing.T) {
	store := newTestStore(t)
	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len = %d, want 0", len(records))
	}
}
