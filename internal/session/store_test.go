package session

import "testing"

func TestStoreAddAppendsWithDefaultWindow(t *testing.T) {
	store := NewStore()

	first := store.Add("hello")
	if first.ID == "" {
		t.Fatal("Add returned empty ID")
	}
	if first.StartTime != 0 || first.EndTime != 3 {
		t.Fatalf("first segment window = [%v, %v], want [0, 3]", first.StartTime, first.EndTime)
	}

	second := store.Add("world")
	if second.StartTime != first.EndTime {
		t.Fatalf("second segment starts at %v, want %v", second.StartTime, first.EndTime)
	}
	if second.ID == first.ID {
		t.Fatal("Add reused a segment ID")
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
}

func TestStoreApplyUpdatesOnlyProvidedFields(t *testing.T) {
	store := NewStore()
	segment := store.Add("original text")

	newText := "edited text"
	updated, err := store.Apply(segment.ID, Update{Text: &newText})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if updated.Text != newText {
		t.Fatalf("Text = %q, want %q", updated.Text, newText)
	}
	if updated.StartTime != segment.StartTime || updated.EndTime != segment.EndTime {
		t.Fatal("Apply changed fields that were not provided")
	}
}

func TestStoreApplyToleratesInvertedWindow(t *testing.T) {
	// Manual edits may produce endTime < startTime; the store stores what it
	// is given and does not repair it.
	store := NewStore()
	segment := store.Add("text")

	start := 10.0
	end := 5.0
	updated, err := store.Apply(segment.ID, Update{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if updated.StartTime != 10 || updated.EndTime != 5 {
		t.Fatalf("window = [%v, %v], want stored as given", updated.StartTime, updated.EndTime)
	}
}

func TestStoreApplyUnknownID(t *testing.T) {
	store := NewStore()
	if _, err := store.Apply("missing", Update{}); err == nil {
		t.Fatal("expected error for unknown segment")
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	first := store.Add("one")
	store.Add("two")

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d after delete, want 1", store.Len())
	}
	if err := store.Delete(first.ID); err == nil {
		t.Fatal("expected error deleting twice")
	}
}

func TestStoreReplaceAssignsMissingIDs(t *testing.T) {
	store := NewStore()
	store.Add("stale")

	store.Replace([]Segment{
		{ID: "segment-0", Text: "kept id", StartTime: 0, EndTime: 2},
		{Text: "needs id", StartTime: 2, EndTime: 4},
	})

	segments := store.List()
	if len(segments) != 2 {
		t.Fatalf("len = %d, want 2", len(segments))
	}
	if segments[0].ID != "segment-0" {
		t.Fatalf("explicit ID overwritten: %q", segments[0].ID)
	}
	if segments[1].ID == "" {
		t.Fatal("Replace left a segment without an ID")
	}
}

func TestStoreListReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Add("text")

	snapshot := store.List()
	snapshot[0].Text = "mutated"

	if store.List()[0].Text != "text" {
		t.Fatal("mutating a List snapshot changed the store")
	}
}

func TestStoreReset(t *testing.T) {
	store := NewStore()
	store.Add("one")
	store.Reset()
	if store.Len() != 0 {
		t.Fatalf("Len = %d after reset, want 0", store.Len())
	}
}

func TestStoreSortByStart(t *testing.T) {
	store := NewStore()
	store.Replace([]Segment{
		{ID: "b", StartTime: 5, EndTime: 6, Text: "later"},
		{ID: "a", StartTime: 1, EndTime: 2, Text: "earlier"},
	})
	store.SortByStart()

	segments := store.List()
	if segments[0].ID != "a" || segments[1].ID != "b" {
		t.Fatalf("order after sort: %q, %q", segments[0].ID, segments[1].ID)
	}
}
