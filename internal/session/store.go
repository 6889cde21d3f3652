package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Segment is one editable subtitle unit.
type Segment struct {
	ID                    string  `json:"id"`
	Text                  string  `json:"text"`
	Translation           string  `json:"translation,omitempty"`
	TranslationConfidence float64 `json:"translationConfidence,omitempty"`
	StartTime             float64 `json:"startTime"`
	EndTime               float64 `json:"endTime"`
	Confidence            float64 `json:"confidence"`
}

// Update carries the editable fields of a segment. Nil fields are left
// untouched.
type Update struct {
	Text        *string
	Translation *string
	StartTime   *float64
	EndTime     *float64
}

// Store is the mutable segment list behind the editing endpoints.
type Store struct {
	mu       sync.Mutex
	segments []Segment
}

// NewStore returns an empty segment store.
func NewStore() *Store {
	return &Store{}
}

// List returns a copy of the current segments in timeline order.
func (s *Store) List() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len reports the current segment count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segments)
}

// Replace swaps the whole working set, e.g. after a fresh transcription.
// Segments without an ID are assigned one.
func (s *Store) Replace(segments []Segment) {
	next := make([]Segment, len(segments))
	copy(next, segments)
	for i := range next {
		if strings.TrimSpace(next[i].ID) == "" {
			next[i].ID = uuid.NewString()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = next
}

// Reset clears the working set.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = nil
}

// Add appends a manually created segment after the current last one and
// returns it. The new segment gets a three second window starting where the
// previous segment ended.
func (s *Store) Add(text string) Segment {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0.0
	if n := len(s.segments); n > 0 {
		start = s.segments[n-1].EndTime
	}
	segment := Segment{
		ID:         uuid.NewString(),
		Text:       text,
		StartTime:  start,
		EndTime:    start + 3,
		Confidence: 1.0,
	}
	s.segments = append(s.segments, segment)
	return segment
}

// Apply updates one segment by ID.
func (s *Store) Apply(id string, update Update) (Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.segments {
		if s.segments[i].ID != id {
			continue
		}
		if update.Text != nil {
			s.segments[i].Text = *update.Text
		}
		if update.Translation != nil {
			s.segments[i].Translation = *update.Translation
		}
		if update.StartTime != nil {
			s.segments[i].StartTime = *update.StartTime
		}
		if update.EndTime != nil {
			s.segments[i].EndTime = *update.EndTime
		}
		return s.segments[i], nil
	}
	return Segment{}, fmt.Errorf("segment %q not found", id)
}

// Delete removes one segment by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.segments {
		if s.segments[i].ID == id {
			s.segments = append(s.segments[:i], s.segments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("segment %q not found", id)
}

// SortByStart orders the working set by start time. Editing can move a
// segment past its neighbours; export wants timeline order.
func (s *Store) SortByStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(s.segments, func(i, j int) bool {
		return s.segments[i].StartTime < s.segments[j].StartTime
	})
}
