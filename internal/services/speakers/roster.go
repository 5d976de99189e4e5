// Package speakers manages a labeling session's speaker roster. Regions hold
// a speaker ID plus a display-name copy taken at commit time; the roster owns
// the speaker lifecycle.
package speakers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/killallgit/labeler-api/internal/models"
)

// palette cycles across speakers in creation order
var palette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b",
	"#8b5cf6", "#ec4899", "#06b6d4", "#84cc16",
}

var (
	// ErrSpeakerNotFound is returned when a speaker ID is unknown
	ErrSpeakerNotFound = errors.New("speaker not found")

	// ErrLastSpeaker is returned when removing the only remaining speaker
	ErrLastSpeaker = errors.New("roster must keep at least one speaker")
)

// Roster is an ordered speaker list with a current selection
type Roster struct {
	mu       sync.RWMutex
	speakers []models.Speaker
	selected string
	next     int // next sequential id, never reused after a removal
}

// NewRoster creates a roster pre-populated with the given number of default
// speakers (at least one), the first selected.
func NewRoster(defaultCount int) *Roster {
	if defaultCount < 1 {
		defaultCount = 1
	}

	r := &Roster{}
	for i := 0; i < defaultCount; i++ {
		r.speakers = append(r.speakers, models.Speaker{
			ID:    fmt.Sprintf("speaker_%d", i),
			Name:  fmt.Sprintf("Speaker %d", i),
			Color: palette[i%len(palette)],
		})
	}
	r.next = defaultCount
	r.selected = r.speakers[0].ID
	return r
}

// List returns a snapshot of the roster in creation order
func (r *Roster) List() []models.Speaker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]models.Speaker, len(r.speakers))
	copy(snapshot, r.speakers)
	return snapshot
}

// Get returns a copy of the speaker with the given ID
func (r *Roster) Get(id string) (models.Speaker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.speakers {
		if s.ID == id {
			return s, true
		}
	}
	return models.Speaker{}, false
}

// Selected returns the currently selected speaker ID
func (r *Roster) Selected() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

// Select makes the given speaker the current selection
func (r *Roster) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.speakers {
		if s.ID == id {
			r.selected = id
			return nil
		}
	}
	return ErrSpeakerNotFound
}

// Add appends a new speaker with a sequential ID and the next palette color,
// and selects it.
func (r *Roster) Add() models.Speaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	speaker := models.Speaker{
		ID:    fmt.Sprintf("speaker_%d", r.next),
		Name:  fmt.Sprintf("Speaker %d", r.next),
		Color: palette[r.next%len(palette)],
	}
	r.next++
	r.speakers = append(r.speakers, speaker)
	r.selected = speaker.ID
	return speaker
}

// Ensure makes sure a speaker with the given ID exists, creating a
// placeholder entry when it doesn't. Used when importing annotations that
// reference speakers the roster has never seen.
func (r *Roster) Ensure(id string) models.Speaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.speakers {
		if s.ID == id {
			return s
		}
	}

	speaker := models.Speaker{
		ID:    id,
		Name:  id,
		Color: palette[r.next%len(palette)],
	}
	r.next++
	r.speakers = append(r.speakers, speaker)
	return speaker
}

// Rename changes a speaker's display name. Regions committed earlier keep
// the name they copied at commit time.
func (r *Roster) Rename(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.speakers {
		if s.ID == id {
			r.speakers[i].Name = name
			return nil
		}
	}
	return ErrSpeakerNotFound
}

// Remove deletes a speaker. The roster always keeps at least one entry, and
// deleting the selected speaker moves the selection to the first remaining.
func (r *Roster) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.speakers) <= 1 {
		return ErrLastSpeaker
	}

	for i, s := range r.speakers {
		if s.ID == id {
			r.speakers = append(r.speakers[:i], r.speakers[i+1:]...)
			if r.selected == id {
				r.selected = r.speakers[0].ID
			}
			return nil
		}
	}
	return ErrSpeakerNotFound
}

// Names returns a speaker ID to display name mapping for annotation import
func (r *Roster) Names() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make(map[string]string, len(r.speakers))
	for _, s := range r.speakers {
		names[s.ID] = s.Name
	}
	return names
}
