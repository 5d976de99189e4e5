package regions

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/killallgit/labeler-api/internal/models"
)

// memoryStore implements Store with an owned, mutex-guarded collection.
// The session core is single-threaded per session, but the HTTP surface may
// touch different sessions concurrently, so the guard is kept cheap and local.
type memoryStore struct {
	mu      sync.RWMutex
	regions map[string]models.Region
	order   []string // insertion order, for deterministic overlap tie-breaks
}

// NewStore creates an empty in-memory region store
func NewStore() Store {
	return &memoryStore{
		regions: make(map[string]models.Region),
	}
}

func validateSpan(start, end float64) error {
	if start < 0 || end < start {
		return ErrInvalidBounds
	}
	if !models.ExceedsMinLength(start, end) {
		return ErrRegionTooShort
	}
	return nil
}

// Commit validates and inserts a new region with a fresh unique ID
func (s *memoryStore) Commit(start, end float64, speakerID, speakerName string) (models.Region, error) {
	if err := validateSpan(start, end); err != nil {
		return models.Region{}, err
	}

	region := models.Region{
		ID:          uuid.New().String(),
		Start:       start,
		End:         end,
		SpeakerID:   speakerID,
		SpeakerName: speakerName,
	}

	s.mu.Lock()
	s.regions[region.ID] = region
	s.order = append(s.order, region.ID)
	s.mu.Unlock()

	return region, nil
}

// Resize replaces a region's bounds, re-validating the minimum length
func (s *memoryStore) Resize(id string, newStart, newEnd float64) error {
	if err := validateSpan(newStart, newEnd); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	region, ok := s.regions[id]
	if !ok {
		return ErrRegionNotFound
	}

	region.Start = newStart
	region.End = newEnd
	s.regions[id] = region
	return nil
}

// Remove deletes a region, reporting whether it was present
func (s *memoryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.regions[id]; !ok {
		return false
	}

	delete(s.regions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes all regions unconditionally
func (s *memoryStore) Clear() {
	s.mu.Lock()
	s.regions = make(map[string]models.Region)
	s.order = nil
	s.mu.Unlock()
}

// List returns a snapshot ordered by ascending start time
func (s *memoryStore) List() []models.Region {
	s.mu.RLock()
	snapshot := make([]models.Region, 0, len(s.regions))
	for _, id := range s.order {
		snapshot = append(snapshot, s.regions[id])
	}
	s.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Start < snapshot[j].Start
	})
	return snapshot
}

// Get returns a copy of the region with the given ID
func (s *memoryStore) Get(id string) (models.Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	region, ok := s.regions[id]
	return region, ok
}

// Count returns the number of committed regions
func (s *memoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.regions)
}

// Overlaps computes every positive-width pairwise intersection. O(n²) over
// the committed set; region counts are tens per file, not millions.
func (s *memoryStore) Overlaps() []models.Overlap {
	s.mu.RLock()
	inOrder := make([]models.Region, 0, len(s.regions))
	for _, id := range s.order {
		inOrder = append(inOrder, s.regions[id])
	}
	s.mu.RUnlock()

	var overlaps []models.Overlap
	for i := 0; i < len(inOrder); i++ {
		for j := i + 1; j < len(inOrder); j++ {
			r1, r2 := inOrder[i], inOrder[j]

			overlapStart := r1.Start
			if r2.Start > overlapStart {
				overlapStart = r2.Start
			}
			overlapEnd := r1.End
			if r2.End < overlapEnd {
				overlapEnd = r2.End
			}

			if overlapStart < overlapEnd {
				overlaps = append(overlaps, models.Overlap{
					Start:   overlapStart,
					End:     overlapEnd,
					Regions: [2]models.Region{r1, r2},
				})
			}
		}
	}

	// Ascending by overlap start; the pairwise scan order breaks ties
	sort.SliceStable(overlaps, func(i, j int) bool {
		return overlaps[i].Start < overlaps[j].Start
	})
	return overlaps
}
