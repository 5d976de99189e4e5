package regions

import "github.com/killallgit/labeler-api/internal/models"

// Store is the sole authority over the committed region collection. It
// guarantees identifier uniqueness and per-entry validity; callers never see
// live references into its state, only snapshots.
type Store interface {
	// Commit validates and inserts a new speaker-tagged region, assigning a
	// fresh unique ID. The span must exceed models.MinRegionLength.
	Commit(start, end float64, speakerID, speakerName string) (models.Region, error)

	// Resize replaces a region's bounds, re-validating the minimum length
	Resize(id string, newStart, newEnd float64) error

	// Remove deletes a region, reporting whether it was present. Removing an
	// unknown ID is a no-op, not an error.
	Remove(id string) bool

	// Clear removes all regions unconditionally
	Clear()

	// List returns a snapshot of all regions ordered by ascending start time
	List() []models.Region

	// Get returns a copy of the region with the given ID
	Get(id string) (models.Region, bool)

	// Count returns the number of committed regions
	Count() int

	// Overlaps computes every positive-width pairwise intersection between
	// committed regions, ordered by ascending overlap start.
	Overlaps() []models.Overlap
}
