// Package draft governs the single in-flight, unconfirmed region during a
// pointer-drag gesture. Modeling the gesture as an explicit state machine
// makes invalid transitions (a second simultaneous drag, a confirm with no
// pending draft) unrepresentable rather than merely unlikely.
package draft

import (
	"github.com/killallgit/labeler-api/internal/models"
	"github.com/killallgit/labeler-api/internal/services/regions"
)

// State identifies the controller's position in the drag lifecycle
type State string

const (
	// StateIdle means no draft exists
	StateIdle State = "idle"
	// StateDragging means a drag is in progress and bounds follow the pointer
	StateDragging State = "dragging"
	// StatePendingSpeakerChoice means the drag ended above the minimum length
	// and the draft is waiting for a speaker assignment
	StatePendingSpeakerChoice State = "pending_speaker_choice"
)

// SpeakerChoiceRequest is emitted when a drag ends with a viable draft. It
// carries the draft bounds plus an anchor hint (the draft midpoint) for
// positioning a selection popup.
type SpeakerChoiceRequest struct {
	Draft      models.Draft `json:"draft"`
	AnchorTime float64      `json:"anchorTime"`
}

// Controller manages the lifecycle of at most one draft region at a time.
// Not safe for concurrent use; the owning session serializes access.
type Controller struct {
	store  regions.Store
	state  State
	anchor float64
	draft  models.Draft
}

// NewController creates an idle draft controller committing into the store
func NewController(store regions.Store) *Controller {
	return &Controller{store: store, state: StateIdle}
}

// State returns the controller's current lifecycle state
func (c *Controller) State() State {
	return c.state
}

// Draft returns the current draft bounds. ok is false while Idle or while a
// drag has not yet exceeded the minimum length (no visible draft yet).
func (c *Controller) Draft() (models.Draft, bool) {
	if c.state == StateIdle || !models.ExceedsMinLength(c.draft.Start, c.draft.End) {
		return models.Draft{}, false
	}
	return c.draft, true
}

// BeginDrag starts a new drag anchored at the given time. Starting a drag
// while one is already in flight is ignored: at most one draft exists per
// session, which is the linearizability guarantee for region creation.
func (c *Controller) BeginDrag(anchorTime float64) bool {
	if c.state != StateIdle {
		return false
	}

	c.state = StateDragging
	c.anchor = anchorTime
	c.draft = models.Draft{Start: anchorTime, End: anchorTime}
	return true
}

// UpdateDrag moves the free edge of the draft. The bounds are always the
// ordered pair of the anchor and the current pointer time, so dragging left
// of the anchor works the same as dragging right.
func (c *Controller) UpdateDrag(currentTime float64) {
	if c.state != StateDragging {
		return
	}

	if currentTime < c.anchor {
		c.draft = models.Draft{Start: currentTime, End: c.anchor}
	} else {
		c.draft = models.Draft{Start: c.anchor, End: currentTime}
	}
}

// EndDrag finishes the gesture. A draft above the minimum length moves to
// PendingSpeakerChoice and a speaker-choice request is returned; anything
// shorter is discarded silently and the controller returns to Idle.
func (c *Controller) EndDrag() *SpeakerChoiceRequest {
	if c.state != StateDragging {
		return nil
	}

	if !models.ExceedsMinLength(c.draft.Start, c.draft.End) {
		c.reset()
		return nil
	}

	c.state = StatePendingSpeakerChoice
	return &SpeakerChoiceRequest{
		Draft:      c.draft,
		AnchorTime: (c.draft.Start + c.draft.End) / 2,
	}
}

// Confirm assigns a speaker to the pending draft and commits it into the
// region store. The controller returns to Idle whether the commit succeeds
// or the store rejects it; a rejection surfaces as the returned error.
func (c *Controller) Confirm(speakerID, speakerName string) (models.Region, error) {
	if c.state != StatePendingSpeakerChoice {
		return models.Region{}, ErrNoPendingDraft
	}

	pending := c.draft
	c.reset()

	return c.store.Commit(pending.Start, pending.End, speakerID, speakerName)
}

// Cancel discards the draft from any non-idle state with no residual state
// and no store mutation.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.anchor = 0
	c.draft = models.Draft{}
}
