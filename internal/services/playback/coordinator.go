package playback

import (
	"log"

	"github.com/killallgit/labeler-api/internal/services/regions"
)

// State identifies the coordinator's playback mode
type State string

const (
	// StateStopped means no playback is active
	StateStopped State = "stopped"
	// StatePlayingFree means normal unbounded playback
	StatePlayingFree State = "playing"
	// StatePlayingLoop means playback confined to one region's bounds
	StatePlayingLoop State = "looping"
)

// Coordinator mediates between session requests and the audio engine for the
// two mutually exclusive playback modes: free playback and region-bounded
// loop playback. Unknown region IDs and a not-ready engine are silent no-ops
// throughout, since playback requests race with region deletion and file
// loading in normal operation.
type Coordinator struct {
	store  regions.Store
	engine Engine

	state        State
	loopRegionID string
	loopSub      Subscription

	// After a loop reseek, the engine may still deliver one or more stale
	// updates past the boundary before the seek takes effect. Reseeks are
	// suppressed until a position inside the region is observed again.
	awaitingReturn bool
}

// NewCoordinator creates a stopped coordinator reading regions from the store
func NewCoordinator(store regions.Store, engine Engine) *Coordinator {
	return &Coordinator{
		store:  store,
		engine: engine,
		state:  StateStopped,
	}
}

// State returns the current playback mode
func (c *Coordinator) State() State {
	return c.state
}

// LoopingRegionID returns the ID of the region being looped, or "" when no
// loop is active.
func (c *Coordinator) LoopingRegionID() string {
	return c.loopRegionID
}

// PlayPause toggles free playback. An active region loop is exited first:
// free playback and loop playback are mutually exclusive, and a free-play
// request always wins.
func (c *Coordinator) PlayPause() {
	if c.engine.Duration() == 0 {
		return
	}

	if c.state == StatePlayingLoop {
		c.StopRegionLoop()
	}

	if c.engine.IsPlaying() {
		if err := c.engine.Pause(); err != nil {
			log.Printf("playback: pause failed: %v", err)
			return
		}
		c.state = StateStopped
		return
	}

	if err := c.engine.Play(); err != nil {
		log.Printf("playback: play failed: %v", err)
		return
	}
	c.state = StatePlayingFree
}

// Stop halts the engine, resets the playhead to zero and cancels any active
// loop from any state.
func (c *Coordinator) Stop() {
	c.releaseLoop()

	if err := c.engine.Stop(); err != nil {
		log.Printf("playback: stop failed: %v", err)
	}
	c.state = StateStopped
}

// PlayRegionLoop starts bounded loop playback over the region with the given
// ID. An already-active loop (same region or another) is replaced. Reports
// whether a loop actually started.
func (c *Coordinator) PlayRegionLoop(regionID string) bool {
	region, ok := c.store.Get(regionID)
	if !ok {
		return false
	}
	if c.engine.Duration() == 0 {
		return false
	}

	// Exactly one watcher may be alive; release any previous one before the
	// new loop starts so no stray reseek tied to the old region can fire.
	c.releaseLoop()

	if err := c.engine.SeekTo(region.Start); err != nil {
		log.Printf("playback: seek to region %s failed: %v", regionID, err)
		return false
	}
	if err := c.engine.Play(); err != nil {
		log.Printf("playback: play for region %s failed: %v", regionID, err)
		return false
	}

	c.state = StatePlayingLoop
	c.loopRegionID = regionID
	c.awaitingReturn = false
	c.loopSub = c.engine.SubscribePosition(func(position float64) {
		c.onLoopPosition(regionID, position)
	})
	return true
}

// StopRegionLoop exits loop mode: the watcher is released, the engine pauses
// if it is playing, and the loop identifier clears. Free playback may still
// be started separately afterwards.
func (c *Coordinator) StopRegionLoop() {
	if c.state != StatePlayingLoop {
		return
	}

	c.releaseLoop()

	if c.engine.IsPlaying() {
		if err := c.engine.Pause(); err != nil {
			log.Printf("playback: pause on loop exit failed: %v", err)
		}
	}
	c.state = StateStopped
}

// onLoopPosition is the loop boundary watcher. The region bounds are read
// live from the store so edge resizes during a loop take effect immediately;
// a region deleted mid-loop ends the loop.
func (c *Coordinator) onLoopPosition(regionID string, position float64) {
	region, ok := c.store.Get(regionID)
	if !ok {
		c.StopRegionLoop()
		return
	}

	if c.awaitingReturn {
		if position < region.End {
			c.awaitingReturn = false
		}
		return
	}

	// >= rather than > so discrete update granularity can never play past
	// the end boundary
	if position >= region.End {
		c.awaitingReturn = true
		if err := c.engine.SeekTo(region.Start); err != nil {
			log.Printf("playback: loop reseek for region %s failed: %v", regionID, err)
		}
	}
}

func (c *Coordinator) releaseLoop() {
	if c.loopSub != nil {
		c.loopSub.Unsubscribe()
		c.loopSub = nil
	}
	c.loopRegionID = ""
	c.awaitingReturn = false
}
