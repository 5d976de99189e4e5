// Package session composes the region store, draft controller, playback
// coordinator, speaker roster and annotation codec into one labeling session
// per audio file, and is the only surface the HTTP layer talks to.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/labeler-api/internal/models"
	"github.com/killallgit/labeler-api/internal/services/draft"
	"github.com/killallgit/labeler-api/internal/services/playback"
	"github.com/killallgit/labeler-api/internal/services/regions"
	"github.com/killallgit/labeler-api/internal/services/speakers"
	apperrors "github.com/killallgit/labeler-api/pkg/errors"
	"github.com/killallgit/labeler-api/pkg/rttm"
)

// Session is a single labeling session bound to one audio file. All mutating
// operations are serialized by an internal lock and every mutation fires
// change notifications synchronously after it is applied, so a read that
// follows a returned mutation always reflects it.
type Session struct {
	ID string

	mu         sync.Mutex
	fileName   string
	fileID     string // base name without extension
	audioPath  string
	duration   float64
	generation uint64
	lastAccess time.Time

	store       regions.Store
	draft       *draft.Controller
	engine      *playback.RemoteEngine
	coordinator *playback.Coordinator
	roster      *speakers.Roster

	notifier notifier
}

// New creates a session bound to an audio file. duration may be zero when
// probing failed; playback stays a no-op until the client reports one.
func New(fileName, fileID, audioPath string, duration float64, defaultSpeakers int) *Session {
	store := regions.NewStore()
	engine := playback.NewRemoteEngine()
	if duration > 0 {
		engine.SetDuration(duration)
	}

	return &Session{
		ID:          uuid.New().String(),
		fileName:    fileName,
		fileID:      fileID,
		audioPath:   audioPath,
		duration:    duration,
		lastAccess:  time.Now(),
		store:       store,
		draft:       draft.NewController(store),
		engine:      engine,
		coordinator: playback.NewCoordinator(store, engine),
		roster:      speakers.NewRoster(defaultSpeakers),
	}
}

// Roster returns the session's speaker roster
func (s *Session) Roster() *speakers.Roster {
	return s.roster
}

// FileID returns the base name the annotation will be exported under
func (s *Session) FileID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileID
}

// AudioPath returns the path of the bound audio file
func (s *Session) AudioPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioPath
}

// Duration returns the bound audio's length in seconds
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Generation identifies the currently bound audio file. Asynchronous loads
// capture it before their I/O and pass it back to ApplyImport so results for
// a file the session has moved away from are discarded.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Subscribe registers a change observer. Observers run synchronously after
// the mutation that triggered them has been applied and the session lock
// released, so calling back into the session from an observer is safe.
func (s *Session) Subscribe(fn func(Change)) playback.Subscription {
	return s.notifier.subscribe(fn)
}

func (s *Session) touch() {
	s.lastAccess = time.Now()
}

// clampTime confines a pointer time to the audio timeline. Must hold s.mu.
func (s *Session) clampTime(t float64) float64 {
	if t < 0 {
		return 0
	}
	if s.duration > 0 && t > s.duration {
		return s.duration
	}
	return t
}

// BeginDrag starts a drag gesture anchored at the given time
func (s *Session) BeginDrag(anchorTime float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.draft.BeginDrag(s.clampTime(anchorTime))
}

// UpdateDrag moves the free edge of the in-flight draft
func (s *Session) UpdateDrag(currentTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.draft.UpdateDrag(s.clampTime(currentTime))
}

// EndDrag finishes the drag gesture. A viable draft yields a speaker-choice
// request; shorter drags are discarded silently.
func (s *Session) EndDrag() *draft.SpeakerChoiceRequest {
	s.mu.Lock()
	req := s.draft.EndDrag()
	s.mu.Unlock()

	if req != nil {
		s.notifier.notify(Change{Kind: ChangeDraft})
	}
	return req
}

// Draft returns the visible draft bounds, if any
func (s *Session) Draft() (models.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Draft()
}

// DraftState returns the draft controller's lifecycle state
func (s *Session) DraftState() draft.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.State()
}

// ConfirmDraft assigns the given roster speaker to the pending draft and
// commits it as a region. The speaker's display name is copied onto the
// region at commit time and is not updated by later renames.
func (s *Session) ConfirmDraft(speakerID string) (models.Region, error) {
	speaker, ok := s.roster.Get(speakerID)
	if !ok {
		return models.Region{}, apperrors.Newf(apperrors.ErrCodeNotFound, "unknown speaker %s", speakerID)
	}

	s.mu.Lock()
	s.touch()
	region, err := s.draft.Confirm(speaker.ID, speaker.Name)
	s.mu.Unlock()

	if err != nil {
		return models.Region{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "draft rejected")
	}

	s.notifier.notify(Change{Kind: ChangeRegions})
	return region, nil
}

// CancelDraft discards the in-flight draft with no residual state
func (s *Session) CancelDraft() {
	s.mu.Lock()
	s.touch()
	s.draft.Cancel()
	s.mu.Unlock()

	s.notifier.notify(Change{Kind: ChangeDraft})
}

// ListRegions returns a snapshot of committed regions ordered by start
func (s *Session) ListRegions() []models.Region {
	return s.store.List()
}

// Overlaps returns the pairwise intersections of committed regions
func (s *Session) Overlaps() []models.Overlap {
	return s.store.Overlaps()
}

// ResizeRegion replaces a region's bounds, re-validating the minimum length
func (s *Session) ResizeRegion(id string, newStart, newEnd float64) error {
	s.mu.Lock()
	s.touch()
	err := s.store.Resize(id, s.clampTime(newStart), s.clampTime(newEnd))
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notifier.notify(Change{Kind: ChangeRegions})
	return nil
}

// DeleteRegion removes a region. Deleting the region currently looping stops
// the loop first. Removing an unknown ID is a silent no-op.
func (s *Session) DeleteRegion(id string) bool {
	s.mu.Lock()
	s.touch()
	loopStopped := false
	if s.coordinator.LoopingRegionID() == id {
		s.coordinator.StopRegionLoop()
		loopStopped = true
	}
	removed := s.store.Remove(id)
	s.mu.Unlock()

	if loopStopped {
		s.notifier.notify(Change{Kind: ChangeLoop})
	}
	if removed {
		s.notifier.notify(Change{Kind: ChangeRegions})
	}
	return removed
}

// ClearAll removes every region and exits any active loop
func (s *Session) ClearAll() {
	s.mu.Lock()
	s.touch()
	loopStopped := s.coordinator.LoopingRegionID() != ""
	s.coordinator.StopRegionLoop()
	s.draft.Cancel()
	s.store.Clear()
	s.mu.Unlock()

	if loopStopped {
		s.notifier.notify(Change{Kind: ChangeLoop})
	}
	s.notifier.notify(Change{Kind: ChangeRegions})
}

// PlayPause toggles free playback, exiting loop mode first if needed
func (s *Session) PlayPause() {
	s.mu.Lock()
	s.touch()
	s.coordinator.PlayPause()
	s.mu.Unlock()

	s.notifier.notify(Change{Kind: ChangeLoop})
}

// StopPlayback halts playback and resets the playhead
func (s *Session) StopPlayback() {
	s.mu.Lock()
	s.touch()
	s.coordinator.Stop()
	s.mu.Unlock()

	s.notifier.notify(Change{Kind: ChangeLoop})
}

// ToggleRegionLoop starts loop playback over the region, or stops the loop
// when the region is already looping. Returns whether a loop is active for
// the region afterwards. The same-region toggle-off policy lives here, not
// in the coordinator, because it needs the previous loop identity.
func (s *Session) ToggleRegionLoop(regionID string) bool {
	s.mu.Lock()
	s.touch()
	var looping bool
	if s.coordinator.LoopingRegionID() == regionID {
		s.coordinator.StopRegionLoop()
	} else {
		looping = s.coordinator.PlayRegionLoop(regionID)
	}
	s.mu.Unlock()

	s.notifier.notify(Change{Kind: ChangeLoop})
	return looping
}

// LoopingRegionID returns the region being looped, or "" when none
func (s *Session) LoopingRegionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinator.LoopingRegionID()
}

// ReportPosition feeds a client playhead update through the engine, which
// may trigger the loop watcher. The loop watcher mutates coordinator state,
// so the fan-out runs under the session lock like every other mutation; the
// watcher only takes the store and engine locks, never this one.
func (s *Session) ReportPosition(seconds float64) {
	s.mu.Lock()
	s.touch()
	s.engine.ReportPosition(seconds)
	s.mu.Unlock()
}

// ReportDuration lets the client provide the audio length when server-side
// probing was unavailable.
func (s *Session) ReportDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	s.mu.Lock()
	s.touch()
	s.duration = seconds
	s.engine.SetDuration(seconds)
	s.mu.Unlock()
}

// DrainCommands returns queued transport commands for the client player
func (s *Session) DrainCommands() []playback.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DrainCommands()
}

// ExportAnnotation encodes the committed region set as RTTM text
func (s *Session) ExportAnnotation() string {
	list := s.store.List()
	segments := make([]rttm.Segment, 0, len(list))
	for _, region := range list {
		segments = append(segments, rttm.Segment{
			Start:       region.Start,
			End:         region.End,
			SpeakerID:   region.SpeakerID,
			SpeakerName: region.SpeakerName,
		})
	}
	return rttm.Encode(s.FileID(), segments)
}

// ImportResult reports what an annotation import applied
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []rttm.LineError `json:"errors,omitempty"`
}

// ApplyImport decodes annotation text and commits its segments, replacing
// the current region set. Speakers referenced by the annotation but missing
// from the roster are created as placeholders; known speakers contribute
// their display names. The generation argument must match the session's
// current generation: a load that raced with a Rebind is discarded.
func (s *Session) ApplyImport(generation uint64, content string) (ImportResult, error) {
	segments, lineErrs := rttm.Decode(content)

	for _, seg := range segments {
		s.roster.Ensure(seg.SpeakerID)
	}
	segments = rttm.MapSpeakers(segments, s.roster.Names())

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return ImportResult{}, apperrors.New(apperrors.ErrCodeConflict, "session no longer bound to the loaded file")
	}
	s.touch()
	loopStopped := s.coordinator.LoopingRegionID() != ""
	s.coordinator.StopRegionLoop()
	s.draft.Cancel()
	s.store.Clear()

	result := ImportResult{Errors: lineErrs}
	for _, seg := range segments {
		if _, err := s.store.Commit(seg.Start, seg.End, seg.SpeakerID, seg.SpeakerName); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}
	s.mu.Unlock()

	if loopStopped {
		s.notifier.notify(Change{Kind: ChangeLoop})
	}
	s.notifier.notify(Change{Kind: ChangeRegions})
	return result, nil
}

// Rebind switches the session to a different audio file: all regions, the
// draft and any loop are dropped, the engine resets, and the generation
// advances so pending loads against the old file cannot apply.
func (s *Session) Rebind(fileName, fileID, audioPath string, duration float64) {
	s.mu.Lock()
	s.touch()
	s.generation++
	s.fileName = fileName
	s.fileID = fileID
	s.audioPath = audioPath
	s.duration = duration

	loopStopped := s.coordinator.LoopingRegionID() != ""
	s.coordinator.StopRegionLoop()
	s.coordinator.Stop()
	s.draft.Cancel()
	s.store.Clear()

	s.engine = playback.NewRemoteEngine()
	if duration > 0 {
		s.engine.SetDuration(duration)
	}
	s.coordinator = playback.NewCoordinator(s.store, s.engine)
	s.mu.Unlock()

	if loopStopped {
		s.notifier.notify(Change{Kind: ChangeLoop})
	}
	s.notifier.notify(Change{Kind: ChangeRegions})
}

// Snapshot is a read-only view of the whole session for the client
type Snapshot struct {
	ID              string           `json:"id"`
	FileName        string           `json:"fileName"`
	FileID          string           `json:"fileId"`
	Duration        float64          `json:"duration"`
	DraftState      draft.State      `json:"draftState"`
	Draft           *models.Draft    `json:"draft,omitempty"`
	PlaybackState   playback.State   `json:"playbackState"`
	LoopingRegionID string           `json:"loopingRegionId,omitempty"`
	Regions         []models.Region  `json:"regions"`
	Overlaps        []models.Overlap `json:"overlaps"`
	Speakers        []models.Speaker `json:"speakers"`
	SelectedSpeaker string           `json:"selectedSpeaker"`
}

// Snapshot captures the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		ID:              s.ID,
		FileName:        s.fileName,
		FileID:          s.fileID,
		Duration:        s.duration,
		DraftState:      s.draft.State(),
		PlaybackState:   s.coordinator.State(),
		LoopingRegionID: s.coordinator.LoopingRegionID(),
	}
	if d, ok := s.draft.Draft(); ok {
		snap.Draft = &d
	}
	s.mu.Unlock()

	snap.Regions = s.store.List()
	snap.Overlaps = s.store.Overlaps()
	snap.Speakers = s.roster.List()
	snap.SelectedSpeaker = s.roster.Selected()
	return snap
}
