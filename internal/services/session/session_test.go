package session

import (
	"sync"
	"testing"

	"github.com/killallgit/labeler-api/internal/models"
	"github.com/killallgit/labeler-api/internal/services/draft"
	"github.com/killallgit/labeler-api/internal/services/playback"
	apperrors "github.com/killallgit/labeler-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New("sample1.wav", "sample1", "/audio/sample1.wav", 60.0, 2)
}

func dragRegion(t *testing.T, s *Session, start, end float64, speakerID string) models.Region {
	t.Helper()

	require.True(t, s.BeginDrag(start))
	s.UpdateDrag(end)
	require.NotNil(t, s.EndDrag())

	region, err := s.ConfirmDraft(speakerID)
	require.NoError(t, err)
	return region
}

func TestSession_DragConfirmFlow(t *testing.T) {
	s := newTestSession(t)

	require.True(t, s.BeginDrag(2.0))
	s.UpdateDrag(5.0)

	req := s.EndDrag()
	require.NotNil(t, req)
	assert.Equal(t, draft.StatePendingSpeakerChoice, s.DraftState())

	region, err := s.ConfirmDraft("speaker_0")
	require.NoError(t, err)
	assert.Equal(t, "Speaker 0", region.SpeakerName, "display name copied at commit time")

	list := s.ListRegions()
	require.Len(t, list, 1)
	assert.Equal(t, region.ID, list[0].ID)
}

func TestSession_ConfirmUnknownSpeaker(t *testing.T) {
	s := newTestSession(t)

	s.BeginDrag(2.0)
	s.UpdateDrag(5.0)
	require.NotNil(t, s.EndDrag())

	_, err := s.ConfirmDraft("speaker_9")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	assert.Equal(t, draft.StatePendingSpeakerChoice, s.DraftState(),
		"draft stays pending; the client can pick another speaker")

	s.CancelDraft()
	assert.Equal(t, draft.StateIdle, s.DraftState())
}

func TestSession_DragTimesClampedToTimeline(t *testing.T) {
	s := newTestSession(t)

	require.True(t, s.BeginDrag(-3.0))
	s.UpdateDrag(120.0)
	require.NotNil(t, s.EndDrag())

	region, err := s.ConfirmDraft("speaker_0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, region.Start)
	assert.Equal(t, 60.0, region.End)
}

func TestSession_RenameDoesNotTouchCommittedRegions(t *testing.T) {
	s := newTestSession(t)
	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")

	require.NoError(t, s.Roster().Rename("speaker_0", "Alice"))

	list := s.ListRegions()
	require.Len(t, list, 1)
	assert.Equal(t, "Speaker 0", list[0].SpeakerName, "regions keep the commit-time name copy")
	_ = region
}

func TestSession_DeleteStopsLoopOnLoopingRegion(t *testing.T) {
	s := newTestSession(t)
	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")

	require.True(t, s.ToggleRegionLoop(region.ID))
	require.Equal(t, region.ID, s.LoopingRegionID())

	assert.True(t, s.DeleteRegion(region.ID))
	assert.Empty(t, s.LoopingRegionID())
	assert.Empty(t, s.ListRegions())

	assert.False(t, s.DeleteRegion(region.ID), "second delete is a no-op")
}

func TestSession_ToggleRegionLoop(t *testing.T) {
	s := newTestSession(t)
	a := dragRegion(t, s, 2.0, 5.0, "speaker_0")
	b := dragRegion(t, s, 10.0, 15.0, "speaker_1")

	require.True(t, s.ToggleRegionLoop(a.ID))
	assert.Equal(t, a.ID, s.LoopingRegionID())

	// Same region toggles off
	assert.False(t, s.ToggleRegionLoop(a.ID))
	assert.Empty(t, s.LoopingRegionID())

	// Different region replaces the loop
	require.True(t, s.ToggleRegionLoop(a.ID))
	require.True(t, s.ToggleRegionLoop(b.ID))
	assert.Equal(t, b.ID, s.LoopingRegionID())

	// Unknown region is a no-op
	assert.False(t, s.ToggleRegionLoop("no-such-region"))
}

func TestSession_LoopReseeksThroughReportedPositions(t *testing.T) {
	s := newTestSession(t)
	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")

	require.True(t, s.ToggleRegionLoop(region.ID))
	s.DrainCommands() // discard the initial seek+play

	for _, position := range []float64{2.0, 3.0, 4.9, 5.0, 5.1} {
		s.ReportPosition(position)
	}

	commands := s.DrainCommands()
	require.Len(t, commands, 1, "exactly one reseek at the boundary")
	assert.Equal(t, playback.CommandSeek, commands[0].Type)
	assert.Equal(t, 2.0, commands[0].Time)
}

func TestSession_ClearAll(t *testing.T) {
	s := newTestSession(t)
	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")
	dragRegion(t, s, 10.0, 15.0, "speaker_1")
	require.True(t, s.ToggleRegionLoop(region.ID))

	var changes []ChangeKind
	sub := s.Subscribe(func(c Change) {
		changes = append(changes, c.Kind)
	})
	defer sub.Unsubscribe()

	s.ClearAll()

	assert.Empty(t, s.ListRegions())
	assert.Empty(t, s.LoopingRegionID())
	assert.Equal(t, draft.StateIdle, s.DraftState())
	assert.Equal(t, []ChangeKind{ChangeLoop, ChangeRegions}, changes,
		"clearing announces the stopped loop before the region wipe")

	changes = nil
	s.ClearAll()
	assert.Equal(t, []ChangeKind{ChangeRegions}, changes,
		"no loop change when nothing was looping")
}

func TestSession_ConcurrentPositionAndLoopToggle(t *testing.T) {
	s := newTestSession(t)
	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")

	// Playhead reports and loop toggles arrive on separate HTTP requests;
	// both paths mutate coordinator state and must serialize.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.ReportPosition(4.9)
			s.ReportPosition(5.1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.ToggleRegionLoop(region.ID)
		}
	}()
	wg.Wait()

	// An even number of toggles always lands back at no loop
	assert.Empty(t, s.LoopingRegionID())
	assert.Equal(t, playback.StateStopped, s.Snapshot().PlaybackState)
}

func TestSession_ExportAnnotation(t *testing.T) {
	s := newTestSession(t)
	dragRegion(t, s, 2.0, 4.0, "speaker_1")
	dragRegion(t, s, 1.0, 3.5, "speaker_0")

	got := s.ExportAnnotation()
	want := "SPEAKER sample1 1 1.00 2.50 <NA> <NA> speaker_0 <NA>\n" +
		"SPEAKER sample1 1 2.00 2.00 <NA> <NA> speaker_1 <NA>"
	assert.Equal(t, want, got)
}

func TestSession_ApplyImport(t *testing.T) {
	s := newTestSession(t)
	dragRegion(t, s, 50.0, 55.0, "speaker_0") // replaced by the import

	content := `SPEAKER sample1 1 1.00 2.50 <NA> <NA> speaker_0 <NA>
SPEAKER sample1 1 2.00 2.00 <NA> <NA> speaker_7 <NA>
SPEAKER sample1 1 3.00 0.05 <NA> <NA> speaker_0 <NA>
garbage line`

	result, err := s.ApplyImport(s.Generation(), content)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped, "sub-minimum segment dropped by the store")
	assert.Len(t, result.Errors, 1, "malformed line surfaced as a diagnostic")

	list := s.ListRegions()
	require.Len(t, list, 2)
	assert.Equal(t, "Speaker 0", list[0].SpeakerName, "known roster speaker mapped to display name")
	assert.Equal(t, "speaker_7", list[1].SpeakerName, "unknown speaker kept as placeholder")

	_, ok := s.Roster().Get("speaker_7")
	assert.True(t, ok, "imported speakers are added to the roster")
}

func TestSession_ApplyImportStaleGeneration(t *testing.T) {
	s := newTestSession(t)
	staleGen := s.Generation()

	s.Rebind("sample2.wav", "sample2", "/audio/sample2.wav", 30.0)

	_, err := s.ApplyImport(staleGen, "SPEAKER sample1 1 1.00 2.50 <NA> <NA> speaker_0 <NA>")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))
	assert.Empty(t, s.ListRegions(), "stale load result discarded")
}

func TestSession_Rebind(t *testing.T) {
	s := newTestSession(t)
	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")
	require.True(t, s.ToggleRegionLoop(region.ID))
	gen := s.Generation()

	s.Rebind("sample2.wav", "sample2", "/audio/sample2.wav", 30.0)

	assert.Equal(t, gen+1, s.Generation())
	assert.Equal(t, "sample2", s.FileID())
	assert.Equal(t, 30.0, s.Duration())
	assert.Empty(t, s.ListRegions())
	assert.Empty(t, s.LoopingRegionID())
	assert.Empty(t, s.DrainCommands(), "old engine's queued commands dropped")
}

func TestSession_ChangeNotifications(t *testing.T) {
	s := newTestSession(t)

	var changes []ChangeKind
	sub := s.Subscribe(func(c Change) {
		changes = append(changes, c.Kind)
	})
	defer sub.Unsubscribe()

	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")

	// End-drag and confirm both notified, and by the time the observer ran
	// the mutation was already visible
	assert.Contains(t, changes, ChangeDraft)
	assert.Contains(t, changes, ChangeRegions)

	changes = nil
	require.NoError(t, s.ResizeRegion(region.ID, 2.0, 8.0))
	assert.Equal(t, []ChangeKind{ChangeRegions}, changes)

	changes = nil
	s.DeleteRegion(region.ID)
	assert.Equal(t, []ChangeKind{ChangeRegions}, changes)
}

func TestSession_ReentrantObserverMutation(t *testing.T) {
	s := newTestSession(t)

	// An observer that reacts to the first commit by deleting the region:
	// commit/resize/remove may be invoked from within a reaction to a
	// previous change.
	var fired int
	sub := s.Subscribe(func(c Change) {
		if c.Kind != ChangeRegions {
			return
		}
		fired++
		if fired == 1 {
			for _, region := range s.ListRegions() {
				s.DeleteRegion(region.ID)
			}
		}
	})
	defer sub.Unsubscribe()

	dragRegion(t, s, 2.0, 5.0, "speaker_0")
	assert.Empty(t, s.ListRegions())
	assert.Equal(t, 2, fired, "nested mutation produced its own notification")
}

func TestSession_SnapshotReflectsMutationsImmediately(t *testing.T) {
	s := newTestSession(t)

	region := dragRegion(t, s, 2.0, 5.0, "speaker_0")
	dragRegion(t, s, 4.0, 8.0, "speaker_1")

	snap := s.Snapshot()
	assert.Equal(t, s.ID, snap.ID)
	assert.Len(t, snap.Regions, 2)
	require.Len(t, snap.Overlaps, 1)
	assert.Equal(t, 4.0, snap.Overlaps[0].Start)
	assert.Equal(t, 5.0, snap.Overlaps[0].End)
	assert.Len(t, snap.Speakers, 2)
	assert.Nil(t, snap.Draft)

	require.True(t, s.ToggleRegionLoop(region.ID))
	snap = s.Snapshot()
	assert.Equal(t, region.ID, snap.LoopingRegionID)
	assert.Equal(t, playback.StatePlayingLoop, snap.PlaybackState)
}
