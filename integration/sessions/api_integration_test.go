package sessions_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api"
	"github.com/killallgit/labeler-api/api/types"
	"github.com/killallgit/labeler-api/internal/database"
	"github.com/killallgit/labeler-api/internal/services/dataset"
	"github.com/killallgit/labeler-api/internal/services/session"
	"github.com/killallgit/labeler-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type IntegrationTestSuite struct {
	t      *testing.T
	deps   *types.Dependencies
	router *gin.Engine
}

func setupIntegrationTestSuite(t *testing.T) *IntegrationTestSuite {
	gin.SetMode(gin.TestMode)
	require.NoError(t, config.Init())

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.Migrate(), "Failed to migrate test database")

	libraryDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(libraryDir, "interview.wav"), []byte("fake audio"), 0644))

	storage, err := dataset.NewFilesystemStorage(libraryDir, t.TempDir())
	require.NoError(t, err)
	repository := dataset.NewRepository(db.DB)

	deps := &types.Dependencies{
		DB:              db,
		Sessions:        session.NewManager(0),
		Dataset:         dataset.NewService(storage, repository),
		Exports:         repository,
		DefaultSpeakers: 2,
	}
	t.Cleanup(deps.Sessions.Close)

	router := gin.New()
	router.Use(gin.Recovery())

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	cleanupInitialized := &sync.Once{}
	t.Cleanup(func() { close(cleanupStop) })

	cfg, err := config.GetConfig()
	require.NoError(t, err)

	err = api.RegisterRoutes(router, deps, cfg, rateLimiters, cleanupStop, cleanupInitialized)
	require.NoError(t, err, "Failed to register routes")

	return &IntegrationTestSuite{t: t, deps: deps, router: router}
}

func (s *IntegrationTestSuite) do(method, path string, payload interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(s.t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, target interface{}) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), target))
}

// TestFullLabelingFlow walks one file through the whole labeling lifecycle:
// create a session, draft and confirm two regions, loop one, feed positions
// through the boundary, export the dataset pair, and read back history.
func TestFullLabelingFlow(t *testing.T) {
	s := setupIntegrationTestSuite(t)

	// Library shows the file as not yet completed
	w := s.do(http.MethodGet, "/api/v1/files", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var files types.AudioFilesResponse
	s.decode(w, &files)
	require.Equal(t, 1, files.Count)
	assert.False(t, files.Files[0].Completed)

	// Create the session
	w = s.do(http.MethodPost, "/api/v1/sessions", gin.H{"fileName": "interview.wav"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.SessionResponse
	s.decode(w, &created)
	sessionID := created.Session.ID
	base := "/api/v1/sessions/" + sessionID

	// The player reports the real duration
	w = s.do(http.MethodPost, base+"/playback/duration", gin.H{"seconds": 120.0})
	require.Equal(t, http.StatusOK, w.Code)

	// First region: drag 2.0 -> 5.0, assign speaker_0
	s.do(http.MethodPost, base+"/drag", gin.H{"time": 2.0})
	s.do(http.MethodPut, base+"/drag", gin.H{"time": 5.0})
	s.do(http.MethodPost, base+"/drag/end", nil)
	w = s.do(http.MethodPost, base+"/drag/confirm", gin.H{"speakerId": "speaker_0"})
	require.Equal(t, http.StatusCreated, w.Code)
	var first types.RegionResponse
	s.decode(w, &first)

	// Second region overlapping the first, assigned to speaker_1
	s.do(http.MethodPost, base+"/drag", gin.H{"time": 4.0})
	s.do(http.MethodPut, base+"/drag", gin.H{"time": 8.0})
	s.do(http.MethodPost, base+"/drag/end", nil)
	w = s.do(http.MethodPost, base+"/drag/confirm", gin.H{"speakerId": "speaker_1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, base+"/regions", nil)
	var regions types.RegionsResponse
	s.decode(w, &regions)
	require.Equal(t, 2, regions.Count)
	require.Len(t, regions.Overlaps, 1)
	assert.Equal(t, 4.0, regions.Overlaps[0].Start)
	assert.Equal(t, 5.0, regions.Overlaps[0].End)

	// Loop the first region and push the playhead over its end
	w = s.do(http.MethodPost, base+"/playback/loop/"+first.Region.ID, gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, base+"/playback/position", gin.H{"seconds": 5.0})
	var poll struct {
		Commands []map[string]interface{} `json:"commands"`
	}
	s.decode(w, &poll)
	require.Len(t, poll.Commands, 1)
	assert.Equal(t, "seek", poll.Commands[0]["type"])
	assert.Equal(t, 2.0, poll.Commands[0]["time"])

	// Export the dataset pair
	w = s.do(http.MethodPost, base+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var exported types.ExportResponse
	s.decode(w, &exported)
	assert.Equal(t, 2, exported.RegionCount)
	assert.FileExists(t, exported.RTTMPath)

	// The file is now marked completed and history records the export
	w = s.do(http.MethodGet, "/api/v1/files", nil)
	s.decode(w, &files)
	assert.True(t, files.Files[0].Completed)

	w = s.do(http.MethodGet, "/api/v1/files/interview/exports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history types.ExportHistoryResponse
	s.decode(w, &history)
	require.Equal(t, 1, history.Count)
	assert.Equal(t, "interview", history.Exports[0].FileID)
	assert.Len(t, history.Exports[0].Regions, 2)
}

// TestAnnotationReload covers resuming work on a completed file: a second
// session loads the saved RTTM back instead of starting from scratch.
func TestAnnotationReload(t *testing.T) {
	s := setupIntegrationTestSuite(t)

	w := s.do(http.MethodPost, "/api/v1/sessions", gin.H{"fileName": "interview.wav"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.SessionResponse
	s.decode(w, &created)
	base := "/api/v1/sessions/" + created.Session.ID

	s.do(http.MethodPost, base+"/playback/duration", gin.H{"seconds": 120.0})
	s.do(http.MethodPost, base+"/drag", gin.H{"time": 10.0})
	s.do(http.MethodPut, base+"/drag", gin.H{"time": 12.5})
	s.do(http.MethodPost, base+"/drag/end", nil)
	w = s.do(http.MethodPost, base+"/drag/confirm", gin.H{"speakerId": "speaker_1"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, base+"/export", nil).Code)

	// Fresh session against the same file
	w = s.do(http.MethodPost, "/api/v1/sessions", gin.H{"fileName": "interview.wav"})
	require.Equal(t, http.StatusCreated, w.Code)
	var second types.SessionResponse
	s.decode(w, &second)
	secondBase := "/api/v1/sessions/" + second.Session.ID

	w = s.do(http.MethodPost, secondBase+"/annotation/load", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loaded types.ImportResponse
	s.decode(w, &loaded)
	assert.Equal(t, 1, loaded.Result.Imported)

	w = s.do(http.MethodGet, secondBase+"/regions", nil)
	var regions types.RegionsResponse
	s.decode(w, &regions)
	require.Equal(t, 1, regions.Count)
	assert.InDelta(t, 10.0, regions.Regions[0].Start, 0.001)
	assert.InDelta(t, 12.5, regions.Regions[0].End, 0.001)
	assert.Equal(t, "speaker_1", regions.Regions[0].SpeakerID)
}
