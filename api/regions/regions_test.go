package regions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
	"github.com/killallgit/labeler-api/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps := &types.Dependencies{
		Sessions: session.NewManager(0),
	}
	t.Cleanup(deps.Sessions.Close)
	sess := deps.Sessions.Create("sample1.wav", "sample1", "/audio/sample1.wav", 60, 2)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/sessions"), deps)
	return engine, sess
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func commitRegion(t *testing.T, engine *gin.Engine, sessID string, start, end float64) types.RegionResponse {
	t.Helper()
	base := "/api/v1/sessions/" + sessID

	require.Equal(t, http.StatusOK, doJSON(t, engine, http.MethodPost, base+"/drag", gin.H{"time": start}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, engine, http.MethodPut, base+"/drag", gin.H{"time": end}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, engine, http.MethodPost, base+"/drag/end", nil).Code)

	w := doJSON(t, engine, http.MethodPost, base+"/drag/confirm", gin.H{"speakerId": "speaker_0"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.RegionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDragLifecycle(t *testing.T) {
	engine, sess := setupRouter(t)
	base := "/api/v1/sessions/" + sess.ID

	resp := commitRegion(t, engine, sess.ID, 2.0, 5.0)
	assert.Equal(t, 2.0, resp.Region.Start)
	assert.Equal(t, 5.0, resp.Region.End)
	assert.Equal(t, "speaker_0", resp.Region.SpeakerID)

	w := doJSON(t, engine, http.MethodGet, base+"/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list types.RegionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
}

func TestDragEnd_ShortDragDiscarded(t *testing.T) {
	engine, sess := setupRouter(t)
	base := "/api/v1/sessions/" + sess.ID

	doJSON(t, engine, http.MethodPost, base+"/drag", gin.H{"time": 2.0})
	doJSON(t, engine, http.MethodPut, base+"/drag", gin.H{"time": 2.05})

	w := doJSON(t, engine, http.MethodPost, base+"/drag/end", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["discarded"])
	assert.Empty(t, sess.ListRegions())
}

func TestConfirm_UnknownSpeaker(t *testing.T) {
	engine, sess := setupRouter(t)
	base := "/api/v1/sessions/" + sess.ID

	doJSON(t, engine, http.MethodPost, base+"/drag", gin.H{"time": 2.0})
	doJSON(t, engine, http.MethodPut, base+"/drag", gin.H{"time": 5.0})
	doJSON(t, engine, http.MethodPost, base+"/drag/end", nil)

	w := doJSON(t, engine, http.MethodPost, base+"/drag/confirm", gin.H{"speakerId": "speaker_9"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirm_NoPendingDraft(t *testing.T) {
	engine, sess := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/drag/confirm", gin.H{"speakerId": "speaker_0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResize(t *testing.T) {
	engine, sess := setupRouter(t)
	base := "/api/v1/sessions/" + sess.ID
	resp := commitRegion(t, engine, sess.ID, 2.0, 5.0)

	w := doJSON(t, engine, http.MethodPut, base+"/regions/"+resp.Region.ID, gin.H{"start": 1.0, "end": 6.0})
	assert.Equal(t, http.StatusOK, w.Code)

	regions := sess.ListRegions()
	require.Len(t, regions, 1)
	assert.Equal(t, 1.0, regions[0].Start)
	assert.Equal(t, 6.0, regions[0].End)

	// Below minimum length
	w = doJSON(t, engine, http.MethodPut, base+"/regions/"+resp.Region.ID, gin.H{"start": 1.0, "end": 1.05})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown region
	w = doJSON(t, engine, http.MethodPut, base+"/regions/nope", gin.H{"start": 1.0, "end": 6.0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAndClear(t *testing.T) {
	engine, sess := setupRouter(t)
	base := "/api/v1/sessions/" + sess.ID
	resp := commitRegion(t, engine, sess.ID, 2.0, 5.0)
	commitRegion(t, engine, sess.ID, 10.0, 15.0)

	w := doJSON(t, engine, http.MethodDelete, base+"/regions/"+resp.Region.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["removed"])

	// Deleting again reports removed=false but stays 200
	w = doJSON(t, engine, http.MethodDelete, base+"/regions/"+resp.Region.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["removed"])

	w = doJSON(t, engine, http.MethodDelete, base+"/regions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sess.ListRegions())
}
