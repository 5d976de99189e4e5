package sessions

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RebindRequest names the audio file to switch the session to
type RebindRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

// Rebind switches a session to a different audio file. All regions, the
// draft and any loop are dropped; in-flight annotation loads for the old
// file can no longer apply.
// @Summary Rebind a session to another audio file
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body RebindRequest true "Audio file to switch to"
// @Success 200 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/rebind [post]
func Rebind(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req RebindRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		file, found, err := resolveAudioFile(c.Request.Context(), deps, req.FileName)
		if err != nil {
			log.Printf("resolving %s: %v", req.FileName, err)
			types.SendInternalError(c, "Failed to read audio library")
			return
		}
		if !found {
			types.SendNotFound(c, "Audio file not found in library")
			return
		}

		duration := probeDuration(c.Request.Context(), deps, file.Path)
		sess.Rebind(file.Name, baseName(file.Name), file.Path, duration)

		types.SendSuccess(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Session:      sess.Snapshot(),
		})
	}
}
