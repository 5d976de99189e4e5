package sessions

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// CreateRequest names the audio file to label
type CreateRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

// Create starts a labeling session bound to one library audio file.
// @Summary Create a labeling session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Audio file to label"
// @Success 201 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRequest
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
		sess := deps.Sessions.Create(file.Name, baseName(file.Name), file.Path, duration, deps.DefaultSpeakers)

		types.SendCreated(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Session:      sess.Snapshot(),
		})
	}
}
