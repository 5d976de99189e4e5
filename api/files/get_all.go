package files

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// GetAll lists the labelable audio files in the library directory.
// @Summary List audio files
// @Description Returns the audio files available for labeling, with completion state
// @Tags files
// @Produce json
// @Success 200 {object} types.AudioFilesResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Dataset == nil {
			types.SendInternalError(c, "Audio library is not configured")
			return
		}

		list, err := deps.Dataset.ListAudioFiles(c.Request.Context())
		if err != nil {
			log.Printf("listing audio files: %v", err)
			types.SendInternalError(c, "Failed to list audio files")
			return
		}

		types.SendSuccess(c, types.AudioFilesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Files:        list,
			Count:        len(list),
		})
	}
}
