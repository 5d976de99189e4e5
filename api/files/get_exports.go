package files

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// GetExports returns the recorded export history for one audio file.
// @Summary Export history for a file
// @Tags files
// @Produce json
// @Param fileId path string true "Audio file base name"
// @Success 200 {object} types.ExportHistoryResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/files/{fileId}/exports [get]
func GetExports(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID := c.Param("fileId")

		if deps.Exports == nil {
			// History is optional; without a database there is simply none
			types.SendSuccess(c, types.ExportHistoryResponse{
				BaseResponse: types.BaseResponse{Status: types.StatusOK},
			})
			return
		}

		records, err := deps.Exports.GetExportsByFileID(c.Request.Context(), fileID)
		if err != nil {
			log.Printf("fetching export history for %s: %v", fileID, err)
			types.SendInternalError(c, "Failed to fetch export history")
			return
		}

		types.SendSuccess(c, types.ExportHistoryResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Exports:      records,
			Count:        len(records),
		})
	}
}
