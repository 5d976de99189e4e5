package annotations

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
	apperrors "github.com/killallgit/labeler-api/pkg/errors"
)

// ImportRequest carries RTTM text to apply to the session
type ImportRequest struct {
	Content string `json:"content" binding:"required"`
}

// Get returns the session's committed regions encoded as RTTM text.
// @Summary Export the annotation as RTTM text
// @Tags annotations
// @Produce plain
// @Param id path string true "Session ID"
// @Success 200 {string} string "RTTM content"
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/annotation [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		c.String(http.StatusOK, sess.ExportAnnotation())
	}
}

// Import replaces the session's regions from RTTM text. Malformed lines are
// skipped and reported; segments below the minimum length are dropped.
// @Summary Import an RTTM annotation
// @Tags annotations
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ImportRequest true "RTTM content"
// @Success 200 {object} types.ImportResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/annotation [put]
func Import(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req ImportRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		result, err := sess.ApplyImport(sess.Generation(), req.Content)
		if err != nil {
			types.SendConflict(c, "Session changed while importing")
			return
		}

		types.SendSuccess(c, types.ImportResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Result:       result,
		})
	}
}

// LoadExisting reads the saved RTTM annotation for the session's file from
// the dataset directory and applies it. The session's generation is captured
// before the file read, so a session rebound mid-load rejects the result.
// @Summary Load the saved annotation from disk
// @Tags annotations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.ImportResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/annotation/load [post]
func LoadExisting(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}
		if deps.Dataset == nil {
			types.SendInternalError(c, "Dataset directory is not configured")
			return
		}

		generation := sess.Generation()
		fileID := sess.FileID()

		content, found, err := deps.Dataset.LoadAnnotation(c.Request.Context(), fileID)
		if err != nil {
			log.Printf("loading annotation for %s: %v", fileID, err)
			types.SendInternalError(c, "Failed to read annotation")
			return
		}
		if !found {
			types.SendNotFound(c, "No saved annotation for this file")
			return
		}

		result, err := sess.ApplyImport(generation, content)
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeConflict) {
				types.SendConflict(c, "Session was rebound while loading")
				return
			}
			types.SendInternalError(c, "Failed to apply annotation")
			return
		}

		types.SendSuccess(c, types.ImportResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Result:       result,
		})
	}
}

// Export writes the dataset pair (audio copy + RTTM) for the session's file
// and records it in export history.
// @Summary Export the dataset pair
// @Tags annotations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.ExportResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/export [post]
func Export(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}
		if deps.Dataset == nil {
			types.SendInternalError(c, "Dataset directory is not configured")
			return
		}

		record, err := deps.Dataset.Export(c.Request.Context(), sess.FileID(), sess.AudioPath(), sess.Duration(), sess.ListRegions())
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeValidation) {
				types.SendBadRequest(c, "Nothing to export: the session has no regions")
				return
			}
			log.Printf("exporting %s: %v", sess.FileID(), err)
			types.SendInternalError(c, "Failed to write dataset export")
			return
		}

		types.SendSuccess(c, types.ExportResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Export written"},
			AudioPath:    record.AudioPath,
			RTTMPath:     record.RTTMPath,
			RegionCount:  record.RegionCount,
		})
	}
}
