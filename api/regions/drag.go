package regions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
	apperrors "github.com/killallgit/labeler-api/pkg/errors"
)

// DragRequest carries a pointer time on the audio timeline
type DragRequest struct {
	Time *float64 `json:"time" binding:"required"`
}

// ConfirmRequest names the speaker assigned to the pending draft
type ConfirmRequest struct {
	SpeakerID string `json:"speakerId" binding:"required"`
}

// BeginDrag starts a drag gesture anchored at the given time.
// @Summary Begin a drag gesture
// @Tags regions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DragRequest true "Anchor time in seconds"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/drag [post]
func BeginDrag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req DragRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		started := sess.BeginDrag(*req.Time)
		c.JSON(http.StatusOK, gin.H{
			"status":  types.StatusOK,
			"started": started,
			"state":   sess.DraftState(),
		})
	}
}

// UpdateDrag moves the free edge of the in-flight draft.
// @Summary Update a drag gesture
// @Tags regions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DragRequest true "Current pointer time in seconds"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/drag [put]
func UpdateDrag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req DragRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		sess.UpdateDrag(*req.Time)

		response := gin.H{"status": types.StatusOK, "state": sess.DraftState()}
		if draft, visible := sess.Draft(); visible {
			response["draft"] = draft
		}
		c.JSON(http.StatusOK, response)
	}
}

// EndDrag finishes the drag gesture. A viable draft yields a speaker-choice
// request; drags below the minimum length are discarded.
// @Summary End a drag gesture
// @Tags regions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/drag/end [post]
func EndDrag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		choice := sess.EndDrag()
		response := gin.H{
			"status":    types.StatusOK,
			"state":     sess.DraftState(),
			"discarded": choice == nil,
		}
		if choice != nil {
			response["speakerChoice"] = choice
		}
		c.JSON(http.StatusOK, response)
	}
}

// ConfirmDraft assigns a speaker to the pending draft and commits it.
// @Summary Confirm the pending draft
// @Tags regions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ConfirmRequest true "Speaker to assign"
// @Success 200 {object} types.RegionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/drag/confirm [post]
func ConfirmDraft(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req ConfirmRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		region, err := sess.ConfirmDraft(req.SpeakerID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
				types.SendNotFound(c, "Unknown speaker")
				return
			}
			types.SendBadRequest(c, "No pending draft to confirm")
			return
		}

		types.SendCreated(c, types.RegionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Region:       region,
		})
	}
}

// CancelDraft discards the in-flight draft.
// @Summary Cancel the draft
// @Tags regions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/drag [delete]
func CancelDraft(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		sess.CancelDraft()
		types.SendSuccess(c, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Draft cancelled",
		})
	}
}
