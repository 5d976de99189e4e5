package speakers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
	"github.com/killallgit/labeler-api/internal/services/speakers"
)

// RenameRequest carries a new display name for a speaker
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

func rosterResponse(roster *speakers.Roster) types.SpeakersResponse {
	return types.SpeakersResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK},
		Speakers:     roster.List(),
		Selected:     roster.Selected(),
	}
}

// GetAll returns the session's speaker roster.
// @Summary List speakers
// @Tags speakers
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.SpeakersResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/speakers [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, rosterResponse(sess.Roster()))
	}
}

// Add appends a new speaker with a generated ID and default name.
// @Summary Add a speaker
// @Tags speakers
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} types.SpeakersResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/speakers [post]
func Add(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		sess.Roster().Add()
		types.SendCreated(c, rosterResponse(sess.Roster()))
	}
}

// Rename changes a speaker's display name. Regions already committed keep
// the name they were committed with.
// @Summary Rename a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param speakerId path string true "Speaker ID"
// @Param request body RenameRequest true "New display name"
// @Success 200 {object} types.SpeakersResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/speakers/{speakerId} [put]
func Rename(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req RenameRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := sess.Roster().Rename(c.Param("speakerId"), req.Name); err != nil {
			types.SendNotFound(c, "Speaker not found")
			return
		}
		types.SendSuccess(c, rosterResponse(sess.Roster()))
	}
}

// Remove deletes a speaker from the roster. The last remaining speaker
// cannot be removed.
// @Summary Remove a speaker
// @Tags speakers
// @Produce json
// @Param id path string true "Session ID"
// @Param speakerId path string true "Speaker ID"
// @Success 200 {object} types.SpeakersResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/speakers/{speakerId} [delete]
func Remove(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		if err := sess.Roster().Remove(c.Param("speakerId")); err != nil {
			if errors.Is(err, speakers.ErrLastSpeaker) {
				types.SendBadRequest(c, "Cannot remove the last speaker")
				return
			}
			types.SendNotFound(c, "Speaker not found")
			return
		}
		types.SendSuccess(c, rosterResponse(sess.Roster()))
	}
}

// Select marks a speaker as the active labeling choice.
// @Summary Select a speaker
// @Tags speakers
// @Produce json
// @Param id path string true "Session ID"
// @Param speakerId path string true "Speaker ID"
// @Success 200 {object} types.SpeakersResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/speakers/{speakerId}/select [post]
func Select(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		if err := sess.Roster().Select(c.Param("speakerId")); err != nil {
			types.SendNotFound(c, "Speaker not found")
			return
		}
		types.SendSuccess(c, rosterResponse(sess.Roster()))
	}
}
