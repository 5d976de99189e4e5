package playback

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// SecondsRequest carries a time value in seconds
type SecondsRequest struct {
	Seconds *float64 `json:"seconds" binding:"required"`
}

// Toggle toggles free playback, exiting loop mode first if active.
// @Summary Toggle play/pause
// @Tags playback
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/playback/toggle [post]
func Toggle(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		sess.PlayPause()
		c.JSON(http.StatusOK, gin.H{
			"status":   types.StatusOK,
			"commands": sess.DrainCommands(),
		})
	}
}

// Stop halts playback and resets the playhead.
// @Summary Stop playback
// @Tags playback
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/playback/stop [post]
func Stop(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		sess.StopPlayback()
		c.JSON(http.StatusOK, gin.H{
			"status":   types.StatusOK,
			"commands": sess.DrainCommands(),
		})
	}
}

// ToggleLoop starts loop playback over a region, or stops the loop when the
// region is already looping.
// @Summary Toggle a region loop
// @Tags playback
// @Produce json
// @Param id path string true "Session ID"
// @Param regionId path string true "Region ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/playback/loop/{regionId} [post]
func ToggleLoop(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		looping := sess.ToggleRegionLoop(c.Param("regionId"))
		c.JSON(http.StatusOK, gin.H{
			"status":   types.StatusOK,
			"looping":  looping,
			"regionId": sess.LoopingRegionID(),
			"commands": sess.DrainCommands(),
		})
	}
}

// DrainCommands returns and clears the queued transport commands for the
// client player.
// @Summary Drain player commands
// @Tags playback
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/playback/commands [get]
func DrainCommands(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   types.StatusOK,
			"commands": sess.DrainCommands(),
		})
	}
}

// ReportPosition feeds a playhead position update from the client player.
// The loop watcher may queue a reseek in response, so any newly queued
// commands come back in the same response.
// @Summary Report playhead position
// @Tags playback
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SecondsRequest true "Playhead position in seconds"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/playback/position [post]
func ReportPosition(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req SecondsRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		sess.ReportPosition(*req.Seconds)
		c.JSON(http.StatusOK, gin.H{
			"status":   types.StatusOK,
			"commands": sess.DrainCommands(),
		})
	}
}

// ReportDuration lets the client provide the media duration when server-side
// probing was unavailable.
// @Summary Report media duration
// @Tags playback
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SecondsRequest true "Media duration in seconds"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/playback/duration [post]
func ReportDuration(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req SecondsRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		sess.ReportDuration(*req.Seconds)
		types.SendSuccess(c, types.BaseResponse{
			Status: types.StatusOK,
		})
	}
}
