package regions

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
	regionstore "github.com/killallgit/labeler-api/internal/services/regions"
)

// ResizeRequest carries new bounds for an existing region
type ResizeRequest struct {
	Start *float64 `json:"start" binding:"required"`
	End   *float64 `json:"end" binding:"required"`
}

// GetAll returns the committed regions and their pairwise overlaps.
// @Summary List regions
// @Tags regions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.RegionsResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/regions [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		list := sess.ListRegions()
		types.SendSuccess(c, types.RegionsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Regions:      list,
			Overlaps:     sess.Overlaps(),
			Count:        len(list),
		})
	}
}

// Resize replaces a region's bounds.
// @Summary Resize a region
// @Tags regions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param regionId path string true "Region ID"
// @Param request body ResizeRequest true "New bounds in seconds"
// @Success 200 {object} types.BaseResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/regions/{regionId} [put]
func Resize(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		var req ResizeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := sess.ResizeRegion(c.Param("regionId"), *req.Start, *req.End); err != nil {
			switch {
			case errors.Is(err, regionstore.ErrRegionNotFound):
				types.SendNotFound(c, "Region not found")
			case errors.Is(err, regionstore.ErrRegionTooShort):
				types.SendBadRequest(c, "Region span does not exceed the minimum length")
			default:
				types.SendBadRequest(c, "Invalid region bounds")
			}
			return
		}

		types.SendSuccess(c, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Region resized",
		})
	}
}

// Delete removes a region. Deleting an unknown region is reported but is
// not an error for the session.
// @Summary Delete a region
// @Tags regions
// @Produce json
// @Param id path string true "Session ID"
// @Param regionId path string true "Region ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/regions/{regionId} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		removed := sess.DeleteRegion(c.Param("regionId"))
		types.SendSuccess(c, gin.H{
			"status":  types.StatusOK,
			"removed": removed,
		})
	}
}

// Clear removes every region in the session.
// @Summary Clear all regions
// @Tags regions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/regions [delete]
func Clear(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := types.SessionFromParam(c, deps)
		if !ok {
			return
		}

		sess.ClearAll()
		types.SendSuccess(c, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "All regions cleared",
		})
	}
}
