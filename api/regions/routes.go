package regions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RegisterRoutes registers region and draft routes on the sessions group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// Drag gesture lifecycle
	router.POST("/:id/drag", BeginDrag(deps))
	router.PUT("/:id/drag", UpdateDrag(deps))
	router.POST("/:id/drag/end", EndDrag(deps))
	router.POST("/:id/drag/confirm", ConfirmDraft(deps))
	router.DELETE("/:id/drag", CancelDraft(deps))

	// Committed regions
	router.GET("/:id/regions", GetAll(deps))
	router.PUT("/:id/regions/:regionId", Resize(deps))
	router.DELETE("/:id/regions/:regionId", Delete(deps))
	router.DELETE("/:id/regions", Clear(deps))
}
