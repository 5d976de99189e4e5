package annotations

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RegisterRoutes registers annotation routes on the sessions group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/sessions/:id/annotation - Current regions as RTTM text
	router.GET("/:id/annotation", Get(deps))

	// PUT /api/v1/sessions/:id/annotation - Replace regions from RTTM text
	router.PUT("/:id/annotation", Import(deps))

	// POST /api/v1/sessions/:id/annotation/load - Load the saved annotation
	router.POST("/:id/annotation/load", LoadExisting(deps))

	// POST /api/v1/sessions/:id/export - Write the dataset pair to disk
	router.POST("/:id/export", Export(deps))
}
