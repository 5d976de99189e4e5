package files

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RegisterRoutes registers audio library routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/files - List labelable audio files
	router.GET("", GetAll(deps))

	// GET /api/v1/files/:fileId/exports - Export history for one file
	router.GET("/:fileId/exports", GetExports(deps))
}
