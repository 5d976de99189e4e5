package speakers

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RegisterRoutes registers speaker roster routes on the sessions group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/:id/speakers", GetAll(deps))
	router.POST("/:id/speakers", Add(deps))
	router.PUT("/:id/speakers/:speakerId", Rename(deps))
	router.DELETE("/:id/speakers/:speakerId", Remove(deps))
	router.POST("/:id/speakers/:speakerId/select", Select(deps))
}
