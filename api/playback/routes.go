package playback

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RegisterRoutes registers playback routes on the sessions group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/:id/playback/toggle", Toggle(deps))
	router.POST("/:id/playback/stop", Stop(deps))
	router.POST("/:id/playback/loop/:regionId", ToggleLoop(deps))

	// Client player transport: the browser drains queued commands and
	// reports its playhead position and media duration back.
	router.GET("/:id/playback/commands", DrainCommands(deps))
	router.POST("/:id/playback/position", ReportPosition(deps))
	router.POST("/:id/playback/duration", ReportDuration(deps))
}
