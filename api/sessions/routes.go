package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/labeler-api/api/types"
)

// RegisterRoutes registers session lifecycle routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/sessions - Start a labeling session for an audio file
	router.POST("", Create(deps))

	// GET /api/v1/sessions/:id - Full session snapshot
	router.GET("/:id", GetByID(deps))

	// DELETE /api/v1/sessions/:id - Discard a session
	router.DELETE("/:id", Delete(deps))

	// POST /api/v1/sessions/:id/rebind - Switch the session to another file
	router.POST("/:id/rebind", Rebind(deps))
}
