package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler-api/api/annotations"
	"github.com/killallgit/labeler-api/api/files"
	"github.com/killallgit/labeler-api/api/health"
	"github.com/killallgit/labeler-api/api/playback"
	"github.com/killallgit/labeler-api/api/regions"
	"github.com/killallgit/labeler-api/api/sessions"
	"github.com/killallgit/labeler-api/api/speakers"
	"github.com/killallgit/labeler-api/api/types"
	"github.com/killallgit/labeler-api/api/version"
	"github.com/killallgit/labeler-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	if deps == nil {
		return fmt.Errorf("handler dependencies are nil")
	}
	if deps.Sessions == nil {
		return fmt.Errorf("session manager is not configured")
	}

	rps := cfg.RateLimiting.RequestsPerSecond
	burst := cfg.RateLimiting.BurstSize
	idleTTL := cfg.RateLimiting.ClientIdleTTL
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}

	v1 := engine.Group("/api/v1")

	// Library browsing with general rate limiting
	filesGroup := v1.Group("/files")
	if cfg.RateLimiting.Enabled {
		filesGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst, idleTTL))
	}
	files.RegisterRoutes(filesGroup, deps)

	// Session routes. Position reports and command drains arrive at the
	// client's animation rate, so the session group gets a higher allowance
	// than the rest of the API.
	sessionGroup := v1.Group("/sessions")
	if cfg.RateLimiting.Enabled {
		sessionGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps*4, burst*4, idleTTL))
	}
	sessions.RegisterRoutes(sessionGroup, deps)
	regions.RegisterRoutes(sessionGroup, deps)
	playback.RegisterRoutes(sessionGroup, deps)
	speakers.RegisterRoutes(sessionGroup, deps)
	annotations.RegisterRoutes(sessionGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
