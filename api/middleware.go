package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/killallgit/labeler-api/api/types"
)

// ipBucket pairs a client's token bucket with its last activity, so idle
// clients can be swept without touching active ones. lastSeen is read by the
// sweeper goroutine while handlers update it.
type ipBucket struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (b *ipBucket) touch() {
	b.mu.Lock()
	b.lastSeen = time.Now()
	b.mu.Unlock()
}

func (b *ipBucket) idleFor(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.Sub(b.lastSeen)
}

// CORS allows the labeling UI to run on a different origin than the API.
// Preflight requests are answered here and never reach the handlers.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// RequestSizeLimit caps the body of mutating requests at maxBytes. Annotation
// imports carry whole RTTM files, so the cap comes from
// server.max_request_bytes rather than a fixed constant.
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit enforces a per-IP token bucket. Buckets live in the
// shared map for the lifetime of the server; a background sweeper drops
// buckets idle for longer than idleTTL so one-off clients do not accumulate.
func PerClientRateLimit(buckets *sync.Map, sweepStop chan struct{}, sweepOnce *sync.Once, rps, burst int, idleTTL time.Duration) gin.HandlerFunc {
	sweepOnce.Do(func() {
		go sweepIdleBuckets(buckets, sweepStop, idleTTL)
	})

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		entry, _ := buckets.LoadOrStore(clientIP, &ipBucket{
			limiter:  rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), burst),
			lastSeen: time.Now(),
		})

		bucket := entry.(*ipBucket)
		bucket.touch()

		if !bucket.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, types.ErrorResponse{
				Error: "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func sweepIdleBuckets(buckets *sync.Map, sweepStop chan struct{}, idleTTL time.Duration) {
	ticker := time.NewTicker(idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			buckets.Range(func(key, value interface{}) bool {
				if value.(*ipBucket).idleFor(now) > idleTTL {
					buckets.Delete(key)
				}
				return true
			})
		case <-sweepStop:
			return
		}
	}
}
