package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestCounter is the only state the rate limiter needs; the redis-backed
// implementation lives in the cache package and is injected at router setup
// so limits hold across replicas and tests can swap in a fake.
type RequestCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit enforces a fixed-window per-client limit. A nil counter disables
// limiting (e.g. when redis is unavailable at boot).
func RateLimit(counter RequestCounter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		count, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			// Counting failures must not take the API down.
			c.Next()
			return
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
