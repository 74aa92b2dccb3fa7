package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/everestpress/printshop-api/internal/httperr"
)

// RateLimit is a fixed-window counter keyed by client IP. It fails open:
// if redis is unreachable the gate steps aside rather than taking the API
// down with it.
func RateLimit(client *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				// A counter with no expiry would throttle this client
				// forever; drop it and step aside.
				client.Del(ctx, key)
				c.Next()
				return
			}
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code: "too_many_requests", Message: "Too many requests, please try again later.",
			})
			return
		}

		c.Next()
	}
}
