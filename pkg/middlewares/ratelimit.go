package middleware

import (
	"net/http"

	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns Gin middleware enforcing a process-local request rate.
// rps=0 disables limiting. The limiter is local only; the service keeps no
// shared state across instances.
func RateLimit(rps float64) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, pkg.ErrorResponse{
				Code:    "APP_RATE_LIMITED",
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}
