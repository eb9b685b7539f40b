package blueroute

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit returns a Use middleware backed by a token bucket shared by all
// requests. When the bucket is empty resolution stops and, if the request is
// served over HTTP, 429 is written.
func RateLimit(limit rate.Limit, burst int) RouteMiddleware {
	limiter := rate.NewLimiter(limit, burst)

	return func(c *Context) bool {
		if limiter.Allow() {
			return true
		}

		if c.ResponseWriter != nil {
			c.SetHeader("Retry-After", "1")
			c.Status(http.StatusTooManyRequests)
		}
		return false
	}
}
