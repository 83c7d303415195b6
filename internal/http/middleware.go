package http

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware hardens bridge responses. The bridge only serves
// JSON, so nothing may be framed, sniffed or loaded from it. Snapshots carry
// the username, hence no-store.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
