package middlewares

import (
	"github.com/gin-gonic/gin"
)

// apiHeaders suit a JSON and PDF API that is never rendered as a page.
var apiHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	"Referrer-Policy":         "no-referrer",
}

// SecurityHeaders sets the API headers on every response. Everything except
// the health probe is no-store.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range apiHeaders {
			c.Header(k, v)
		}
		if c.Request.URL.Path != "/" {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}
