package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows any origin, method and header, with credentials.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{RequestIDHeader, "X-Trace-ID", "X-Span-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS creates a CORS middleware with the provided configuration.
// A wildcard origin combined with credentials reflects the caller's origin,
// since browsers refuse "*" on credentialed requests. A wildcard in
// AllowHeaders reflects Access-Control-Request-Headers on preflight for the
// same reason.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if slices.Contains(cfg.AllowOrigins, "*") && cfg.AllowCredentials {
		c.AllowOrigins = nil
		c.AllowOriginFunc = func(string) bool { return true }
	}

	if !slices.Contains(cfg.AllowHeaders, "*") {
		return cors.New(c)
	}

	c.AllowHeaders = nil
	handler := cors.New(c)
	return func(ctx *gin.Context) {
		reflectRequestHeaders(ctx)
		handler(ctx)
	}
}

// reflectRequestHeaders must run before the cors handler, which writes the
// preflight response when it aborts.
func reflectRequestHeaders(c *gin.Context) {
	if c.Request.Method != http.MethodOptions || c.GetHeader("Origin") == "" {
		return
	}
	requested := c.GetHeader("Access-Control-Request-Headers")
	if requested == "" {
		return
	}
	c.Header("Access-Control-Allow-Headers", requested)
	c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
}
