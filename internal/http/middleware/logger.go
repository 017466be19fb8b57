package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/common/logger"
)

// quietRoutes are polled by load balancers and only logged when they fail.
var quietRoutes = map[string]bool{
	"/health": true,
}

// Logger writes one access line per request. Handlers log through the request
// context, so it is tagged with the http component first.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{Component: "deedwatch.http"})
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if quietRoutes[route] && status < 400 {
			return
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		slog.Log(ctx, level, "http request",
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(began).Milliseconds(),
			"client_ip", c.ClientIP())
	}
}
