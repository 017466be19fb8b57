package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/internal/http/dto"
)

// Recovery turns a handler panic into the API's 500 error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "handler panic",
			"panic", fmt.Sprint(recovered),
			"route", c.FullPath(),
			"stack", string(debug.Stack()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error("internal server error"))
	})
}
