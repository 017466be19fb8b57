package router

import (
	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/internal/http/handler"
)

func ReminderRouter(rg *gin.RouterGroup, h *handler.ReminderHandler) {
	rg.POST("/run", h.Run)
}
