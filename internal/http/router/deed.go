package router

import (
	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/internal/http/handler"
)

func DeedRouter(rg *gin.RouterGroup, deeds *handler.DeedHandler, reminders *handler.ReminderHandler) {
	rg.POST("/extract", deeds.Extract)
	rg.GET("/:id/reminders", reminders.History)
}
