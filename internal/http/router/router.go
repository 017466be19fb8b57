package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/internal/http/handler"
	"lexdesk.app/deedwatch/internal/http/middleware"
	"lexdesk.app/deedwatch/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	AdminAPIKey  string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.DashboardURL},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-API-Key"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAdminAPIKey(cfg.AdminAPIKey))
	{
		reminderHandler := handler.NewReminderHandler(services.Reminders())
		ReminderRouter(v1.Group("/reminders"), reminderHandler)

		deedHandler := handler.NewDeedHandler(services.Extraction())
		DeedRouter(v1.Group("/deeds"), deedHandler, reminderHandler)
	}
}
