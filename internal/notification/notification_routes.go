package notification

import (
	"go-hris-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(jwtSecret))
	{
		notifications.GET("/me", handler.ListMine)
		notifications.PATCH("/:id/read", handler.MarkRead)
	}
}
