package timeline

import (
	"go-hris-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	timeline := r.Group("/timeline")
	timeline.Use(middleware.AuthMiddleware(jwtSecret))
	{
		timeline.GET("/:entity_type/:entity_id", middleware.RBACAuthorize(rbacService, "timeline", "read"), handler.ListByEntity)
	}
}
