package leavepolicy

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
	policies := r.Group("/leave-policies")
	policies.Use(middleware.AuthMiddleware(jwtSecret))
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, "leave_policy", "read"), handler.GetAll)
		policies.POST("", middleware.RBACAuthorize(rbacService, "leave_policy", "create"), handler.Create)
		policies.PATCH("/:id/deactivate", middleware.RBACAuthorize(rbacService, "leave_policy", "update"), handler.Deactivate)
	}
}
