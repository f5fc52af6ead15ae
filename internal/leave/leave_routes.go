package leave

import (
	"go-hris-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteOptions carries optional middleware; nil entries are skipped.
type RouteOptions struct {
	Idempotency     gin.HandlerFunc
	DecisionLimiter gin.HandlerFunc
}

func passThrough(h gin.HandlerFunc) gin.HandlerFunc {
	if h != nil {
		return h
	}
	return func(c *gin.Context) { c.Next() }
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	opts RouteOptions,
) {
	auth := middleware.AuthMiddleware(jwtSecret)

	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Search)
		leaves.GET("/me", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.ListMine)
		leaves.GET("/me/balances", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.MyBalances)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.ListPending)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			passThrough(opts.Idempotency),
			handler.Submit,
		)
		leaves.POST("/:id/decision",
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			passThrough(opts.DecisionLimiter),
			handler.Decide,
		)
	}

	employees := r.Group("/employees")
	employees.Use(auth)
	{
		employees.GET("/:id/leave-balances", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), handler.EmployeeBalances)
	}
}
