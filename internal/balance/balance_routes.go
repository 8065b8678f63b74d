package balance

import (
	"github.com/gin-gonic/gin"

	"timecraft/internal/middleware"
	"timecraft/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService *rbac.Service,
) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/balance", middleware.RBACAuthorize(rbacService, "balances", "read"), handler.GetBalance)
		balances.GET("/used-days", middleware.RBACAuthorize(rbacService, "balances", "read"), handler.UsedDays)
		balances.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "balances", "read"), handler.GetByEmployee)
		balances.GET("/all", middleware.RBACAuthorize(rbacService, "balances", "read-all"), handler.GetAll)
		balances.PUT("/change", middleware.RBACAuthorize(rbacService, "balances", "write"), handler.Change)
		balances.POST("", middleware.RBACAuthorize(rbacService, "balances", "write"), handler.Create)
		balances.PUT("/:id", middleware.RBACAuthorize(rbacService, "balances", "write"), handler.Update)
		balances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "balances", "write"), handler.Delete)
	}
}
