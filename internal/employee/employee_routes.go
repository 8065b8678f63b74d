package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employees", "read"), handler.GetAll)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employees", "read"), handler.GetById)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employees", "write"), handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employees", "write"), handler.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employees", "write"), handler.Delete)
	}
}
