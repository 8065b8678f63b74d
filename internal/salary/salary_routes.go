package salary

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
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("", middleware.RBACAuthorize(rbacService, "salaries", "read"), handler.GetAll)
		salaries.GET("/:id", middleware.RBACAuthorize(rbacService, "salaries", "read"), handler.GetById)
		salaries.POST("", middleware.RBACAuthorize(rbacService, "salaries", "write"), handler.Create)
		salaries.PUT("/:id", middleware.RBACAuthorize(rbacService, "salaries", "write"), handler.Update)
		salaries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salaries", "write"), handler.Delete)
	}
}
