package timesheet

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
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.GET("", middleware.RBACAuthorize(rbacService, "timesheets", "read"), handler.GetAll)
		timesheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheets", "read"), handler.GetById)
		timesheets.POST("", middleware.RBACAuthorize(rbacService, "timesheets", "write"), handler.Create)
		timesheets.PUT("/:id", middleware.RBACAuthorize(rbacService, "timesheets", "write"), handler.Update)
		timesheets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timesheets", "write"), handler.Delete)
	}
}
