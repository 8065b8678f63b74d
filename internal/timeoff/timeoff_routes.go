package timeoff

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
	requests := r.Group("/timeoff")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("/apply", middleware.RBACAuthorize(rbacService, "timeoff", "apply"), handler.Apply)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timeoff", "decide"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timeoff", "decide"), handler.Reject)
		requests.GET("", middleware.RBACAuthorize(rbacService, "timeoff", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "timeoff", "read"), handler.GetById)
	}
}
