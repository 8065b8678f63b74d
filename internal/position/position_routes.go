package position

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
	positions := r.Group("/positions")
	positions.Use(middleware.AuthMiddleware())
	{
		positions.GET("", middleware.RBACAuthorize(rbacService, "positions", "read"), handler.GetAll)
		positions.GET("/:id", middleware.RBACAuthorize(rbacService, "positions", "read"), handler.GetById)
		positions.POST("", middleware.RBACAuthorize(rbacService, "positions", "write"), handler.Create)
		positions.PUT("/:id", middleware.RBACAuthorize(rbacService, "positions", "write"), handler.Update)
		positions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "positions", "write"), handler.Delete)
	}
}
