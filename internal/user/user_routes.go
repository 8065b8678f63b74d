package user

import (
	"github.com/gin-gonic/gin"

	"timecraft/internal/middleware"
	"timecraft/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService *rbac.Service,
	loginLimiter *middleware.IPRateLimiter,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimit(loginLimiter), handler.Register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), handler.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "users", "read"), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "users", "read"), handler.GetById)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "users", "write"), handler.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "users", "write"), handler.Delete)
	}
}
