package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timecraft/internal/rbac"
	"timecraft/internal/shared/apperror"
	"timecraft/internal/shared/contextutil"
	"timecraft/internal/shared/response"
)

// RBACAuthorize checks the caller's role against the policy table. It must
// run after AuthMiddleware so the role is present in the context.
func RBACAuthorize(rbacService *rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := contextutil.Role(c)
		if !ok || role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
			c.Abort()
			return
		}

		allowed, err := rbacService.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Authorization check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
