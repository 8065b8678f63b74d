package contextutil

import (
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey     = "user_id"
	EmployeeIDKey = "employee_id"
	RoleKey       = "role"
	RequestIDKey  = "request_id"
)

// UserID returns the authenticated user id from the gin context.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// EmployeeID returns the employee id bound to the authenticated user,
// if the user has an employee record.
func EmployeeID(c *gin.Context) (string, bool) {
	v, ok := c.Get(EmployeeIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Role returns the authenticated user's role from the gin context.
func Role(c *gin.Context) (string, bool) {
	v, ok := c.Get(RoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// RequestID returns the request correlation id set by the middleware.
func RequestID(c *gin.Context) string {
	v, ok := c.Get(RequestIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
