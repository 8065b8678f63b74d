package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"timecraft/internal/shared/apperror"
	"timecraft/internal/shared/contextutil"
	"timecraft/internal/shared/response"
)

// Claims is the token payload issued at login. EmployeeID is empty for
// accounts that have no employee record yet.
type Claims struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AuthMiddleware validates the Bearer token and stores the identity in the
// gin context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing or malformed Authorization header", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(contextutil.UserIDKey, claims.UserID)
		c.Set(contextutil.EmployeeIDKey, claims.EmployeeID)
		c.Set(contextutil.RoleKey, claims.Role)
		c.Next()
	}
}
