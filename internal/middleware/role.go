package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
)

// RequireRole admits callers holding one of roles. Must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, exists := GetCaller(c)
		if !exists {
			apierrors.Unauthenticated(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Your role cannot perform this action")
		c.Abort()
	}
}
