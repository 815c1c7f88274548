package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
)

const paramKeyPrefix = "param:"

// RequireUUIDParams parses the named path parameters as UUIDs and rejects the
// request with 400 when any of them is malformed.
func RequireUUIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			id, err := uuid.Parse(c.Param(name))
			if err != nil {
				apierrors.BadRequest(c, "Invalid "+name)
				c.Abort()
				return
			}
			c.Set(paramKeyPrefix+name, id)
		}
		c.Next()
	}
}

// GetUUIDParam returns a path parameter parsed by RequireUUIDParams
func GetUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	value, exists := c.Get(paramKeyPrefix + name)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
