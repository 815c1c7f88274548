package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/constants"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/security"
	"github.com/yukikurage/community-service-hub/internal/services"
)

// RequireAuth accepts either a login session or a Bearer access token
func RequireAuth(tokens security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFromSession(c)
		if !ok {
			caller, ok = callerFromBearer(c, tokens)
		}
		if !ok {
			apierrors.Unauthenticated(c, "")
			c.Abort()
			return
		}

		// Store caller in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, caller.ID)
		c.Set(constants.ContextKeyRole, caller.Role)
		c.Next()
	}
}

// GetCaller retrieves the authenticated caller from context
func GetCaller(c *gin.Context) (services.Caller, bool) {
	id, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return services.Caller{}, false
	}
	role, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return services.Caller{}, false
	}

	accountID, ok := id.(uuid.UUID)
	if !ok {
		return services.Caller{}, false
	}
	accountRole, ok := role.(models.Role)
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{ID: accountID, Role: accountRole}, true
}

// SaveSession stores the caller in the login session
func SaveSession(c *gin.Context, account models.Account) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, account.ID.String())
	session.Set(constants.ContextKeyRole, string(account.Role))
	return session.Save()
}

// ClearSession removes the login session
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

func callerFromSession(c *gin.Context) (services.Caller, bool) {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return services.Caller{}, false
	}
	session := sessions.Default(c)

	rawID, ok := session.Get(constants.ContextKeyUserID).(string)
	if !ok {
		return services.Caller{}, false
	}
	rawRole, ok := session.Get(constants.ContextKeyRole).(string)
	if !ok {
		return services.Caller{}, false
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return services.Caller{}, false
	}
	return services.Caller{ID: id, Role: models.Role(rawRole)}, true
}

func callerFromBearer(c *gin.Context, tokens security.TokenManager) (services.Caller, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokens == nil {
		return services.Caller{}, false
	}

	claims, err := tokens.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return services.Caller{}, false
	}
	return services.Caller{ID: claims.AccountID, Role: claims.Role}, true
}
