package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/services"
)

// respondError writes a service error and attaches it for request logging.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, services.ErrAIServiceNotConfigured) {
		apierrors.ServiceUnavailable(c, err.Error())
		return
	}
	apierrors.Respond(c, err)
}

// requireCaller returns the authenticated caller or answers 401.
func requireCaller(c *gin.Context) (services.Caller, bool) {
	caller, exists := middleware.GetCaller(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return services.Caller{}, false
	}
	return caller, true
}
