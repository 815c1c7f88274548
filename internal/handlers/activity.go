package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListRecent returns the latest activity entries, newest first
func (h *ActivityHandler) ListRecent(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	activities, err := h.activityService.ListRecent(c.Request.Context(), caller, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
