package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/dto"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/services"
)

// NGOHandler serves NGO review and reporting endpoints
type NGOHandler struct {
	authService   *services.AuthService
	reportService *services.ReportService
}

func NewNGOHandler(authService *services.AuthService, reportService *services.ReportService) *NGOHandler {
	return &NGOHandler{
		authService:   authService,
		reportService: reportService,
	}
}

// ListNGOs returns organizations, optionally filtered with ?approved=true|false
func (h *NGOHandler) ListNGOs(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid approved filter")
			return
		}
		approved = &value
	}

	ngos, err := h.authService.ListNGOs(c.Request.Context(), caller, approved)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ngos": dto.ToNGODTOs(ngos)})
}

// ReviewNGO approves or revokes an organization
func (h *NGOHandler) ReviewNGO(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	ngoID, _ := middleware.GetUUIDParam(c, "id")

	type ReviewRequest struct {
		Approved *bool `json:"approved" binding:"required"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ngo, err := h.authService.ReviewNGO(c.Request.Context(), caller, ngoID, *req.Approved)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNGODTO(*ngo))
}

// GetMyStats returns the dashboard figures of the calling NGO
func (h *NGOHandler) GetMyStats(c *gin.Context) {
	h.stats(c, uuid.Nil)
}

// GetStats returns the dashboard figures of any NGO
func (h *NGOHandler) GetStats(c *gin.Context) {
	ngoID, _ := middleware.GetUUIDParam(c, "id")
	h.stats(c, ngoID)
}

func (h *NGOHandler) stats(c *gin.Context, ngoID uuid.UUID) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	stats, err := h.reportService.NGOStats(c.Request.Context(), caller, ngoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
