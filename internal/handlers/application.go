package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/services"
)

// ApplicationHandler serves volunteer applications and NGO decisions
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Apply submits an application for the task in the path and takes one slot.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	type ApplyRequest struct {
		ApplicantID          *uuid.UUID `json:"applicant_id"`
		ApplicantName        string     `json:"applicant_name" binding:"max=255"`
		Phone                string     `json:"phone" binding:"max=50"`
		Email                string     `json:"email" binding:"omitempty,email"`
		ReasonForApplication string     `json:"reason_for_application"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.ApplyInput{
		TaskID:               taskID,
		ApplicantName:        req.ApplicantName,
		Phone:                req.Phone,
		Email:                req.Email,
		ReasonForApplication: req.ReasonForApplication,
	}
	if req.ApplicantID != nil {
		input.ApplicantID = *req.ApplicantID
	}

	app, err := h.applicationService.Apply(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListForTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	apps, err := h.applicationService.ListForTask(c.Request.Context(), caller, taskID)
	h.respondList(c, apps, err)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListForCaller(c.Request.Context(), caller)
	h.respondList(c, apps, err)
}

func (h *ApplicationHandler) ListAll(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListAll(c.Request.Context(), caller)
	h.respondList(c, apps, err)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	appID, _ := middleware.GetUUIDParam(c, "id")

	app, err := h.applicationService.Get(c.Request.Context(), caller, appID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	appID, _ := middleware.GetUUIDParam(c, "id")

	type UpdateApplicationRequest struct {
		ApplicantName        *string `json:"applicant_name" binding:"omitempty,max=255"`
		Phone                *string `json:"phone" binding:"omitempty,max=50"`
		Email                *string `json:"email" binding:"omitempty,email"`
		ReasonForApplication *string `json:"reason_for_application"`
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.applicationService.Update(c.Request.Context(), caller, appID, services.UpdateApplicationInput{
		ApplicantName:        req.ApplicantName,
		Phone:                req.Phone,
		Email:                req.Email,
		ReasonForApplication: req.ReasonForApplication,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// Withdraw deletes an application. The slot it consumed is not returned.
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	appID, _ := middleware.GetUUIDParam(c, "id")

	if err := h.applicationService.Withdraw(c.Request.Context(), caller, appID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Application withdrawn",
	})
}

// Decide records an APPROVED or REJECTED decision by the task's poster
func (h *ApplicationHandler) Decide(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	appID, _ := middleware.GetUUIDParam(c, "id")

	type DecisionRequest struct {
		Decision string `json:"decision" binding:"required"`
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.applicationService.Decide(c.Request.Context(), caller, appID, req.Decision)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) respondList(c *gin.Context, apps []models.Application, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
