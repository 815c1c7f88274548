package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/services"
)

type SubTaskHandler struct {
	subTaskService *services.SubTaskService
}

func NewSubTaskHandler(subTaskService *services.SubTaskService) *SubTaskHandler {
	return &SubTaskHandler{
		subTaskService: subTaskService,
	}
}

// Create adds a subtask under the task in the path
func (h *SubTaskHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	type CreateSubTaskRequest struct {
		Name        string     `json:"name" binding:"required,max=255"`
		Description string     `json:"description"`
		AssigneeID  *uuid.UUID `json:"assignee_id"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subTask, err := h.subTaskService.Create(c.Request.Context(), caller, services.CreateSubTaskInput{
		ParentTaskID: taskID,
		Name:         req.Name,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		DueDate:      req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subTask)
}

func (h *SubTaskHandler) ListByTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	subTasks, err := h.subTaskService.ListByParent(c.Request.Context(), caller, taskID)
	h.respondList(c, subTasks, err)
}

func (h *SubTaskHandler) ListMine(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	subTasks, err := h.subTaskService.ListForAssignee(c.Request.Context(), caller)
	h.respondList(c, subTasks, err)
}

func (h *SubTaskHandler) ListAll(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	subTasks, err := h.subTaskService.ListAll(c.Request.Context(), caller)
	h.respondList(c, subTasks, err)
}

// Suggest asks the AI generator for a subtask breakdown of the task and
// stores the result.
func (h *SubTaskHandler) Suggest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	type SuggestRequest struct {
		Notes string `json:"notes" binding:"max=2000"`
	}

	var req SuggestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	subTasks, err := h.subTaskService.Suggest(c.Request.Context(), caller, taskID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subtasks": subTasks})
}

func (h *SubTaskHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	subTaskID, _ := middleware.GetUUIDParam(c, "id")

	subTask, err := h.subTaskService.Get(c.Request.Context(), caller, subTaskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subTask)
}

func (h *SubTaskHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	subTaskID, _ := middleware.GetUUIDParam(c, "id")

	type UpdateSubTaskRequest struct {
		Name        *string    `json:"name" binding:"omitempty,max=255"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req UpdateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subTask, err := h.subTaskService.Update(c.Request.Context(), caller, subTaskID, services.UpdateSubTaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subTask)
}

func (h *SubTaskHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	subTaskID, _ := middleware.GetUUIDParam(c, "id")

	if err := h.subTaskService.Delete(c.Request.Context(), caller, subTaskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask deleted successfully",
	})
}

// Assign hands the subtask to a volunteer
func (h *SubTaskHandler) Assign(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	subTaskID, _ := middleware.GetUUIDParam(c, "id")

	type AssignRequest struct {
		AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subTask, err := h.subTaskService.Assign(c.Request.Context(), caller, subTaskID, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subTask)
}

// SetStatus reports progress on a subtask
func (h *SubTaskHandler) SetStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	subTaskID, _ := middleware.GetUUIDParam(c, "id")

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subTask, err := h.subTaskService.SetStatus(c.Request.Context(), caller, subTaskID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subTask)
}

func (h *SubTaskHandler) respondList(c *gin.Context, subTasks []models.SubTask, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if subTasks == nil {
		subTasks = []models.SubTask{}
	}
	c.JSON(http.StatusOK, gin.H{"subtasks": subTasks})
}
