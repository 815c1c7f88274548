package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/dto"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/services"
	"github.com/yukikurage/community-service-hub/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the public task listing.
// Supports status, category and posted_by filters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	page := utils.ParsePage(c)
	input := services.ListTasksInput{
		Category: c.Query("category"),
		Page:     page.Number,
		PageSize: page.Size,
	}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(strings.ToUpper(raw))
		if status != models.TaskStatusOpen && status != models.TaskStatusClosed {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	if raw := c.Query("posted_by"); raw != "" {
		postedBy, err := uuid.Parse(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid posted_by filter")
			return
		}
		input.PostedBy = &postedBy
	}

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, page, total))
}

// ListMyTasks returns the tasks posted by the calling NGO
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	page := utils.ParsePage(c)
	tasks, total, err := h.taskService.ListTasksForNGO(c.Request.Context(), caller, page.Number, page.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, page, total))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, _ := middleware.GetUUIDParam(c, "id")

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		PostedBy             *uuid.UUID `json:"posted_by"`
		Name                 string     `json:"name" binding:"required,max=255"`
		Category             string     `json:"category" binding:"max=100"`
		Description          string     `json:"description" binding:"max=1000"`
		Address              string     `json:"address" binding:"max=255"`
		Latitude             *float64   `json:"latitude"`
		Longitude            *float64   `json:"longitude"`
		StartDate            *time.Time `json:"start_date"`
		NumberOfPeopleNeeded int        `json:"number_of_people_needed"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Name:                 req.Name,
		Category:             req.Category,
		Description:          req.Description,
		Address:              req.Address,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		StartDate:            req.StartDate,
		NumberOfPeopleNeeded: req.NumberOfPeopleNeeded,
	}
	if req.PostedBy != nil {
		input.PostedBy = *req.PostedBy
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	type UpdateTaskRequest struct {
		Name                 *string    `json:"name" binding:"omitempty,max=255"`
		Category             *string    `json:"category" binding:"omitempty,max=100"`
		Description          *string    `json:"description" binding:"omitempty,max=1000"`
		Address              *string    `json:"address" binding:"omitempty,max=255"`
		Latitude             *float64   `json:"latitude"`
		Longitude            *float64   `json:"longitude"`
		StartDate            *time.Time `json:"start_date"`
		NumberOfPeopleNeeded *int       `json:"number_of_people_needed"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), caller, taskID, services.UpdateTaskInput{
		Name:                 req.Name,
		Category:             req.Category,
		Description:          req.Description,
		Address:              req.Address,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		StartDate:            req.StartDate,
		NumberOfPeopleNeeded: req.NumberOfPeopleNeeded,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	taskID, _ := middleware.GetUUIDParam(c, "id")

	if err := h.taskService.DeleteTask(c.Request.Context(), caller, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}
