package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/utils"
)

// AccountDTO represents an account in API responses
type AccountDTO struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
	Role     models.Role `json:"role"`
	Approved bool        `json:"approved"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Account     AccountDTO `json:"account"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID                    uuid.UUID         `json:"id"`
	PostedBy              uuid.UUID         `json:"posted_by"`
	Name                  string            `json:"name"`
	Category              string            `json:"category"`
	Address               string            `json:"address"`
	StartDate             *time.Time        `json:"start_date"`
	NumberOfPeopleNeeded  int               `json:"number_of_people_needed"`
	RemainingPeopleNeeded int               `json:"remaining_people_needed"`
	Status                models.TaskStatus `json:"status"`
	CreatedAt             time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// Conversion functions

// ToAccountDTO converts an Account to AccountDTO
func ToAccountDTO(account models.Account) AccountDTO {
	return AccountDTO{
		ID:       account.ID,
		Name:     account.Name,
		Email:    account.Email,
		Phone:    account.Phone,
		Role:     account.Role,
		Approved: account.Approved,
	}
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:                    task.ID,
		PostedBy:              task.PostedBy,
		Name:                  task.Name,
		Category:              task.Category,
		Address:               task.Address,
		StartDate:             task.StartDate,
		NumberOfPeopleNeeded:  task.NumberOfPeopleNeeded,
		RemainingPeopleNeeded: task.RemainingPeopleNeeded,
		Status:                task.Status,
		CreatedAt:             task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page utils.Page, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalCount: totalCount,
		TotalPages: page.TotalPages(totalCount),
	}
}
