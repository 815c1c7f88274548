package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/community-service-hub/internal/models"
)

// SubTaskGenerator proposes subtasks for a task.
type SubTaskGenerator interface {
	GenerateSubTasks(ctx context.Context, task *models.Task, notes string) ([]GeneratedSubTask, error)
}

type AIService struct {
	client *openai.Client
}

type GeneratedSubTask struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateSubTasks breaks a volunteer task into concrete subtasks using OpenAI GPT
func (s *AIService) GenerateSubTasks(ctx context.Context, task *models.Task, notes string) ([]GeneratedSubTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	startDate := "not scheduled"
	if task.StartDate != nil {
		startDate = task.StartDate.Format(time.RFC3339)
	}

	prompt := fmt.Sprintf(`You help community organizations plan volunteer work. Split the task below into concrete subtasks that one volunteer can each own.

Current time: %s

Task: %s
Category: %s
Location: %s
Start date: %s
Volunteers needed: %d
Description:
%s

Organizer notes:
%s

Return a JSON array in this form:
[
  {
    "name": "short subtask name",
    "description": "what the volunteer has to do, at most 1000 characters",
    "due_date": "deadline in ISO8601 (e.g. 2025-10-28T23:59:59Z), or null when there is none"
  }
]

Rules:
- Return [] when the task cannot be split
- Convert relative dates to absolute ones
- Return JSON only, without any explanation`,
		time.Now().Format("2006-01-02 15:04:05"),
		task.Name, task.Category, task.Address, startDate, task.NumberOfPeopleNeeded,
		task.Description, notes)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseGeneratedSubTasks(resp.Choices[0].Message.Content)
}

// parseGeneratedSubTasks also accepts output wrapped in a markdown code fence.
func parseGeneratedSubTasks(content string) ([]GeneratedSubTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var subTasks []GeneratedSubTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &subTasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	return subTasks, nil
}
