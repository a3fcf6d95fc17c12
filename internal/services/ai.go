package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskDrafter turns free text into task drafts. today is the calendar day
// relative dates resolve against.
type TaskDrafter interface {
	GenerateTasksFromText(ctx context.Context, text string, today time.Time) ([]GeneratedTask, error)
}

type AIService struct {
	client *openai.Client
}

// GeneratedTask is a draft; Deadline is YYYY-MM-DD or empty.
type GeneratedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Deadline    string              `json:"deadline"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTasksFromText extracts tasks from text using OpenAI GPT in JSON mode
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string, today time.Time) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You extract concrete tasks from text for a team task tracker.

Today: %s

Text:
%s

Return a JSON object in this shape:
{
  "tasks": [
    {
      "title": "short task title",
      "description": "task details",
      "priority": "low | medium | high",
      "deadline": "YYYY-MM-DD, or empty string when no deadline is given"
    }
  ]
}

Rules:
- Use an empty "tasks" array when there are no tasks
- Convert relative dates ("tomorrow", "next week") to calendar dates
- Return JSON only, no commentary`, today.Format(constants.DateLayout), text)

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
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
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

	return parseDrafts(resp.Choices[0].Message.Content)
}

// parseDrafts decodes a {"tasks": [...]} reply, tolerating a markdown fence.
func parseDrafts(content string) ([]GeneratedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var reply struct {
		Tasks []GeneratedTask `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIInvalidResponse, err)
	}

	return reply.Tasks, nil
}
