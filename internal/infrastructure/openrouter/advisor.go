package openrouter

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"agrisight/internal/domain/entity"
	"agrisight/internal/domain/port"
)

const (
	// DefaultBaseURL совместимый с OpenAI шлюз OpenRouter.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel модель агронома по умолчанию.
	DefaultModel = "anthropic/claude-3.5-sonnet"

	maxTokens = 1000
)

const systemPrompt = `You are an experienced agronomist and plant pathologist.
The user is asking about a %s plant with %s disease.

Provide helpful, accurate, and safe agricultural advice. Include:
1. Clear diagnosis explanation
2. Organic treatment options
3. Chemical treatment options (if appropriate)
4. Prevention methods
5. Safety considerations

Keep responses practical and easy to understand.`

// Advisor ИИ-агроном через OpenRouter.
type Advisor struct {
	client *openai.Client
	model  string
}

// NewAdvisor создаёт клиент. Пустой ключ — ошибка конфигурации сразу,
// а не при первом вопросе.
func NewAdvisor(apiKey, baseURL, model string) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openrouter api key", entity.ErrConfiguration)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = DefaultModel
	}

	return &Advisor{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Advise отвечает на вопрос с учётом культуры и диагноза.
func (a *Advisor) Advise(ctx context.Context, question, diseaseName, cropType string) (string, error) {
	if cropType == "" {
		cropType = entity.DefaultCropType
	}
	if diseaseName == "" {
		diseaseName = "an unknown"
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, cropType, diseaseName)},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from advisor model")
	}
	return resp.Choices[0].Message.Content, nil
}

// Проверка реализации интерфейса
var _ port.Advisor = (*Advisor)(nil)
