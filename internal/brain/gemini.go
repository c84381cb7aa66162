package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ent0n29/iris/internal/convo"
)

// GeminiAdapter talks to Gemini through its OpenAI-compatible chat-completions
// endpoint. The full conversation is sent verbatim on every call.
type GeminiAdapter struct {
	client openai.Client
	model  string
}

func NewGeminiAdapter(apiKey, baseURL, model string) (*GeminiAdapter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("gemini model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &GeminiAdapter{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (a *GeminiAdapter) Generate(ctx context.Context, turns []convo.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case convo.RoleModel:
			messages = append(messages, openai.AssistantMessage(t.Content))
		default:
			messages = append(messages, openai.UserMessage(t.Content))
		}
	}
	if len(messages) == 0 {
		return "", errors.New("no conversation turns to send")
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("gemini chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("gemini returned no choices")
	}
	return CleanReply(resp.Choices[0].Message.Content), nil
}
