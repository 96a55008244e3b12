package suggestions

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kitchenbuddy/kitchenbuddy/config"
)

var _ AIClient = (*GeminiClient)(nil)

// AIClient abstracts the chat-completion vendor so the service can be
// tested without network access.
type AIClient interface {
	GenerateResponse(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)
}

// GeminiClient talks to the Gemini API through the official SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (ai *GeminiClient) GenerateResponse(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	chat, err := ai.client.Chats.Create(ctx, ai.model, cfg, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	result, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return result.Text(), nil
}
