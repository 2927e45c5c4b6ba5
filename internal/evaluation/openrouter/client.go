// Package openrouter implements evaluation.Client against OpenRouter's OpenAI-compatible API.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1"

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (c *Client) Complete(ctx context.Context, prompt evaluation.Prompt) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxTokens:   prompt.MaxTokens,
		Temperature: float32(prompt.Temperature),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusForbidden && evaluation.IsRegionBlocked(apiErr.Message) {
			return "", &evaluation.BlockedError{Err: err}
		}
		return "", fmt.Errorf("client.CreateChatCompletion > %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in openrouter response")
	}
	return resp.Choices[0].Message.Content, nil
}
