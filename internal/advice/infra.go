package advice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model, timeout)
}

func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string, timeout time.Duration) *OpenAIClient {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, persona, question string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: persona},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	log.Printf("[openai][%.1fs] completion done model=%s err=%v", time.Since(start).Seconds(), c.model, err)

	if err != nil {
		return "", fmt.Errorf("%s: %w", describeError(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openai returned empty answer")
	}
	return text, nil
}

// диагностика ошибок OpenAI
func describeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "OpenAI request timed out"
	}

	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return "OpenAI request failed"
	}

	switch apiErr.HTTPStatusCode {
	case http.StatusUnauthorized:
		return "invalid OpenAI API key"
	case http.StatusNotFound:
		return "model not found"
	case http.StatusTooManyRequests:
		return "OpenAI rate limit exceeded"
	case http.StatusBadRequest:
		return "bad request to OpenAI"
	}
	if apiErr.HTTPStatusCode >= 500 {
		return "OpenAI internal error"
	}
	return "OpenAI error"
}

// ProviderMessage — сообщение, которое вернул сам OpenAI (если есть)
func ProviderMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
