// Package openai implements the assistant gateway against any
// OpenAI-compatible chat completion endpoint (OpenAI, OpenRouter, a local
// proxy) via a configurable base URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"fintrack/internal/assistant"
	"fintrack/internal/core"
)

const requestTimeout = 30 * time.Second

type Gateway struct {
	client *openai.Client
	model  string
}

var _ assistant.Gateway = (*Gateway)(nil)

// New creates a gateway. baseURL may be empty for the default OpenAI
// endpoint.
func New(apiKey, baseURL, model string) (*Gateway, error) {
	if apiKey == "" {
		return nil, errors.New("missing assistant API key")
	}
	if model == "" {
		return nil, errors.New("missing assistant model")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Gateway{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Answer sends the digest-derived system prompt and the user's question to
// the chat endpoint and returns the generated answer verbatim.
func (g *Gateway) Answer(ctx context.Context, digest core.Digest, _ []core.Transaction, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistant.SystemPrompt(digest)},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	slog.InfoContext(ctx, "Assistant answered",
		"model", g.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}
