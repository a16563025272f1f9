// Package ai implements the completion client against Groq's
// OpenAI-compatible chat endpoint.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

var ErrNotConfigured = errors.New("ai: no api key configured")
var ErrEmptyCompletion = errors.New("ai: completion service returned no choices")

const defaultRequestTimeout = 30 * time.Second

// Config captures the settings for the external completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client wraps the OpenAI-compatible API. A missing credential is resolved
// here at construction: the client is built unconfigured and every call
// fails fast with ErrNotConfigured instead of the process refusing to start.
type Client struct {
	api        *openai.Client
	model      string
	timeout    time.Duration
	configured bool
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	if cfg.APIKey == "" {
		return &Client{timeout: timeout}
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:        openai.NewClientWithConfig(apiCfg),
		model:      cfg.Model,
		timeout:    timeout,
		configured: true,
	}
}

func (c *Client) Configured() bool {
	return c.configured
}

// Complete performs one blocking chat-completion round trip.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    domain.RoleSystem,
		Content: req.Instruction,
	})
	for _, turn := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
