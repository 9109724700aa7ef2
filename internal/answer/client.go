// Package answer talks to an OpenAI-compatible chat-completions API to
// generate and rewrite answers. The provider is treated as an opaque
// collaborator: one question in, free text out, no retries.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	generateSystemPrompt = "You are a helpful academic assistant. Provide clear, comprehensive, and well-structured answers to assignment questions. Use proper formatting and organize your response logically."
	rewriteSystemPrompt  = "Rewrite the following text to be clear, natural, and human-like. Maintain the original meaning and structure, but improve clarity, flow, and readability. Use a conversational yet professional tone."

	maxCompletionTokens = 2000
)

// Config holds provider settings. BaseURL is overridable for tests.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is an answer-generation client.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a client. An empty APIKey is allowed; calls will fail
// with ErrNotConfigured so the server can still start without a provider.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4-turbo-preview"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = fmt.Errorf("answer service is not configured")

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces an answer for an academic question.
func (c *Client) Generate(ctx context.Context, question string) (string, error) {
	return c.complete(ctx, generateSystemPrompt, question, 0.7)
}

// Rewrite rephrases an answer to read more naturally.
func (c *Client) Rewrite(ctx context.Context, answer string) (string, error) {
	return c.complete(ctx, rewriteSystemPrompt, answer, 0.8)
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("provider error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("provider returned no completion")
	}
	return parsed.Choices[0].Message.Content, nil
}
