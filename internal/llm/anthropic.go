package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient implements Client using the messages API.
type AnthropicClient struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewAnthropicClient creates a client rooted at url, normally
// https://api.anthropic.com/v1.
func NewAnthropicClient(url, apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
		model:  model,
		client: newHTTPClient(),
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete implements Client.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultOptions().MaxTokens
	}
	req := anthropicRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: opts.Temperature,
		System:      opts.System,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	status, err := postJSON(ctx, c.client, "anthropic", c.url+"/messages", headers, req, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s (%s)", resp.Error.Message, resp.Error.Type)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("anthropic returned status %d", status)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no content")
	}
	return sb.String(), nil
}

// Model implements Client.
func (c *AnthropicClient) Model() string { return c.model }

// Backend implements Client.
func (c *AnthropicClient) Backend() string { return "anthropic" }
