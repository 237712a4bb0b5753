package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// OpenAIClient implements Client using the chat completions API.
type OpenAIClient struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewOpenAIClient creates a client rooted at url, normally
// https://api.openai.com/v1.
func NewOpenAIClient(url, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		url:    strings.TrimRight(url, "/"),
		apiKey: apiKey,
		model:  model,
		client: newHTTPClient(),
	}
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete implements Client.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	messages := make([]openAIMessage, 0, 2)
	if opts.System != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: opts.System})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: prompt})

	req := openAIRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp openAIResponse
	status, err := postJSON(ctx, c.client, "openai", c.url+"/chat/completions", headers, req, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", resp.Error.Message, resp.Error.Type)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d", status)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Model implements Client.
func (c *OpenAIClient) Model() string { return c.model }

// Backend implements Client.
func (c *OpenAIClient) Backend() string { return "openai" }
