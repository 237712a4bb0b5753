package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// OllamaClient implements Client against a local Ollama server.
type OllamaClient struct {
	url    string
	model  string
	client *http.Client
}

// NewOllamaClient creates a client for the server at url.
func NewOllamaClient(url, model string) *OllamaClient {
	return &OllamaClient{
		url:    strings.TrimRight(url, "/"),
		model:  model,
		client: newHTTPClient(),
	}
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Complete implements Client.
func (c *OllamaClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	req := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		System: opts.System,
		Options: &ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}
	var resp ollamaResponse
	status, err := postJSON(ctx, c.client, "ollama", c.url+"/api/generate", nil, req, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", resp.Error)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", status)
	}
	return resp.Response, nil
}

// Model implements Client.
func (c *OllamaClient) Model() string { return c.model }

// Backend implements Client.
func (c *OllamaClient) Backend() string { return "ollama" }
