// Package llm talks to the text generation backends used to translate
// localisation bundles.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrNotConfigured is returned when no translation backend is configured.
var ErrNotConfigured = errors.New("llm: backend not configured")

// ErrUnsupportedBackend is returned for an unknown backend name.
var ErrUnsupportedBackend = errors.New("llm: unsupported backend")

// Client generates text completions.
type Client interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Model() string
	Backend() string
}

// Options tunes a single completion.
type Options struct {
	MaxTokens   int
	Temperature float64
	System      string
}

// DefaultOptions returns settings suited to short, literal translations.
func DefaultOptions() Options {
	return Options{
		MaxTokens:   512,
		Temperature: 0.1,
	}
}

// Config selects and configures a backend.
type Config struct {
	// Backend is "ollama", "openai", "anthropic", "disabled" or empty.
	Backend string
	Model   string
	// URL overrides the backend's base URL.
	URL string
	// APIKey falls back to OPENAI_API_KEY or ANTHROPIC_API_KEY.
	APIKey string
}

const (
	defaultOllamaURL      = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultOpenAIURL      = "https://api.openai.com/v1"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicURL   = "https://api.anthropic.com/v1"
	defaultAnthropicModel = "claude-3-haiku-20240307"
)

// NewClient builds the client named by cfg.Backend.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Backend {
	case "", "disabled":
		return nil, ErrNotConfigured

	case "ollama":
		return NewOllamaClient(or(cfg.URL, defaultOllamaURL), or(cfg.Model, defaultOllamaModel)), nil

	case "openai":
		key := or(cfg.APIKey, os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("llm: OpenAI API key required (set translate.apiKey or OPENAI_API_KEY)")
		}
		return NewOpenAIClient(or(cfg.URL, defaultOpenAIURL), key, or(cfg.Model, defaultOpenAIModel)), nil

	case "anthropic":
		key := or(cfg.APIKey, os.Getenv("ANTHROPIC_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("llm: Anthropic API key required (set translate.apiKey or ANTHROPIC_API_KEY)")
		}
		return NewAnthropicClient(or(cfg.URL, defaultAnthropicURL), key, or(cfg.Model, defaultAnthropicModel)), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, cfg.Backend)
	}
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func newHTTPClient() *http.Client {
	// Local models can take a while on the first request.
	return &http.Client{Timeout: 120 * time.Second}
}

// postJSON sends body to url and decodes the reply into out. Non-2xx replies
// are still decoded so that provider error payloads can be reported.
func postJSON(ctx context.Context, hc *http.Client, backend, url string, headers map[string]string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request failed: %w", backend, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, fmt.Errorf("%s returned status %d: %s", backend, resp.StatusCode, truncate(string(raw), 200))
		}
		return resp.StatusCode, fmt.Errorf("parse response: %w (body: %s)", err, truncate(string(raw), 200))
	}
	return resp.StatusCode, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
