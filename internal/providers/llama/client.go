// Package llama implements the language-model port against a local
// llama.cpp server or Ollama endpoint.
package llama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Config controls the local completion endpoint.
type Config struct {
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client sends fully formed prompts to the endpoint. The prompt already
// carries the model's chat-turn markers, so raw completion is requested.
type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	return &Client{cfg: cfg, client: &http.Client{}}
}

// Generate runs one completion and returns the model's free text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := c.requestBody(prompt)
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("completion failed (status %d): %s", resp.StatusCode, respBody)
	}

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading completion: %w", err)
	}

	content := extractContent(respData)
	if content == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return content, nil
}

// Ping reports whether the endpoint host answers at all. Used by the
// async loader; any completed response counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	u.Path = "/health"
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("endpoint unhealthy (status %d)", resp.StatusCode)
	}
	return nil
}

// requestBody picks the wire format from the endpoint path: Ollama's
// /api/generate, llama.cpp's /completion, or OpenAI-compatible otherwise.
func (c *Client) requestBody(prompt string) map[string]any {
	switch {
	case strings.HasSuffix(c.cfg.Endpoint, "/api/generate"):
		return map[string]any{
			"model":  c.cfg.Model,
			"prompt": prompt,
			"raw":    true,
			"stream": false,
			"options": map[string]any{
				"num_predict": c.cfg.MaxTokens,
				"temperature": c.cfg.Temperature,
			},
		}
	case strings.HasSuffix(c.cfg.Endpoint, "/completion"):
		return map[string]any{
			"prompt":      prompt,
			"n_predict":   c.cfg.MaxTokens,
			"temperature": c.cfg.Temperature,
			"stream":      false,
		}
	default:
		return map[string]any{
			"model":       c.cfg.Model,
			"prompt":      prompt,
			"max_tokens":  c.cfg.MaxTokens,
			"temperature": c.cfg.Temperature,
			"stream":      false,
		}
	}
}

func extractContent(data []byte) string {
	// llama.cpp format: {"content": "..."}
	var completion struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &completion); err == nil && completion.Content != "" {
		return completion.Content
	}

	// Ollama format: {"response": "..."}
	var ollama struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &ollama); err == nil && ollama.Response != "" {
		return ollama.Response
	}

	// OpenAI-compatible format: {"choices": [{"text": "..."}]}
	var openai struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &openai); err == nil && len(openai.Choices) > 0 {
		return openai.Choices[0].Text
	}

	return ""
}
