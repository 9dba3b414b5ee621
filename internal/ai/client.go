package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Message is one entry of a chat-completions message list.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
// All model backends are reached through the same gateway; only the
// model identifier differs per provider.
type Client struct {
	BaseURL string
	APIKey  string
	Referer string
	Title   string

	httpc *http.Client
}

func NewClient(baseURL, apiKey, referer, title string) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Referer: referer,
		Title:   title,
		httpc:   &http.Client{},
	}
}

// ChatCompletion issues one request and returns the text content of the
// first choice. A non-2xx status is returned as *HTTPError with the raw
// body preserved; no retries are attempted.
func (c *Client) ChatCompletion(ctx context.Context, provider, model string, messages []Message, temperature *float64, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Referer != "" {
		req.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		req.Header.Set("X-Title", c.Title)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{
			Provider:   provider,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", provider)
	}

	return parsed.Choices[0].Message.Content, nil
}
