package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"taxblog/internal/config"
)

const (
	defaultCategory   = "general accounting"
	defaultTone       = "professional"
	defaultWordCount  = 1900
	probeModel        = "gpt-3.5-turbo"
	responseBodyLimit = 1 << 20
)

var (
	ErrMisconfigured = errors.New("openai client misconfigured")
	ErrEmptyResponse = errors.New("no content in generation response")
	ErrInvalidAPIKey = errors.New("generation provider rejected the API key")
	ErrRateLimited   = errors.New("generation provider rate limit exceeded")
	ErrQuotaExceeded = errors.New("generation provider quota exhausted")
)

// Client talks to an OpenAI-compatible chat completions API.
type Client struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewClient builds a client from configuration. A missing API key is not
// an error here; it surfaces on the first call.
func NewClient(cfg config.OpenAIConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GenerateOptions describe one blog article to produce.
type GenerateOptions struct {
	Topic           string
	Category        string
	Tone            string // professional, friendly, authoritative, conversational
	TargetWordCount int
	SeoGuidelines   string
}

// GeneratedContent is the structured reply of a successful generation.
type GeneratedContent struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	Excerpt          string `json:"excerpt"`
	WordCount        int    `json:"word_count"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	TotalTokens      int    `json:"total_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat *formatSpec    `json:"response_format,omitempty"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// GenerateBlogContent produces one article for the given topic. No retries:
// every failure propagates to the caller as a single synchronous error.
func (c *Client) GenerateBlogContent(ctx context.Context, opts GenerateOptions) (*GeneratedContent, error) {
	const op = "llm.Client.GenerateBlogContent"

	if opts.Topic == "" {
		return nil, fmt.Errorf("%s: topic is required", op)
	}
	if opts.Category == "" {
		opts.Category = defaultCategory
	}
	if opts.Tone == "" {
		opts.Tone = defaultTone
	}
	if opts.TargetWordCount == 0 {
		opts.TargetWordCount = defaultWordCount
	}

	resp, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(opts)},
			{Role: "user", Content: buildUserPrompt(opts)},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &formatSpec{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	var parsed struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Excerpt string `json:"excerpt"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("%s: failed to parse generation reply: %w", op, err)
	}

	if parsed.Title == "" || parsed.Content == "" || parsed.Excerpt == "" {
		return nil, fmt.Errorf("%s: missing required fields in generation reply", op)
	}

	content := strings.TrimSpace(parsed.Content)

	return &GeneratedContent{
		Title:   strings.TrimSpace(parsed.Title),
		Content: content,
		Excerpt: strings.TrimSpace(parsed.Excerpt),
		// Plain character count; no language-aware tokenization.
		WordCount:        utf8.RuneCountInString(content),
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// Ping checks connectivity with a minimal completion against a cheap model.
func (c *Client) Ping(ctx context.Context) error {
	const op = "llm.Client.Ping"

	resp, err := c.complete(ctx, chatRequest{
		Model:     probeModel,
		Messages:  []chatMessage{{Role: "user", Content: "ping"}},
		MaxTokens: 10,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	return nil
}

func (c *Client) complete(ctx context.Context, payload chatRequest) (*chatResponse, error) {
	if c.apiKey == "" || c.baseURL == "" || payload.Model == "" {
		return nil, ErrMisconfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, mapProviderError(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}

	return &parsed, nil
}

// mapProviderError re-maps provider failures onto the three user-facing
// categories, falling back to a generic error with the raw message.
func mapProviderError(status int, raw []byte) error {
	var ae apiError
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &ae); err == nil && ae.Error.Message != "" {
		msg = ae.Error.Message
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "api key"):
		return fmt.Errorf("%w: %s", ErrInvalidAPIKey, msg)
	case strings.Contains(lower, "rate limit"):
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case strings.Contains(lower, "insufficient_quota") || ae.Error.Code == "insufficient_quota":
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
	}

	return fmt.Errorf("provider error %d: %s", status, msg)
}
