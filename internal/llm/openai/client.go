package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"careercoach-backend/internal/llm"
	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/internal/shared/metrics"
)

var apiURL = "https://api.openai.com/v1/chat/completions"

const (
	providerName   = "openai"
	defaultTimeout = 120 * time.Second
	maxErrorBody   = 2048
)

// Config configures a chat-completions client.
type Config struct {
	APIKey  string
	BaseURL string
	Params  llm.GenerationParams
	Timeout time.Duration
}

// Client implements llm.Client against the OpenAI Chat Completions API.
type Client struct {
	hasKey     bool
	endpoint   string
	params     llm.GenerationParams
	httpClient *http.Client
}

// NewClient builds a client. An empty key is accepted here and reported as a
// configuration error on the first Generate call, before any network I/O.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	params := cfg.Params
	if params.Model == "" {
		params = llm.DefaultParams("")
	}
	endpoint := ""
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		endpoint = base + "/chat/completions"
	}
	key := strings.TrimSpace(cfg.APIKey)
	return &Client{
		hasKey:   key != "",
		endpoint: endpoint,
		params:   params,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: key, TokenType: "Bearer"}),
				Base:   http.DefaultTransport,
			},
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate sends history in order and returns choices[0].message.content.
func (c *Client) Generate(ctx context.Context, history []llm.Message) (string, error) {
	const op = "openai.generate"
	if !c.hasKey {
		return "", apperr.Configuration(op, "OpenAI API key is not configured")
	}
	if len(history) == 0 {
		return "", apperr.Validation(op, "conversation history is empty")
	}

	start := time.Now()
	content, err := c.complete(ctx, op, history)
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	metrics.ObserveGeneration(providerName, outcome, time.Since(start))
	return content, err
}

func (c *Client) complete(ctx context.Context, op string, history []llm.Message) (string, error) {
	reqBody := chatRequest{
		Model:            c.params.Model,
		Messages:         toChatMessages(history),
		Temperature:      c.params.Temperature,
		MaxTokens:        c.params.MaxTokens,
		TopP:             c.params.TopP,
		FrequencyPenalty: c.params.FrequencyPenalty,
		PresencePenalty:  c.params.PresencePenalty,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", op, err)
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Transport(op, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", apperr.Transport(op, err, "request timed out")
		}
		return "", apperr.Transport(op, err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Transport(op, err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed errorResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return "", apperr.Upstream(op, nil, "%s", parsed.Error.Message)
		}
		return "", apperr.Transport(op, nil, "http status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(body))))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperr.Upstream(op, err, "malformed response body")
	}
	if len(parsed.Choices) == 0 {
		return "", apperr.Upstream(op, nil, "response missing choices")
	}
	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", apperr.Upstream(op, nil, "response has empty content")
	}

	if parsed.Usage != nil {
		log.Printf("llm response provider=%s model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
			providerName, c.params.Model, parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens, parsed.Usage.TotalTokens)
	}
	return content, nil
}

func toChatMessages(history []llm.Message) []chatMessage {
	out := make([]chatMessage, 0, len(history))
	for _, m := range history {
		role := "assistant"
		if m.Role == llm.RoleUser {
			role = "user"
		}
		out = append(out, chatMessage{Role: role, Content: m.Content})
	}
	return out
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}

var _ llm.Client = (*Client)(nil)
