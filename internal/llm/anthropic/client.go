package anthropic

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"careercoach-backend/internal/llm"
	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/internal/shared/metrics"
)

const (
	providerName   = "anthropic"
	DefaultModel   = "claude-3-7-sonnet-latest"
	defaultTimeout = 120 * time.Second
)

// Config configures the Messages API client.
type Config struct {
	APIKey  string
	BaseURL string
	Params  llm.GenerationParams
	Timeout time.Duration
}

// Client implements llm.Client with the Anthropic Messages API.
type Client struct {
	hasKey bool
	params llm.GenerationParams
	client sdk.Client
}

// NewClient builds a client with SDK retries disabled; callers own retry policy.
func NewClient(cfg Config) *Client {
	params := cfg.Params
	if params.Model == "" || params.Model == llm.DefaultOpenAIModel {
		params = llm.DefaultParams(DefaultModel)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	key := strings.TrimSpace(cfg.APIKey)
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &Client{
		hasKey: key != "",
		params: params,
		client: sdk.NewClient(opts...),
	}
}

// Generate sends history and returns the text of the first content block.
func (c *Client) Generate(ctx context.Context, history []llm.Message) (string, error) {
	const op = "anthropic.generate"
	if !c.hasKey {
		return "", apperr.Configuration(op, "Anthropic API key is not configured")
	}
	if len(history) == 0 {
		return "", apperr.Validation(op, "conversation history is empty")
	}

	start := time.Now()
	text, err := c.complete(ctx, op, history)
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	metrics.ObserveGeneration(providerName, outcome, time.Since(start))
	return text, err
}

func (c *Client) complete(ctx context.Context, op string, history []llm.Message) (string, error) {
	response, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(c.params.Model),
		MaxTokens:   int64(c.params.MaxTokens),
		Temperature: sdk.Float(c.params.Temperature),
		TopP:        sdk.Float(c.params.TopP),
		Messages:    toMessageParams(history),
	})
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", apperr.Upstream(op, err, "messages API returned status %d", apiErr.StatusCode)
		}
		return "", apperr.Transport(op, err, "request failed")
	}

	for _, block := range response.Content {
		if text := block.AsText().Text; strings.TrimSpace(text) != "" {
			log.Printf("llm response provider=%s model=%s input_tokens=%d output_tokens=%d",
				providerName, c.params.Model, response.Usage.InputTokens, response.Usage.OutputTokens)
			return text, nil
		}
	}
	return "", apperr.Upstream(op, nil, "response has no text content")
}

func toMessageParams(history []llm.Message) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(history))
	for _, m := range history {
		role := sdk.MessageParamRoleAssistant
		if m.Role == llm.RoleUser {
			role = sdk.MessageParamRoleUser
		}
		out = append(out, sdk.MessageParam{
			Role: role,
			Content: []sdk.ContentBlockParamUnion{{
				OfText: &sdk.TextBlockParam{Text: m.Content},
			}},
		})
	}
	return out
}

var _ llm.Client = (*Client)(nil)
