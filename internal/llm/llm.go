package llm

import (
	"context"
	"time"
)

// Role is the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation. Order of a history is conversation order.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Client sends a full conversation history to a text-generation endpoint and
// returns the content of the newest assistant reply. Implementations do not retry.
type Client interface {
	Generate(ctx context.Context, history []Message) (string, error)
}

// GenerationParams are fixed per client, not tuned per call.
type GenerationParams struct {
	Model            string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

const DefaultOpenAIModel = "gpt-4-turbo-preview"

// DefaultParams returns the parameters used for every completion request.
func DefaultParams(model string) GenerationParams {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return GenerationParams{
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        1,
	}
}

// ClientFactory builds a Client for an API key supplied at runtime.
type ClientFactory func(apiKey string) (Client, error)
