package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"careercoach-backend/internal/conversation"
	"careercoach-backend/internal/llm"
	"careercoach-backend/internal/shared/apperr"
)

// ErrBusy is returned when a send is already outstanding for the same topic.
var ErrBusy = errors.New("a request for this conversation is already in flight")

// Context is one owner's AI session: the active credential, one conversation per
// topic, and in-flight gating. It replaces ambient shared state with an explicit
// lifecycle of Configure and Reset.
type Context struct {
	factory    llm.ClientFactory
	defaultKey string

	mu       sync.Mutex
	apiKey   string
	client   llm.Client
	stores   map[conversation.Topic]*conversation.Store
	inflight map[conversation.Topic]uint64
	sends    uint64
}

// NewContext returns a session that falls back to defaultKey until Configure is called.
func NewContext(factory llm.ClientFactory, defaultKey string) *Context {
	c := &Context{factory: factory, defaultKey: strings.TrimSpace(defaultKey)}
	c.resetLocked()
	return c
}

// Configure installs a credential for this session.
func (c *Context) Configure(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return apperr.Validation("assistant.configure", "apiKey is required")
	}
	client, err := c.factory(apiKey)
	if err != nil {
		return apperr.Configuration("assistant.configure", "build client: %v", err)
	}
	c.mu.Lock()
	c.apiKey = apiKey
	c.client = client
	c.mu.Unlock()
	return nil
}

// Reset drops the session credential and every conversation.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Context) resetLocked() {
	c.apiKey = c.defaultKey
	c.client = nil
	c.stores = make(map[conversation.Topic]*conversation.Store)
	c.inflight = make(map[conversation.Topic]uint64)
}

// Configured reports whether a credential is available.
func (c *Context) Configured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey != ""
}

// Messages returns a snapshot of the topic's conversation.
func (c *Context) Messages(topic conversation.Topic) []llm.Message {
	c.mu.Lock()
	store := c.stores[topic]
	c.mu.Unlock()
	if store == nil {
		return []llm.Message{}
	}
	return store.Snapshot()
}

// Send appends content as a user message, sends the full conversation, and
// appends and returns the reply. A second Send on the same topic fails with
// ErrBusy until the first returns. On failure the user message stays in the log.
func (c *Context) Send(ctx context.Context, topic conversation.Topic, content string) (llm.Message, error) {
	const op = "assistant.send"
	if strings.TrimSpace(content) == "" {
		return llm.Message{}, apperr.Validation(op, "message content is required")
	}

	c.mu.Lock()
	if c.apiKey == "" {
		c.mu.Unlock()
		return llm.Message{}, apperr.Configuration(op, "AI assistant is not enabled: no API key configured")
	}
	if c.inflight[topic] != 0 {
		c.mu.Unlock()
		return llm.Message{}, ErrBusy
	}
	client, err := c.clientLocked()
	if err != nil {
		c.mu.Unlock()
		return llm.Message{}, err
	}
	store := c.stores[topic]
	if store == nil {
		store = conversation.New()
		c.stores[topic] = store
	}
	// sends is never reset, so a send admitted before Reset cannot match a
	// token issued after it.
	c.sends++
	token := c.sends
	c.inflight[topic] = token
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.inflight[topic] == token {
			delete(c.inflight, topic)
		}
		c.mu.Unlock()
	}()

	store.Append(llm.RoleUser, content)
	reply, err := client.Generate(ctx, store.Snapshot())
	if err != nil {
		return llm.Message{}, err
	}
	return store.Append(llm.RoleAssistant, reply), nil
}

func (c *Context) clientLocked() (llm.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	client, err := c.factory(c.apiKey)
	if err != nil {
		return nil, apperr.Configuration("assistant.send", "build client: %v", err)
	}
	c.client = client
	return client, nil
}
