package conversation

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"careercoach-backend/internal/llm"
)

// Store is an append-only ordered message log. It never deletes, reorders or
// deduplicates; Snapshot copies so readers never race later appends.
type Store struct {
	mu       sync.RWMutex
	messages []llm.Message
	now      func() time.Time
	newID    func() string
}

// New returns an empty store using the wall clock and random ids.
func New() *Store {
	return &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Append stamps id and timestamp and adds the message as the new last element.
func (s *Store) Append(role llm.Role, content string) llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := llm.Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Snapshot returns a copy of the log in append order.
func (s *Store) Snapshot() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]llm.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Topic names a conversation kept by one owner.
type Topic string

const (
	TopicChat           Topic = "chat"
	TopicCoverLetter    Topic = "cover-letter"
	TopicResumeOptimize Topic = "resume-optimize"
)

// ParseTopic normalizes a topic name, defaulting to chat.
func ParseTopic(raw string) (Topic, bool) {
	switch Topic(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TopicChat:
		return TopicChat, true
	case TopicCoverLetter:
		return TopicCoverLetter, true
	case TopicResumeOptimize:
		return TopicResumeOptimize, true
	default:
		return "", false
	}
}
