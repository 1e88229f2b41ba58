package conversation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"careercoach-backend/internal/llm"
)

func TestAppendAssignsIdentityAndOrder(t *testing.T) {
	s := New()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := s.Append(llm.RoleUser, "Hi")
	second := s.Append(llm.RoleAssistant, "Hello")

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %q and %q", first.ID, second.ID)
	}
	if !second.Timestamp.After(first.Timestamp) {
		t.Fatalf("timestamps not assigned at append time")
	}
	snap := s.Snapshot()
	if len(snap) != 2 || snap[0].Content != "Hi" || snap[1].Content != "Hello" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSnapshotIsIsolatedFromLaterAppends(t *testing.T) {
	s := New()
	s.Append(llm.RoleUser, "one")
	snap := s.Snapshot()
	s.Append(llm.RoleAssistant, "two")
	snap[0].Content = "mutated"

	if len(snap) != 1 {
		t.Fatalf("snapshot grew after append: %d", len(snap))
	}
	if s.Snapshot()[0].Content != "one" {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestConcurrentAppendsAreAllKept(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(llm.RoleUser, fmt.Sprintf("m%d", i))
		}(i)
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Fatalf("Len = %d, want 50", s.Len())
	}
}

func TestParseTopic(t *testing.T) {
	if topic, ok := ParseTopic(""); !ok || topic != TopicChat {
		t.Fatalf("empty topic should default to chat")
	}
	if topic, ok := ParseTopic(" Cover-Letter "); !ok || topic != TopicCoverLetter {
		t.Fatalf("ParseTopic = %q, %v", topic, ok)
	}
	if _, ok := ParseTopic("poetry"); ok {
		t.Fatalf("unknown topic accepted")
	}
}
