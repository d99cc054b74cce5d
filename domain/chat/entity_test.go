package chat

import (
	"testing"
	"time"
)

func TestSeed(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sessions := Seed(now)

	if len(sessions) != 2 {
		t.Fatalf("Seed() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].UnreadCount != 2 {
		t.Errorf("c1 unread = %d, want 2", sessions[0].UnreadCount)
	}
	if got, want := sessions[0].LastMessageTime, now.Add(-30*time.Minute).UnixMilli(); got != want {
		t.Errorf("c1 lastMessageTime = %d, want %d", got, want)
	}
	if sessions[1].LastMessageTime >= sessions[0].LastMessageTime {
		t.Error("c2 should be older than c1")
	}
	if len(sessions[0].Messages) != 2 {
		t.Errorf("c1 transcript has %d messages, want 2", len(sessions[0].Messages))
	}
}

func TestSession_Clone(t *testing.T) {
	s := Session{Messages: []Message{{ID: "a"}}}
	c := s.Clone()
	c.Messages[0].ID = "b"
	c.Messages = append(c.Messages, Message{ID: "c"})

	if s.Messages[0].ID != "a" || len(s.Messages) != 1 {
		t.Errorf("Clone() shares transcript with original: %+v", s.Messages)
	}
}
