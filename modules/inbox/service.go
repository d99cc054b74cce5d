// Package inbox holds the chat session list and the conversation currently open.
package inbox

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/rentlink/domain/chat"
	"github.com/example/rentlink/domain/property"
)

// Inbox stores sessions and tracks which one is shown in the detail view.
type Inbox struct {
	sessions []chat.Session
	active   string
}

// New creates an inbox holding seed.
func New(seed []chat.Session) *Inbox {
	in := &Inbox{}
	for _, s := range seed {
		in.sessions = append(in.sessions, s.Clone())
	}
	return in
}

// List returns sessions most recent first. Transcripts are left out; the
// list only shows previews.
func (in *Inbox) List() []chat.Session {
	out := make([]chat.Session, len(in.sessions))
	for i, s := range in.sessions {
		s.Messages = nil
		out[i] = s
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTime > out[j].LastMessageTime
	})
	return out
}

// Get returns a session with its transcript.
func (in *Inbox) Get(id string) (chat.Session, bool) {
	s := in.find(id)
	if s == nil {
		return chat.Session{}, false
	}
	return s.Clone(), true
}

// Open makes id the active conversation and marks it read.
func (in *Inbox) Open(id string) (chat.Session, error) {
	s := in.find(id)
	if s == nil {
		return chat.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.UnreadCount = 0
	in.active = id
	return s.Clone(), nil
}

// Close clears the active conversation.
func (in *Inbox) Close() {
	in.active = ""
}

// Active returns the conversation shown in the detail view.
func (in *Inbox) Active() (chat.Session, bool) {
	if in.active == "" {
		return chat.Session{}, false
	}
	return in.Get(in.active)
}

// Send appends a message from the signed-in user. No reply is simulated.
func (in *Inbox) Send(id, text string, now time.Time) (chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, ErrEmptyMessage
	}
	s := in.find(id)
	if s == nil {
		return chat.Message{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	msg := chat.Message{
		ID:        uuid.New().String(),
		SenderID:  chat.SelfID,
		Text:      text,
		Timestamp: chat.Millis(now),
	}
	s.Messages = append(s.Messages, msg)
	s.LastMessage = text
	s.LastMessageTime = msg.Timestamp
	return msg, nil
}

// StartFromProperty returns the session about p, creating one if needed.
// A new session snapshots the listing's title and first image.
func (in *Inbox) StartFromProperty(p property.Property, now time.Time) (chat.Session, bool) {
	for i := range in.sessions {
		if in.sessions[i].PropertyID == p.ID {
			return in.sessions[i].Clone(), false
		}
	}
	ts := chat.Millis(now)
	intro := "You started a conversation about " + p.Title
	s := chat.Session{
		ID:               uuid.New().String(),
		PropertyID:       p.ID,
		PropertyName:     p.Title,
		PropertyImage:    p.PrimaryImage(),
		OtherParticipant: p.OwnerName,
		LastMessage:      intro,
		LastMessageTime:  ts,
		Messages: []chat.Message{{
			ID:        uuid.New().String(),
			SenderID:  chat.SelfID,
			Text:      intro,
			Timestamp: ts,
			System:    true,
		}},
	}
	in.sessions = append(in.sessions, s)
	return s.Clone(), true
}

// UnreadTotal sums unread counters across sessions.
func (in *Inbox) UnreadTotal() int {
	n := 0
	for _, s := range in.sessions {
		n += s.UnreadCount
	}
	return n
}

func (in *Inbox) find(id string) *chat.Session {
	for i := range in.sessions {
		if in.sessions[i].ID == id {
			return &in.sessions[i]
		}
	}
	return nil
}
