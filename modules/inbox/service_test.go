package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rentlink/domain/chat"
	"github.com/example/rentlink/domain/property"
)

var now = time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

func sessionIDs(sessions []chat.Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}

func TestInbox_ListOrderedByRecency(t *testing.T) {
	in := New([]chat.Session{
		{ID: "old", LastMessageTime: 100},
		{ID: "new", LastMessageTime: 300},
		{ID: "mid", LastMessageTime: 200},
	})

	assert.Equal(t, []string{"new", "mid", "old"}, sessionIDs(in.List()))
}

func TestInbox_OpenZeroesUnread(t *testing.T) {
	in := New(chat.Seed(now))
	assert.Equal(t, 2, in.UnreadTotal())

	s, err := in.Open("c1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.UnreadCount)
	assert.Equal(t, 0, in.UnreadTotal())

	active, ok := in.Active()
	require.True(t, ok)
	assert.Equal(t, "c1", active.ID)
	assert.Len(t, active.Messages, 2)

	in.Close()
	_, ok = in.Active()
	assert.False(t, ok)
}

func TestInbox_OpenUnknown(t *testing.T) {
	in := New(nil)
	_, err := in.Open("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInbox_Send(t *testing.T) {
	in := New(chat.Seed(now))

	tests := []struct {
		name    string
		id      string
		text    string
		wantErr error
	}{
		{name: "blank text", id: "c2", text: "   ", wantErr: ErrEmptyMessage},
		{name: "unknown session", id: "zz", text: "hi", wantErr: ErrSessionNotFound},
		{name: "valid", id: "c2", text: "Can I visit tomorrow?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := in.Send(tt.id, tt.text, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, msg.ID)
			assert.Equal(t, chat.SelfID, msg.SenderID)

			s, _ := in.Get(tt.id)
			assert.Equal(t, tt.text, s.LastMessage)
			assert.Equal(t, now.UnixMilli(), s.LastMessageTime)
			assert.Len(t, s.Messages, 3)
		})
	}

	assert.Equal(t, []string{"c2", "c1"}, sessionIDs(in.List()), "sending moves the session to the top")
}

func TestInbox_StartFromProperty(t *testing.T) {
	in := New(chat.Seed(now))

	existing, created := in.StartFromProperty(property.Property{ID: "1", Title: "renamed"}, now)
	assert.False(t, created)
	assert.Equal(t, "c1", existing.ID)
	assert.Equal(t, "Modern Loft in Downtown", existing.PropertyName)

	p := property.Property{ID: "2", Title: "Cozy Family House", OwnerName: "Mike Ross", Images: []string{"img"}}
	s, created := in.StartFromProperty(p, now)
	require.True(t, created)
	assert.Equal(t, "2", s.PropertyID)
	assert.Equal(t, "Cozy Family House", s.PropertyName)
	assert.Equal(t, "img", s.PropertyImage)
	assert.Equal(t, "Mike Ross", s.OtherParticipant)
	require.Len(t, s.Messages, 1)
	assert.True(t, s.Messages[0].System)

	again, created := in.StartFromProperty(p, now)
	assert.False(t, created)
	assert.Equal(t, s.ID, again.ID)
}

func TestInbox_ListDoesNotExposeTranscript(t *testing.T) {
	in := New(chat.Seed(now))
	for _, s := range in.List() {
		assert.Nil(t, s.Messages)
	}
	s, _ := in.Get("c1")
	assert.NotEmpty(t, s.Messages)
}
