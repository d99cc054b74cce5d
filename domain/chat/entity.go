package chat

import "time"

// SelfID is the sender id of the signed-in user.
const SelfID = "me"

// Message is a single line of a conversation.
type Message struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	System    bool   `json:"isSystem,omitempty"`
}

// Session is a conversation about one property. PropertyName and PropertyImage
// are a snapshot taken when the session was created and are not kept in sync.
// PropertyID may point at a listing that no longer exists.
type Session struct {
	ID               string    `json:"id"`
	PropertyID       string    `json:"propertyId"`
	PropertyName     string    `json:"propertyName"`
	PropertyImage    string    `json:"propertyImage"`
	OtherParticipant string    `json:"otherParticipantName"`
	LastMessage      string    `json:"lastMessage"`
	LastMessageTime  int64     `json:"lastMessageTime"`
	UnreadCount      int       `json:"unreadCount"`
	Messages         []Message `json:"messages,omitempty"`
}

// Clone returns a copy that does not share the transcript slice.
func (s Session) Clone() Session {
	s.Messages = append([]Message(nil), s.Messages...)
	return s
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
