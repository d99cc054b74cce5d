package chat

import "time"

// Seed returns the bootstrap inbox with timestamps relative to now.
func Seed(now time.Time) []Session {
	transcript := func(sessionID string, at time.Time) []Message {
		return []Message{
			{ID: sessionID + "-m1", SenderID: SelfID, Text: "Hi! Is the apartment still available?", Timestamp: Millis(at.Add(-time.Minute))},
			{ID: sessionID + "-m2", SenderID: "other", Text: "Yes, it is! When would you like to view it?", Timestamp: Millis(at)},
		}
	}

	c1At := now.Add(-30 * time.Minute)
	c2At := now.Add(-24 * time.Hour)
	return []Session{
		{
			ID:               "c1",
			PropertyID:       "1",
			PropertyName:     "Modern Loft in Downtown",
			PropertyImage:    "https://picsum.photos/800/600?random=1",
			OtherParticipant: "Sarah Jenkins",
			LastMessage:      "Is the apartment available for viewing this weekend?",
			LastMessageTime:  Millis(c1At),
			UnreadCount:      2,
			Messages:         transcript("c1", c1At),
		},
		{
			ID:               "c2",
			PropertyID:       "3",
			PropertyName:     "Bright Studio",
			PropertyImage:    "https://picsum.photos/800/600?random=5",
			OtherParticipant: "UniRentals",
			LastMessage:      "Great, thanks for the info!",
			LastMessageTime:  Millis(c2At),
			UnreadCount:      0,
			Messages:         transcript("c2", c2At),
		},
	}
}
