package models

import (
	"sort"
	"strings"
)

// ChatMessage is one message inside a chat record.
type ChatMessage struct {
	ID        string `json:"id"`
	SenderID  string `json:"sender_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Chat holds a two-party conversation. The ID is derived from the sorted
// participant pair, so at most one chat exists per unordered pair of users.
type Chat struct {
	ID               string        `json:"id"`
	Participants     []string      `json:"participants"`
	ParticipantNames []string      `json:"participant_names"`
	ProductID        string        `json:"product_id,omitempty"`
	Messages         []ChatMessage `json:"messages"`
	CreatedAt        string        `json:"created_at"`
	LastMessageAt    string        `json:"last_message_at"`
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ChatID is a pure function of the two participant ids regardless of who
// initiates the chat.
func ChatID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}

func ChatKey(chatID string) string {
	return ChatPrefix + chatID
}
