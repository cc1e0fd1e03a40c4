package domain

import (
	"errors"
	"time"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatKind distinguishes the two chat containers.
type ChatKind string

const (
	ChatKindEvent   ChatKind = "event"
	ChatKindPrivate ChatKind = "private"
)

// EventChat is the message container bound to exactly one event. Membership
// is the event's participant set; the chat itself carries none.
type EventChat struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PrivateChat is a message container with its own participant set, mutable
// independently of any event.
type PrivateChat struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasParticipant reports whether the account is in the participant set.
func (c *PrivateChat) HasParticipant(accountID string) bool {
	for _, id := range c.Participants {
		if id == accountID {
			return true
		}
	}
	return false
}

// AddParticipant adds the account to the chat; idempotent.
func (c *PrivateChat) AddParticipant(accountID string) {
	if !c.HasParticipant(accountID) {
		c.Participants = append(c.Participants, accountID)
	}
}

// RemoveParticipant removes the account from the chat; idempotent.
func (c *PrivateChat) RemoveParticipant(accountID string) {
	for i, id := range c.Participants {
		if id == accountID {
			c.Participants = append(c.Participants[:i], c.Participants[i+1:]...)
			return
		}
	}
}

// Message is a single chat content item attributed to a sender.
type Message struct {
	ID       string    `json:"id"`
	ChatID   string    `json:"chat_id"`
	ChatKind ChatKind  `json:"chat_kind"`
	SenderID string    `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}
