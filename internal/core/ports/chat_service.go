package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// PostMessageInput carries a message posted to either chat kind.
type PostMessageInput struct {
	ChatID   string
	ChatKind domain.ChatKind
	SenderID string
	Content  string
}

// ChatService defines use-case operations for chats and messages.
type ChatService interface {
	CreatePrivateChat(ctx context.Context, creatorID string) (*domain.PrivateChat, error)
	GetEventChat(ctx context.Context, id string) (*domain.EventChat, error)
	GetPrivateChat(ctx context.Context, id string) (*domain.PrivateChat, error)
	// AddParticipant and RemoveParticipant mutate a private chat's
	// membership; both are idempotent.
	AddParticipant(ctx context.Context, chatID, accountID string) error
	RemoveParticipant(ctx context.Context, chatID, accountID string) error
	// DeletePrivateChat is idempotent: deleting an absent chat succeeds.
	DeletePrivateChat(ctx context.Context, chatID string) error
	// PostMessage persists the message and hands it to the notification
	// pipeline. The sender must be a participant of the chat.
	PostMessage(ctx context.Context, input PostMessageInput) (*domain.Message, error)
	ListMessages(ctx context.Context, chatID string, requesterID string, limit int) ([]*domain.Message, error)
}
