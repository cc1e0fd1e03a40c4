package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// ChatRepository defines persistence for both chat kinds and their messages.
// Deletes are idempotent: removing an absent chat is not an error.
type ChatRepository interface {
	CreatePrivateChat(ctx context.Context, chat *domain.PrivateChat) (*domain.PrivateChat, error)
	FindEventChatByID(ctx context.Context, id string) (*domain.EventChat, error)
	FindPrivateChatByID(ctx context.Context, id string) (*domain.PrivateChat, error)
	SavePrivateChat(ctx context.Context, chat *domain.PrivateChat) error
	DeletePrivateChat(ctx context.Context, id string) error

	AppendMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error)
}
