package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// EventRepository handles event persistence. Creation and deletion span the
// event and its owned chat/photos, so both are single atomic operations.
type EventRepository interface {
	// CreateWithChat persists the event and its chat as one unit. The
	// event's ChatID and the chat's EventID are filled in on return.
	CreateWithChat(ctx context.Context, event *domain.Event, chat *domain.EventChat) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	FindAll(ctx context.Context) ([]*domain.Event, error)
	// Save persists participant set mutations.
	Save(ctx context.Context, event *domain.Event) error
	// DeleteCascade removes the event, its chat, its messages, and its
	// photos in one transaction.
	DeleteCascade(ctx context.Context, eventID string) error

	AddPhoto(ctx context.Context, photo *domain.EventPhoto) error
	RemovePhoto(ctx context.Context, eventID, photoID string) error
	FindPhoto(ctx context.Context, eventID, photoID string) (*domain.EventPhoto, error)
}
