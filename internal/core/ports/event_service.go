package ports

import (
	"context"
	"time"

	"github.com/sportmeet/backend/internal/core/domain"
)

// CreateEventInput carries the event draft submitted by the owner.
type CreateEventInput struct {
	OwnerID   string
	Title     string
	StartDate time.Time
}

// EventSummary is the public-facing view used in list responses. Internal
// fields (photo blobs, creation metadata) are stripped.
type EventSummary struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	StartDate    time.Time `json:"start_date"`
	Participants []string  `json:"participants"`
	ChatID       string    `json:"chat_id"`
}

// AddPhotoInput carries a photo upload for an event.
type AddPhotoInput struct {
	EventID     string
	UploaderID  string
	ContentType string
	Data        []byte
}

// EventService defines use-case operations for events.
type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	GetAllEvents(ctx context.Context) ([]EventSummary, error)
	// AddParticipant and RemoveParticipant are idempotent.
	AddParticipant(ctx context.Context, eventID, participantID string) error
	RemoveParticipant(ctx context.Context, eventID, participantID string) error
	// DeleteEvent requires the requester to be the owner and cascades the
	// chat and photos.
	DeleteEvent(ctx context.Context, eventID, requesterID string) error
	AddPhoto(ctx context.Context, input AddPhotoInput) (*domain.EventPhoto, error)
	RemovePhoto(ctx context.Context, eventID, photoID, requesterID string) error
}
