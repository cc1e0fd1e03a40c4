package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

// EventService implements event creation, membership, photos, and deletion.
type EventService struct {
	events   ports.EventRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewEventService(events ports.EventRepository, accounts ports.AccountRepository, log zerolog.Logger) *EventService {
	return &EventService{
		events:   events,
		accounts: accounts,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateEvent validates the start date window and persists the event together
// with its chat as one unit. The owner is always the first participant.
func (s *EventService) CreateEvent(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error) {
	now := s.now()
	if err := domain.ValidateStartDate(input.StartDate, now); err != nil {
		return nil, err
	}

	event := &domain.Event{
		OwnerID:      input.OwnerID,
		Title:        input.Title,
		StartDate:    input.StartDate,
		Participants: []string{input.OwnerID},
		CreatedAt:    now,
	}
	chat := &domain.EventChat{CreatedAt: now}

	created, err := s.events.CreateWithChat(ctx, event, chat)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("owner_id", input.OwnerID).Msg("event created")
	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

// GetAllEvents returns all events mapped to the public summary view.
func (s *EventService) GetAllEvents(ctx context.Context) ([]ports.EventSummary, error) {
	events, err := s.events.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	summaries := make([]ports.EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, ports.EventSummary{
			ID:           e.ID,
			OwnerID:      e.OwnerID,
			Title:        e.Title,
			StartDate:    e.StartDate,
			Participants: e.Participants,
			ChatID:       e.ChatID,
		})
	}
	return summaries, nil
}

// AddParticipant adds the account to the event. Adding a present participant
// is a no-op success.
func (s *EventService) AddParticipant(ctx context.Context, eventID, participantID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.accounts.FindByID(ctx, participantID); err != nil {
		return err
	}

	if event.HasParticipant(participantID) {
		return nil
	}
	event.AddParticipant(participantID)
	return s.events.Save(ctx, event)
}

// RemoveParticipant removes the account from the event. Removing an absent
// participant is a no-op success.
func (s *EventService) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.accounts.FindByID(ctx, participantID); err != nil {
		return err
	}

	if !event.HasParticipant(participantID) {
		return nil
	}
	event.RemoveParticipant(participantID)
	return s.events.Save(ctx, event)
}

// DeleteEvent removes the event with its chat and photos. Only the owner may
// delete.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, requesterID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != requesterID {
		return domain.ErrAccessDenied
	}

	if err := s.events.DeleteCascade(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info().Str("event_id", eventID).Msg("event deleted")
	return nil
}

// AddPhoto attaches a photo to the event. The uploader must be a participant.
func (s *EventService) AddPhoto(ctx context.Context, input ports.AddPhotoInput) (*domain.EventPhoto, error) {
	event, err := s.events.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if !event.HasParticipant(input.UploaderID) {
		return nil, domain.ErrAccessDenied
	}

	photo := &domain.EventPhoto{
		EventID:     input.EventID,
		UploaderID:  input.UploaderID,
		ContentType: input.ContentType,
		Data:        input.Data,
		CreatedAt:   s.now(),
	}
	if err := s.events.AddPhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("add photo: %w", err)
	}
	return photo, nil
}

// RemovePhoto detaches a photo. Allowed for the uploader or the event owner.
func (s *EventService) RemovePhoto(ctx context.Context, eventID, photoID, requesterID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	photo, err := s.events.FindPhoto(ctx, eventID, photoID)
	if err != nil {
		return err
	}
	if photo.UploaderID != requesterID && event.OwnerID != requesterID {
		return domain.ErrAccessDenied
	}
	return s.events.RemovePhoto(ctx, eventID, photoID)
}
