package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

const defaultMessageLimit = 50

// chatStorage implements ChatService over the chat repository. Posting a
// message additionally feeds the notification pipeline.
type chatStorage struct {
	chats    ports.ChatRepository
	events   ports.EventRepository
	accounts ports.AccountRepository
	notify   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewChatStorage returns a ChatService implementation.
func NewChatStorage(
	chats ports.ChatRepository,
	events ports.EventRepository,
	accounts ports.AccountRepository,
	notify ports.EventPublisher,
	log zerolog.Logger,
) ports.ChatService {
	return &chatStorage{
		chats:    chats,
		events:   events,
		accounts: accounts,
		notify:   notify,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *chatStorage) CreatePrivateChat(ctx context.Context, creatorID string) (*domain.PrivateChat, error) {
	chat := &domain.PrivateChat{
		Participants: []string{creatorID},
		CreatedAt:    s.now(),
	}
	created, err := s.chats.CreatePrivateChat(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("create private chat: %w", err)
	}
	return created, nil
}

func (s *chatStorage) GetEventChat(ctx context.Context, id string) (*domain.EventChat, error) {
	return s.chats.FindEventChatByID(ctx, id)
}

func (s *chatStorage) GetPrivateChat(ctx context.Context, id string) (*domain.PrivateChat, error) {
	return s.chats.FindPrivateChatByID(ctx, id)
}

func (s *chatStorage) AddParticipant(ctx context.Context, chatID, accountID string) error {
	chat, err := s.chats.FindPrivateChatByID(ctx, chatID)
	if err != nil {
		return err
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return err
	}

	if chat.HasParticipant(accountID) {
		return nil
	}
	chat.AddParticipant(accountID)
	return s.chats.SavePrivateChat(ctx, chat)
}

func (s *chatStorage) RemoveParticipant(ctx context.Context, chatID, accountID string) error {
	chat, err := s.chats.FindPrivateChatByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.HasParticipant(accountID) {
		return nil
	}
	chat.RemoveParticipant(accountID)
	return s.chats.SavePrivateChat(ctx, chat)
}

func (s *chatStorage) DeletePrivateChat(ctx context.Context, chatID string) error {
	return s.chats.DeletePrivateChat(ctx, chatID)
}

// PostMessage persists the message and fans it out to the other chat members.
func (s *chatStorage) PostMessage(ctx context.Context, input ports.PostMessageInput) (*domain.Message, error) {
	participants, err := s.chatParticipants(ctx, input.ChatID, input.ChatKind)
	if err != nil {
		return nil, err
	}
	if !contains(participants, input.SenderID) {
		return nil, domain.ErrAccessDenied
	}

	msg := &domain.Message{
		ChatID:   input.ChatID,
		ChatKind: input.ChatKind,
		SenderID: input.SenderID,
		Content:  input.Content,
		SentAt:   s.now(),
	}
	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	senderName := input.SenderID
	if sender, err := s.accounts.FindByID(ctx, input.SenderID); err == nil {
		senderName = sender.DisplayIdentity()
	}

	recipients := make([]string, 0, len(participants))
	for _, id := range participants {
		if id != input.SenderID {
			recipients = append(recipients, id)
		}
	}

	switch input.ChatKind {
	case domain.ChatKindEvent:
		s.notify.EventChatMessagePosted(msg, senderName, recipients)
	case domain.ChatKindPrivate:
		s.notify.PrivateChatMessagePosted(msg, senderName, recipients)
	}

	return msg, nil
}

func (s *chatStorage) ListMessages(ctx context.Context, chatID string, requesterID string, limit int) ([]*domain.Message, error) {
	// The id does not carry the chat kind; probe the private collection and
	// fall through to the event kind only on a definite miss.
	kind := domain.ChatKindPrivate
	if _, err := s.chats.FindPrivateChatByID(ctx, chatID); err != nil {
		if !errors.Is(err, domain.ErrChatNotFound) {
			return nil, err
		}
		kind = domain.ChatKindEvent
	}

	participants, err := s.chatParticipants(ctx, chatID, kind)
	if err != nil {
		return nil, err
	}
	if !contains(participants, requesterID) {
		return nil, domain.ErrAccessDenied
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}
	return s.chats.ListMessages(ctx, chatID, limit)
}

// chatParticipants resolves the membership of either chat kind. Event chats
// carry no members of their own; the owning event's participant set applies.
func (s *chatStorage) chatParticipants(ctx context.Context, chatID string, kind domain.ChatKind) ([]string, error) {
	switch kind {
	case domain.ChatKindPrivate:
		chat, err := s.chats.FindPrivateChatByID(ctx, chatID)
		if err != nil {
			return nil, err
		}
		return chat.Participants, nil
	case domain.ChatKindEvent:
		chat, err := s.chats.FindEventChatByID(ctx, chatID)
		if err != nil {
			return nil, err
		}
		event, err := s.events.FindByID(ctx, chat.EventID)
		if err != nil {
			return nil, err
		}
		return event.Participants, nil
	default:
		return nil, domain.ErrChatNotFound
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
