package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// NotificationCreator formats a chat message into channel-specific
// notification payloads, one per recipient.
type NotificationCreator interface {
	NewEventChatMessage(msg *domain.Message, senderName string, recipients []string) []domain.Notification
	NewPrivateChatMessage(msg *domain.Message, senderName string, recipients []string) []domain.Notification
}

// NotificationManager delivers formatted notifications to recipients and
// flushes queued notifications when a user comes online.
type NotificationManager interface {
	Manage(ctx context.Context, notifications []domain.Notification)
	SendNotificationsToJoiningUser(ctx context.Context, accountID string)
}

// NotificationPusher is the socket delivery channel: connect/disconnect-aware,
// fire-and-forget push.
type NotificationPusher interface {
	IsConnected(accountID string) bool
	// Push delivers best effort and reports whether the payload was handed
	// to the recipient's connection.
	Push(accountID string, n domain.Notification) bool
}

// NotificationInbox parks rest-channel notifications for recipients that are
// not currently connected.
type NotificationInbox interface {
	Store(ctx context.Context, n domain.Notification) error
	// Drain returns and removes all pending notifications for the account.
	Drain(ctx context.Context, accountID string) ([]domain.Notification, error)
}

// EventPublisher is the seam between chat/auth services and the notification
// pipeline. Implementations must not block the calling request.
type EventPublisher interface {
	EventChatMessagePosted(msg *domain.Message, senderName string, recipients []string)
	PrivateChatMessagePosted(msg *domain.Message, senderName string, recipients []string)
	UserLoggedIn(accountID string)
}
