package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

const dispatchTimeout = 5 * time.Second

// Bridge receives domain occurrences from the services, asks the per-channel
// creators to format them, and hands the result to the manager. Dispatch is
// asynchronous so the originating request never waits on delivery.
type Bridge struct {
	restCreator   ports.NotificationCreator
	socketCreator ports.NotificationCreator
	manager       ports.NotificationManager
	log           zerolog.Logger
}

func NewBridge(
	restCreator ports.NotificationCreator,
	socketCreator ports.NotificationCreator,
	manager ports.NotificationManager,
	log zerolog.Logger,
) *Bridge {
	return &Bridge{
		restCreator:   restCreator,
		socketCreator: socketCreator,
		manager:       manager,
		log:           log,
	}
}

func (b *Bridge) EventChatMessagePosted(msg *domain.Message, senderName string, recipients []string) {
	go b.dispatch(append(
		b.socketCreator.NewEventChatMessage(msg, senderName, recipients),
		b.restCreator.NewEventChatMessage(msg, senderName, recipients)...,
	))
}

func (b *Bridge) PrivateChatMessagePosted(msg *domain.Message, senderName string, recipients []string) {
	go b.dispatch(append(
		b.socketCreator.NewPrivateChatMessage(msg, senderName, recipients),
		b.restCreator.NewPrivateChatMessage(msg, senderName, recipients)...,
	))
}

func (b *Bridge) UserLoggedIn(accountID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		b.manager.SendNotificationsToJoiningUser(ctx, accountID)
	}()
}

func (b *Bridge) dispatch(notifications []domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	b.manager.Manage(ctx, notifications)
}
