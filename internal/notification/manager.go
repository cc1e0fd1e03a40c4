package notification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sportmeet/backend/internal/api/metrics"
	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

// Manager routes notifications to their delivery channel: socket payloads go
// to connected recipients, rest payloads are parked in the inbox for everyone
// else. Nothing is persisted past delivery and nothing is retried.
type Manager struct {
	pusher ports.NotificationPusher
	inbox  ports.NotificationInbox
	log    zerolog.Logger
}

func NewManager(pusher ports.NotificationPusher, inbox ports.NotificationInbox, log zerolog.Logger) *Manager {
	return &Manager{pusher: pusher, inbox: inbox, log: log}
}

// Manage delivers a batch of notifications best effort.
func (m *Manager) Manage(ctx context.Context, notifications []domain.Notification) {
	for _, n := range notifications {
		switch n.Channel {
		case domain.ChannelSocket:
			if m.pusher.Push(n.RecipientID, n) {
				metrics.NotificationsDeliveredTotal.WithLabelValues(string(domain.ChannelSocket)).Inc()
			} else {
				metrics.NotificationsDroppedTotal.Inc()
			}
		case domain.ChannelRest:
			// Connected recipients already got the socket variant.
			if m.pusher.IsConnected(n.RecipientID) {
				continue
			}
			if err := m.inbox.Store(ctx, n); err != nil {
				m.log.Warn().Err(err).Str("recipient_id", n.RecipientID).Msg("failed to queue notification")
				continue
			}
			metrics.NotificationsQueuedTotal.Inc()
		}
	}
}

// SendNotificationsToJoiningUser drains the inbox and pushes everything that
// accumulated while the user was offline.
func (m *Manager) SendNotificationsToJoiningUser(ctx context.Context, accountID string) {
	queued, err := m.inbox.Drain(ctx, accountID)
	if err != nil {
		m.log.Warn().Err(err).Str("account_id", accountID).Msg("failed to drain notification inbox")
		return
	}

	for i, n := range queued {
		n.Channel = domain.ChannelSocket
		if m.pusher.Push(accountID, n) {
			metrics.NotificationsDeliveredTotal.WithLabelValues(string(domain.ChannelSocket)).Inc()
			continue
		}
		// The socket is not up yet (login precedes connect). Put the rest
		// back so the poll endpoint or the next login can pick them up.
		for _, rest := range queued[i:] {
			rest.Channel = domain.ChannelRest
			if err := m.inbox.Store(ctx, rest); err != nil {
				m.log.Warn().Err(err).Str("account_id", accountID).Msg("failed to requeue notification")
			}
		}
		return
	}
}
