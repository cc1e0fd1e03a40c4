package notification

import (
	"unicode/utf8"

	"github.com/sportmeet/backend/internal/core/domain"
)

const previewLimit = 120

// RestNotificationCreator formats messages into rest-pollable payloads, one
// per recipient. These sit in the inbox until the recipient polls or logs in.
type RestNotificationCreator struct{}

func NewRestNotificationCreator() *RestNotificationCreator {
	return &RestNotificationCreator{}
}

func (c *RestNotificationCreator) NewEventChatMessage(msg *domain.Message, senderName string, recipients []string) []domain.Notification {
	return build(domain.ChannelRest, domain.NotifEventChatMessage, msg, senderName, recipients)
}

func (c *RestNotificationCreator) NewPrivateChatMessage(msg *domain.Message, senderName string, recipients []string) []domain.Notification {
	return build(domain.ChannelRest, domain.NotifPrivateChatMessage, msg, senderName, recipients)
}

// SocketNotificationCreator formats messages into socket-pushed payloads for
// currently connected recipients.
type SocketNotificationCreator struct{}

func NewSocketNotificationCreator() *SocketNotificationCreator {
	return &SocketNotificationCreator{}
}

func (c *SocketNotificationCreator) NewEventChatMessage(msg *domain.Message, senderName string, recipients []string) []domain.Notification {
	return build(domain.ChannelSocket, domain.NotifEventChatMessage, msg, senderName, recipients)
}

func (c *SocketNotificationCreator) NewPrivateChatMessage(msg *domain.Message, senderName string, recipients []string) []domain.Notification {
	return build(domain.ChannelSocket, domain.NotifPrivateChatMessage, msg, senderName, recipients)
}

func build(channel domain.NotificationChannel, typ domain.NotificationType, msg *domain.Message, senderName string, recipients []string) []domain.Notification {
	preview := msg.Content
	if len(preview) > previewLimit {
		// Never cut a multi-byte rune in half.
		cut := previewLimit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}

	out := make([]domain.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		out = append(out, domain.Notification{
			Channel:     channel,
			Type:        typ,
			RecipientID: recipient,
			ChatID:      msg.ChatID,
			SenderID:    msg.SenderID,
			SenderName:  senderName,
			Preview:     preview,
			CreatedAt:   msg.SentAt,
		})
	}
	return out
}
