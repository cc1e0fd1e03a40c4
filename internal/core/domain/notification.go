package domain

import "time"

// NotificationChannel selects the delivery path of a notification.
type NotificationChannel string

const (
	ChannelRest   NotificationChannel = "rest"
	ChannelSocket NotificationChannel = "socket"
)

// NotificationType names the domain occurrence a notification reports.
type NotificationType string

const (
	NotifEventChatMessage   NotificationType = "event_chat_message"
	NotifPrivateChatMessage NotificationType = "private_chat_message"
)

// Notification is a transient, channel-specific payload built by a creator
// and handed straight to the manager. It is never persisted after delivery;
// delivery is at-most-once best effort.
type Notification struct {
	Channel     NotificationChannel `json:"channel"`
	Type        NotificationType    `json:"type"`
	RecipientID string              `json:"recipient_id"`
	ChatID      string              `json:"chat_id"`
	SenderID    string              `json:"sender_id"`
	SenderName  string              `json:"sender_name,omitempty"`
	Preview     string              `json:"preview"`
	CreatedAt   time.Time           `json:"created_at"`
}
