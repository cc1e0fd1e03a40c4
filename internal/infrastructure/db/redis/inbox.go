package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sportmeet/backend/internal/core/domain"
)

const inboxTTL = 7 * 24 * time.Hour

// Inbox parks rest-channel notifications for offline recipients.
// Key format: inbox:<account_id>, a list of JSON payloads, oldest first.
type Inbox struct {
	client *redis.Client
}

// NewInbox creates an Inbox wrapping the given Redis client.
func NewInbox(client *redis.Client) *Inbox {
	return &Inbox{client: client}
}

// Store appends the notification to the recipient's inbox. The whole inbox
// expires after inboxTTL so abandoned accounts do not accumulate entries.
func (i *Inbox) Store(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("inbox store: %w", err)
	}

	key := i.key(n.RecipientID)
	pipe := i.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, inboxTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("inbox store: %w", err)
	}
	return nil
}

// Drain returns and removes all pending notifications for the account. Read
// and delete run in one transaction so an entry is handed out at most once.
func (i *Inbox) Drain(ctx context.Context, accountID string) ([]domain.Notification, error) {
	key := i.key(accountID)

	pipe := i.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("inbox drain: %w", err)
	}

	raw := rangeCmd.Val()
	out := make([]domain.Notification, 0, len(raw))
	for _, item := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (i *Inbox) key(accountID string) string {
	return fmt.Sprintf("inbox:%s", accountID)
}
