package notification

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sportmeet/backend/internal/core/domain"
)

func TestCreators_OnePayloadPerRecipient(t *testing.T) {
	msg := &domain.Message{
		ID:       "msg_1",
		ChatID:   "chat_1",
		SenderID: "acc_1",
		Content:  "see you there",
		SentAt:   time.Now().UTC(),
	}
	recipients := []string{"acc_2", "acc_3"}

	rest := NewRestNotificationCreator().NewEventChatMessage(msg, "Alice Smith", recipients)
	socket := NewSocketNotificationCreator().NewEventChatMessage(msg, "Alice Smith", recipients)

	if len(rest) != 2 || len(socket) != 2 {
		t.Fatalf("expected one payload per recipient, got rest=%d socket=%d", len(rest), len(socket))
	}
	for i, n := range rest {
		if n.Channel != domain.ChannelRest {
			t.Fatalf("rest creator produced channel %s", n.Channel)
		}
		if n.Type != domain.NotifEventChatMessage {
			t.Fatalf("unexpected type %s", n.Type)
		}
		if n.RecipientID != recipients[i] {
			t.Fatalf("recipient mismatch: %s", n.RecipientID)
		}
		if n.SenderName != "Alice Smith" || n.Preview != "see you there" {
			t.Fatalf("payload fields not carried over: %+v", n)
		}
	}
	for _, n := range socket {
		if n.Channel != domain.ChannelSocket {
			t.Fatalf("socket creator produced channel %s", n.Channel)
		}
	}
}

func TestCreators_PrivateType(t *testing.T) {
	msg := &domain.Message{ChatID: "chat_1", SenderID: "acc_1", Content: "hi"}

	out := NewRestNotificationCreator().NewPrivateChatMessage(msg, "Bob", []string{"acc_2"})
	if len(out) != 1 || out[0].Type != domain.NotifPrivateChatMessage {
		t.Fatalf("expected private type, got %+v", out)
	}
}

func TestCreators_PreviewTruncated(t *testing.T) {
	msg := &domain.Message{
		ChatID:   "chat_1",
		SenderID: "acc_1",
		Content:  strings.Repeat("x", previewLimit+40),
	}

	out := NewSocketNotificationCreator().NewPrivateChatMessage(msg, "Bob", []string{"acc_2"})
	if len(out[0].Preview) != previewLimit {
		t.Fatalf("expected preview of %d chars, got %d", previewLimit, len(out[0].Preview))
	}
}

func TestCreators_PreviewTruncatedOnRuneBoundary(t *testing.T) {
	// A two-byte rune straddles the byte limit; the cut must move back
	// instead of splitting it.
	msg := &domain.Message{
		ChatID:   "chat_1",
		SenderID: "acc_1",
		Content:  strings.Repeat("x", previewLimit-1) + "é suite",
	}

	out := NewSocketNotificationCreator().NewPrivateChatMessage(msg, "Bob", []string{"acc_2"})
	preview := out[0].Preview
	if len(preview) > previewLimit {
		t.Fatalf("preview exceeds %d bytes: %d", previewLimit, len(preview))
	}
	if !utf8.ValidString(preview) {
		t.Fatalf("preview is not valid UTF-8: %q", preview)
	}
	if preview != strings.Repeat("x", previewLimit-1) {
		t.Fatalf("unexpected cut point: %q", preview[len(preview)-4:])
	}
}

func TestCreators_NoRecipients(t *testing.T) {
	msg := &domain.Message{ChatID: "chat_1", SenderID: "acc_1", Content: "solo"}

	out := NewRestNotificationCreator().NewEventChatMessage(msg, "Bob", nil)
	if len(out) != 0 {
		t.Fatalf("expected no payloads without recipients, got %d", len(out))
	}
}
