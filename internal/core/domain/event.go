package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")
var ErrPhotoNotFound = errors.New("photo not found")
var ErrAccessDenied = errors.New("access denied")
var ErrInvalidStartDate = errors.New("start date must be in the future, at most one month ahead")

// Event is a scheduled activity owned by one account. The owner is always a
// participant, and exactly one chat is bound to the event for its lifetime.
type Event struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	StartDate    time.Time `json:"start_date"`
	Participants []string  `json:"participants"`
	ChatID       string    `json:"chat_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateStartDate checks the creation-time window: strictly after now and
// no more than one month ahead.
func ValidateStartDate(start, now time.Time) error {
	if !start.After(now) || start.After(now.AddDate(0, 1, 0)) {
		return ErrInvalidStartDate
	}
	return nil
}

// HasParticipant reports whether the account is in the participant set.
func (e *Event) HasParticipant(accountID string) bool {
	for _, id := range e.Participants {
		if id == accountID {
			return true
		}
	}
	return false
}

// AddParticipant adds the account to the participant set. Adding a present
// participant is a no-op.
func (e *Event) AddParticipant(accountID string) {
	if !e.HasParticipant(accountID) {
		e.Participants = append(e.Participants, accountID)
	}
}

// RemoveParticipant removes the account from the participant set. Removing an
// absent participant is a no-op. The owner cannot be removed.
func (e *Event) RemoveParticipant(accountID string) {
	if accountID == e.OwnerID {
		return
	}
	for i, id := range e.Participants {
		if id == accountID {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return
		}
	}
}

// EventPhoto is a binary photo attached to an event. Photos share the event's
// lifetime and are deleted with it.
type EventPhoto struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	UploaderID  string    `json:"uploader_id"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
