package domain

import (
	"errors"
	"time"
)

var ErrTokenNotFound = errors.New("confirmation token not found")
var ErrTokenExpired = errors.New("confirmation token expired")
var ErrEmailDelivery = errors.New("confirmation email delivery failed")

// Token is a single-use, time-limited value proving control of an email
// address. It exists between registration and confirmation, never longer.
type Token struct {
	Value        string
	AccountID    string
	AccountEmail string
	ExpiresAt    time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
