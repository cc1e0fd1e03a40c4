package domain

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrAlreadyRegistered = errors.New("account already registered")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountNotEnabled = errors.New("account not enabled")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is the capability set the rest of the system needs from an
// authenticated identity. Account is the only implementation.
type Principal interface {
	IsEnabled() bool
	CredentialsMatch(password string) bool
	DisplayIdentity() string
}

// Account models a registered user identity. An account starts disabled and
// becomes enabled only through a successful email confirmation.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Image        []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Account) IsEnabled() bool {
	return a.Enabled
}

// CredentialsMatch reports whether the plaintext password matches the stored
// bcrypt hash.
func (a *Account) CredentialsMatch(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

func (a *Account) DisplayIdentity() string {
	return a.FirstName + " " + a.LastName
}
