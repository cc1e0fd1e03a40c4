package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

// AuthService implements login and session token issuing.
type AuthService struct {
	accounts  ports.AccountRepository
	events    ports.EventPublisher
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	events ports.EventPublisher,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		events:    events,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login verifies credentials and returns a signed session token. An unknown
// email and a wrong password are indistinguishable to the caller; only the
// disabled-account case is surfaced separately so the client can prompt for
// email confirmation.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !account.IsEnabled() {
		return "", nil, domain.ErrAccountNotEnabled
	}

	if !account.CredentialsMatch(password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	// A fresh session flushes notifications queued while the user was away.
	s.events.UserLoggedIn(account.ID)

	s.log.Info().Str("account_id", account.ID).Msg("login succeeded")
	return token, account, nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"name":  account.DisplayIdentity(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
