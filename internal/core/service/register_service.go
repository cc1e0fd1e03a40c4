package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

const defaultConfirmationTTL = 24 * time.Hour

// RegisterService orchestrates account creation, email confirmation, and the
// resend flow.
type RegisterService struct {
	accounts ports.AccountRepository
	tokens   ports.TokenRepository
	mailer   ports.Mailer
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewRegisterService(
	accounts ports.AccountRepository,
	tokens ports.TokenRepository,
	mailer ports.Mailer,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *RegisterService {
	if tokenTTL <= 0 {
		tokenTTL = defaultConfirmationTTL
	}
	return &RegisterService{
		accounts: accounts,
		tokens:   tokens,
		mailer:   mailer,
		tokenTTL: tokenTTL,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register persists a disabled account plus its confirmation token as one
// unit, then sends the confirmation email. An email failure leaves the
// persisted state intact so the caller can resend.
func (s *RegisterService) Register(ctx context.Context, input ports.RegisterInput) error {
	if _, err := s.accounts.FindByEmail(ctx, input.Email); err == nil {
		return domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	account := &domain.Account{
		Email:        input.Email,
		PasswordHash: string(hash),
		Enabled:      false,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    s.now(),
	}
	token := &domain.Token{
		Value:        uuid.NewString(),
		AccountEmail: input.Email,
		ExpiresAt:    s.now().Add(s.tokenTTL),
	}

	created, err := s.accounts.CreateWithToken(ctx, account, token)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	if err := s.mailer.SendConfirmation(ctx, created.Email, token.Value); err != nil {
		s.log.Warn().Err(err).Str("email", created.Email).Msg("confirmation email failed, account kept for resend")
		return domain.ErrEmailDelivery
	}

	s.log.Info().Str("account_id", created.ID).Msg("account registered")
	return nil
}

// Confirm consumes the token and enables the associated account. The token is
// invalidated whether or not it turns out to be expired; a second confirm
// attempt can never succeed.
func (s *RegisterService) Confirm(ctx context.Context, tokenValue string) error {
	token, err := s.tokens.Consume(ctx, tokenValue)
	if err != nil {
		return err
	}

	if token.Expired(s.now()) {
		return domain.ErrTokenExpired
	}

	if err := s.accounts.Enable(ctx, token.AccountID); err != nil {
		return fmt.Errorf("confirm: enable account: %w", err)
	}

	s.log.Info().Str("account_id", token.AccountID).Msg("account confirmed")
	return nil
}

// Resend re-sends the confirmation email using the outstanding token.
func (s *RegisterService) Resend(ctx context.Context, email string) error {
	token, err := s.tokens.FindByAccountEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.mailer.SendConfirmation(ctx, email, token.Value); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("confirmation email resend failed")
		return domain.ErrEmailDelivery
	}
	return nil
}
