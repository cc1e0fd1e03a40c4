package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

func newRegisterFixture(mailer *stubMailer) (*RegisterService, *stubAccountRepo) {
	accounts := newStubAccountRepo()
	tokens := &stubTokenRepo{accounts: accounts}
	svc := NewRegisterService(accounts, tokens, mailer, time.Hour, zerolog.Nop())
	return svc, accounts
}

func TestRegisterService_Register_Success(t *testing.T) {
	mailer := &stubMailer{}
	svc, accounts := newRegisterFixture(mailer)

	err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "alice@example.com",
		Password:  "s3cretpass",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	account, err := accounts.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if account.Enabled {
		t.Fatalf("new account must start disabled")
	}
	if account.PasswordHash == "s3cretpass" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", len(mailer.sent))
	}
	if len(accounts.tokens) != 1 {
		t.Fatalf("expected 1 outstanding token, got %d", len(accounts.tokens))
	}
}

func TestRegisterService_Register_Duplicate(t *testing.T) {
	svc, _ := newRegisterFixture(&stubMailer{})

	input := ports.RegisterInput{Email: "bob@example.com", Password: "password1", FirstName: "Bob", LastName: "Jones"}
	if err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegisterService_Register_EmailFailureKeepsState(t *testing.T) {
	mailer := &stubMailer{fail: true}
	svc, accounts := newRegisterFixture(mailer)

	err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "carol@example.com", Password: "password1", FirstName: "Carol", LastName: "King",
	})
	if !errors.Is(err, domain.ErrEmailDelivery) {
		t.Fatalf("expected ErrEmailDelivery, got %v", err)
	}

	// Account and token survive the delivery failure so resend can work.
	if _, err := accounts.FindByEmail(context.Background(), "carol@example.com"); err != nil {
		t.Fatalf("account discarded after email failure: %v", err)
	}
	if len(accounts.tokens) != 1 {
		t.Fatalf("token discarded after email failure")
	}

	mailer.fail = false
	if err := svc.Resend(context.Background(), "carol@example.com"); err != nil {
		t.Fatalf("Resend failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected resent email, got %d", len(mailer.sent))
	}
}

func TestRegisterService_Confirm_EnablesAccount(t *testing.T) {
	mailer := &stubMailer{}
	svc, accounts := newRegisterFixture(mailer)

	_ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "dave@example.com", Password: "password1", FirstName: "Dave", LastName: "Lee",
	})

	tokenValue := mailer.sent[0]
	if err := svc.Confirm(context.Background(), tokenValue); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	account, _ := accounts.FindByEmail(context.Background(), "dave@example.com")
	if !account.Enabled {
		t.Fatalf("account not enabled after confirm")
	}
}

func TestRegisterService_Confirm_SecondAttemptFails(t *testing.T) {
	mailer := &stubMailer{}
	svc, _ := newRegisterFixture(mailer)

	_ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "erin@example.com", Password: "password1", FirstName: "Erin", LastName: "Moss",
	})

	tokenValue := mailer.sent[0]
	if err := svc.Confirm(context.Background(), tokenValue); err != nil {
		t.Fatalf("first Confirm failed: %v", err)
	}
	if err := svc.Confirm(context.Background(), tokenValue); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound on replay, got %v", err)
	}
}

func TestRegisterService_Confirm_Expired(t *testing.T) {
	mailer := &stubMailer{}
	svc, accounts := newRegisterFixture(mailer)

	_ = svc.Register(context.Background(), ports.RegisterInput{
		Email: "finn@example.com", Password: "password1", FirstName: "Finn", LastName: "Ray",
	})

	// Jump the clock past the token's expiry.
	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }

	tokenValue := mailer.sent[0]
	if err := svc.Confirm(context.Background(), tokenValue); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// The token was consumed either way; the account stays disabled.
	if err := svc.Confirm(context.Background(), tokenValue); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound after expired consume, got %v", err)
	}
	account, _ := accounts.FindByEmail(context.Background(), "finn@example.com")
	if account.Enabled {
		t.Fatalf("expired confirm must not enable the account")
	}
}

func TestRegisterService_Confirm_UnknownToken(t *testing.T) {
	svc, _ := newRegisterFixture(&stubMailer{})

	if err := svc.Confirm(context.Background(), "no-such-token"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestRegisterService_Resend_UnknownEmail(t *testing.T) {
	svc, _ := newRegisterFixture(&stubMailer{})

	if err := svc.Resend(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
