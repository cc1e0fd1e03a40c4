package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// RegisterInput carries the account draft submitted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterService orchestrates account creation and email confirmation.
type RegisterService interface {
	Register(ctx context.Context, input RegisterInput) error
	Confirm(ctx context.Context, tokenValue string) error
	Resend(ctx context.Context, email string) error
}

// AuthService validates credentials and issues session tokens.
type AuthService interface {
	// Login returns an opaque session token. Unknown email and wrong
	// password both surface as ErrInvalidCredentials; a disabled account
	// surfaces as ErrAccountNotEnabled regardless of the password.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}

// Mailer is the email-delivery collaborator consumed by RegisterService.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, tokenValue string) error
}
