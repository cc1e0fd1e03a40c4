package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	// CreateWithToken persists a new disabled account together with its
	// confirmation token as one atomic unit. Returns ErrAlreadyRegistered
	// when the email is taken.
	CreateWithToken(ctx context.Context, account *domain.Account, token *domain.Token) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Enable flips the account's enabled flag to true.
	Enable(ctx context.Context, id string) error
}
