package ports

import (
	"context"

	"github.com/sportmeet/backend/internal/core/domain"
)

// TokenRepository defines the interface for confirmation token persistence.
type TokenRepository interface {
	FindByAccountEmail(ctx context.Context, email string) (*domain.Token, error)
	// Consume removes the token and returns it. At most one caller can
	// consume a given value; concurrent confirms must be serialized by the
	// underlying delete-and-return operation.
	Consume(ctx context.Context, value string) (*domain.Token, error)
}
