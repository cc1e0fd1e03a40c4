package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportmeet/backend/internal/core/domain"
)

type TokenRepository struct {
	tokens *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{tokens: db.Collection(tokenCollection)}
}

func (r *TokenRepository) FindByAccountEmail(ctx context.Context, email string) (*domain.Token, error) {
	var doc mongoToken
	if err := r.tokens.FindOne(ctx, bson.M{"account_email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return doc.toDomain(), nil
}

// Consume removes the token and returns it. FindOneAndDelete is atomic on a
// single document, so concurrent confirms of the same value are serialized:
// exactly one caller gets the token, the rest get ErrTokenNotFound.
func (r *TokenRepository) Consume(ctx context.Context, value string) (*domain.Token, error) {
	var doc mongoToken
	if err := r.tokens.FindOneAndDelete(ctx, bson.M{"_id": value}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("consume token: %w", err)
	}
	return doc.toDomain(), nil
}

func (d *mongoToken) toDomain() *domain.Token {
	return &domain.Token{
		Value:        d.Value,
		AccountID:    d.AccountID.Hex(),
		AccountEmail: d.AccountEmail,
		ExpiresAt:    unixToTime(d.ExpiresAt),
	}
}
