package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportmeet/backend/internal/core/domain"
)

const (
	accountCollection = "accounts"
	tokenCollection   = "tokens"
)

type AccountRepository struct {
	db       *mongo.Database
	accounts *mongo.Collection
	tokens   *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		db:       db,
		accounts: db.Collection(accountCollection),
		tokens:   db.Collection(tokenCollection),
	}
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Enabled      bool               `bson:"enabled"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Image        []byte             `bson:"image,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
}

type mongoToken struct {
	Value        string             `bson:"_id"`
	AccountID    primitive.ObjectID `bson:"account_id"`
	AccountEmail string             `bson:"account_email"`
	ExpiresAt    int64              `bson:"expires_at"`
}

// CreateWithToken inserts the account and its confirmation token in a single
// transaction. A unique index on accounts.email turns a race between two
// registrations into ErrAlreadyRegistered for the loser.
func (r *AccountRepository) CreateWithToken(ctx context.Context, account *domain.Account, token *domain.Token) (*domain.Account, error) {
	id := primitive.NewObjectID()
	accountDoc := mongoAccount{
		ID:           id,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Enabled:      account.Enabled,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Image:        account.Image,
		CreatedAt:    account.CreatedAt.Unix(),
	}
	tokenDoc := mongoToken{
		Value:        token.Value,
		AccountID:    id,
		AccountEmail: token.AccountEmail,
		ExpiresAt:    token.ExpiresAt.Unix(),
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.accounts.InsertOne(sc, accountDoc); err != nil {
			return nil, err
		}
		if _, err := r.tokens.InsertOne(sc, tokenDoc); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	created.ID = id.Hex()
	token.AccountID = id.Hex()
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc mongoAccount
	if err := r.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc mongoAccount
	if err := r.accounts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) Enable(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.accounts.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"enabled": true}})
	if err != nil {
		return fmt.Errorf("enable account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (d *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Enabled:      d.Enabled,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Image:        d.Image,
		CreatedAt:    unixToTime(d.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
