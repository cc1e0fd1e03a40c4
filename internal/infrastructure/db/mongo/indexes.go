package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// accountIndexes returns the index models backing the account invariants.
// The unique email index is what turns a registration race into a
// duplicate-key error instead of two accounts sharing one address.
func accountIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. Safe to call on
// every startup; creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(accountCollection).Indexes().CreateMany(ctx, accountIndexes()); err != nil {
		return fmt.Errorf("ensure account indexes: %w", err)
	}
	return nil
}
