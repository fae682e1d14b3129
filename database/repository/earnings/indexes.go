package earningsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// earningsIndexModels enforces one earnings document per partner. Both Get and
// Accrue upsert on partnerId; without the unique index two concurrent
// first-touch upserts could each insert, splitting the counters across
// duplicate documents. With it, Mongo retries the losing upsert against the
// winner's document.
func earningsIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "partnerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// EnsureIndexes creates the earnings indexes.
func (r *MongoEarningsRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, earningsIndexModels()); err != nil {
		return fmt.Errorf("failed to create earnings indexes: %w", err)
	}
	return nil
}
