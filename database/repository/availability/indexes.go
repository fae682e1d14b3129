package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// availabilityIndexModels enforces one availability document per partner (all
// writes here are partnerId-filtered upserts) and backs the expiry sweep's
// unavailableUntil range scan.
func availabilityIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "partnerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "unavailableUntil", Value: 1}}},
	}
}

// EnsureIndexes creates the availability indexes.
func (r *MongoAvailabilityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, availabilityIndexModels()); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
