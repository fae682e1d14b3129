package jobRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// jobIndexModels returns the indexes backing the dashboard queries. The
// (id, partnerId) index is unique: a re-delivered intake POST must hit a
// duplicate-key error instead of creating a second pending job for the same
// booking.
func jobIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}, {Key: "partnerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "partnerId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "partnerId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}
}

// EnsureIndexes creates the job indexes.
func (r *MongoJobRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.jobColl.Indexes().CreateMany(ctx, jobIndexModels()); err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}
	return nil
}
