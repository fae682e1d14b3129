package jobRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carenow/models"
)

func (r *MongoJobRepo) findJobs(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.jobColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("job query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

// GetPendingJobs returns open offers for the partner, urgent first, newest next.
func (r *MongoJobRepo) GetPendingJobs(ctx context.Context, partnerID string) ([]models.Job, error) {
	filter := bson.M{"partnerId": partnerID, "status": models.JobStatusPending}
	opts := options.Find().SetSort(bson.D{
		{Key: "isUrgent", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	return r.findJobs(ctx, filter, opts)
}

// GetActiveJobs returns accepted and in-progress jobs ordered by scheduled date.
func (r *MongoJobRepo) GetActiveJobs(ctx context.Context, partnerID string) ([]models.Job, error) {
	filter := bson.M{
		"partnerId": partnerID,
		"status":    bson.M{"$in": []models.JobStatus{models.JobStatusAccepted, models.JobStatusInProgress}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.findJobs(ctx, filter, opts)
}

// GetJobHistory returns the most recently touched jobs regardless of status.
func (r *MongoJobRepo) GetJobHistory(ctx context.Context, partnerID string, limit int64) ([]models.Job, error) {
	filter := bson.M{"partnerId": partnerID}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetLimit(limit)
	return r.findJobs(ctx, filter, opts)
}
