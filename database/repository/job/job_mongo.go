package jobRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carenow/models"
)

// ErrJobNotFound is returned when no job matches the (partnerId, jobId) pair.
var ErrJobNotFound = errors.New("job not found")

// MongoJobRepo is the MongoDB implementation of JobRepository.
type MongoJobRepo struct {
	jobColl     *mongo.Collection
	bookingColl *mongo.Collection
}

func NewMongoJobRepo(db *mongo.Database) *MongoJobRepo {
	return &MongoJobRepo{
		jobColl:     db.Collection("partner_jobs"),
		bookingColl: db.Collection("bookings"),
	}
}

// Create inserts a new pending job document.
func (r *MongoJobRepo) Create(ctx context.Context, job *models.Job) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	job.Status = models.JobStatusPending
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Priority == "" {
		job.Priority = models.JobPriorityNormal
	}

	if _, err := r.jobColl.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("error creating job %s: %w", job.ID, err)
	}
	return nil
}

// GetByID retrieves a job scoped to the owning partner.
func (r *MongoJobRepo) GetByID(ctx context.Context, partnerID, jobID string) (*models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var job models.Job
	err := r.jobColl.FindOne(ctx, bson.M{"id": jobID, "partnerId": partnerID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to fetch job %s: %w", jobID, err)
	}
	return &job, nil
}
