package jobRepo

import (
	"context"

	"carenow/models"
)

// JobRepository is the datasource for partner jobs and the bookings they mirror.
type JobRepository interface {
	// Create inserts a pending job for an assigned booking.
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, partnerID, jobID string) (*models.Job, error)

	GetPendingJobs(ctx context.Context, partnerID string) ([]models.Job, error)
	GetActiveJobs(ctx context.Context, partnerID string) ([]models.Job, error)
	GetJobHistory(ctx context.Context, partnerID string, limit int64) ([]models.Job, error)

	// Transition moves a job to the given status and mirrors the linked booking
	// inside one transaction. The update is guarded by the legal source statuses,
	// so an illegal transition fails with *models.InvalidTransitionError even
	// when two writers race.
	Transition(ctx context.Context, partnerID, jobID string, to models.JobStatus, reason string) (*models.Job, error)

	// Watch streams every change to the partner's jobs until ctx is cancelled.
	Watch(ctx context.Context, partnerID string) (<-chan models.Job, error)

	EnsureIndexes(ctx context.Context) error
}
