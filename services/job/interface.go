package job

import (
	"context"

	"carenow/models"
)

// OfferEnqueuer queues the "new job offer" push for asynchronous delivery.
type OfferEnqueuer interface {
	EnqueueOfferPush(ctx context.Context, payload models.OfferPushPayload) error
}

// JobService orchestrates the partner job lifecycle: intake of assigned
// bookings and the accept/reject/start/complete/cancel transitions.
type JobService interface {
	// CreateJob records a booking assignment as a pending job and queues the
	// offer push to the partner.
	CreateJob(ctx context.Context, j *models.Job) error

	GetJob(ctx context.Context, partnerID, jobID string) (*models.Job, error)
	PendingJobs(ctx context.Context, partnerID string) ([]models.Job, error)
	ActiveJobs(ctx context.Context, partnerID string) ([]models.Job, error)
	JobHistory(ctx context.Context, partnerID string, limit int64) ([]models.Job, error)

	AcceptJob(ctx context.Context, partnerID, jobID string) (*models.Job, error)
	RejectJob(ctx context.Context, partnerID, jobID, reason string) (*models.Job, error)
	StartJob(ctx context.Context, partnerID, jobID string) (*models.Job, error)
	// CompleteJob transitions the job and then accrues the partner's share
	// into the earnings accumulator.
	CompleteJob(ctx context.Context, partnerID, jobID string) (*models.Job, error)
	CancelJob(ctx context.Context, partnerID, jobID, reason string) (*models.Job, error)
}
