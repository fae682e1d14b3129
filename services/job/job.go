package job

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	jobRepo "carenow/database/repository/job"
	"carenow/models"
	"carenow/services/earnings"
	"carenow/services/notification"
	"carenow/services/partner"
)

const historyLimit = 20

// DefaultJobService is the production implementation.
type DefaultJobService struct {
	Repo     jobRepo.JobRepository
	Earnings earnings.EarningsService
	Notifier notification.NotificationService
	Offers   OfferEnqueuer
	Logger   *zap.Logger
}

// CreateJob validates the assignment payload, persists the pending job, and
// queues the offer push. Validation happens before any I/O.
func (s *DefaultJobService) CreateJob(ctx context.Context, j *models.Job) error {
	if j.ID == "" || j.BookingID == "" || j.PartnerID == "" || j.UserID == "" {
		return fmt.Errorf("job is missing required identifiers")
	}
	if err := partner.ValidatePrice(j.TotalPrice); err != nil {
		return err
	}
	if j.PartnerEarnings <= 0 || j.PartnerEarnings > j.TotalPrice {
		return fmt.Errorf("partner earnings share must be positive and at most the total price")
	}
	if j.ClientPhone != "" {
		if err := partner.ValidatePhone(j.ClientPhone); err != nil {
			return err
		}
	}

	if err := s.Repo.Create(ctx, j); err != nil {
		return err
	}

	payload := models.OfferPushPayload{
		PartnerID: j.PartnerID,
		JobID:     j.ID,
		Title:     "New job offer",
		Body:      fmt.Sprintf("%s on %s, %s", j.ServiceName, j.ScheduledDate, j.TimeSlot),
	}
	if err := s.Offers.EnqueueOfferPush(ctx, payload); err != nil {
		// The job exists; the offer push is retried by the queue or surfaced
		// by the pending-jobs poll, so intake does not fail here.
		s.Logger.Warn("failed to enqueue offer push",
			zap.String("jobId", j.ID), zap.Error(err))
	}
	return nil
}

func (s *DefaultJobService) GetJob(ctx context.Context, partnerID, jobID string) (*models.Job, error) {
	return s.Repo.GetByID(ctx, partnerID, jobID)
}

func (s *DefaultJobService) PendingJobs(ctx context.Context, partnerID string) ([]models.Job, error) {
	return s.Repo.GetPendingJobs(ctx, partnerID)
}

func (s *DefaultJobService) ActiveJobs(ctx context.Context, partnerID string) ([]models.Job, error) {
	return s.Repo.GetActiveJobs(ctx, partnerID)
}

func (s *DefaultJobService) JobHistory(ctx context.Context, partnerID string, limit int64) ([]models.Job, error) {
	if limit <= 0 {
		limit = historyLimit
	}
	return s.Repo.GetJobHistory(ctx, partnerID, limit)
}

// transition runs the guarded, transactional status change and notifies the
// client. Client pushes are best-effort.
func (s *DefaultJobService) transition(ctx context.Context, partnerID, jobID string, to models.JobStatus, reason, clientMessage string) (*models.Job, error) {
	updated, err := s.Repo.Transition(ctx, partnerID, jobID, to, reason)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("job transitioned",
		zap.String("jobId", jobID),
		zap.String("partnerId", partnerID),
		zap.String("status", string(to)))

	if clientMessage != "" {
		data := map[string]string{"bookingId": updated.BookingID, "status": string(to)}
		if err := s.Notifier.NotifyClient(ctx, updated.UserID, "Booking update", clientMessage, data); err != nil {
			s.Logger.Warn("client push failed",
				zap.String("jobId", jobID), zap.Error(err))
		}
	}
	return updated, nil
}

func (s *DefaultJobService) AcceptJob(ctx context.Context, partnerID, jobID string) (*models.Job, error) {
	return s.transition(ctx, partnerID, jobID, models.JobStatusAccepted, "",
		"Your booking has been confirmed")
}

func (s *DefaultJobService) RejectJob(ctx context.Context, partnerID, jobID, reason string) (*models.Job, error) {
	if reason == "" {
		return nil, fmt.Errorf("a rejection reason is required")
	}
	return s.transition(ctx, partnerID, jobID, models.JobStatusRejected, reason,
		"Your booking could not be accepted")
}

func (s *DefaultJobService) StartJob(ctx context.Context, partnerID, jobID string) (*models.Job, error) {
	return s.transition(ctx, partnerID, jobID, models.JobStatusInProgress, "",
		"Your care service is underway")
}

// CompleteJob transitions the job, then accrues the partner's share. The
// transition guard makes a repeated complete fail before it can double-accrue.
func (s *DefaultJobService) CompleteJob(ctx context.Context, partnerID, jobID string) (*models.Job, error) {
	updated, err := s.transition(ctx, partnerID, jobID, models.JobStatusCompleted, "",
		"Your care service is complete")
	if err != nil {
		return nil, err
	}

	if _, err := s.Earnings.RecordCompletedJob(ctx, partnerID, updated.PartnerEarnings); err != nil {
		return nil, fmt.Errorf("job %s completed but earnings accrual failed: %w", jobID, err)
	}
	return updated, nil
}

func (s *DefaultJobService) CancelJob(ctx context.Context, partnerID, jobID, reason string) (*models.Job, error) {
	if reason == "" {
		return nil, fmt.Errorf("a cancellation reason is required")
	}
	return s.transition(ctx, partnerID, jobID, models.JobStatusCancelled, reason,
		"Your booking has been cancelled")
}
