package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	availabilityRepo "carenow/database/repository/availability"
	"carenow/models"
)

// ErrPastUnavailability rejects temporary-unavailability windows that have
// already elapsed.
var ErrPastUnavailability = errors.New("unavailability window must end in the future")

// ErrInvalidBlockedDate rejects blocked dates that are not YYYY-MM-DD.
var ErrInvalidBlockedDate = errors.New("blocked dates must be formatted as YYYY-MM-DD")

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo   availabilityRepo.AvailabilityRepository
	Logger *zap.Logger
}

func (s *DefaultAvailabilityService) Get(ctx context.Context, partnerID string) (*models.PartnerAvailability, error) {
	return s.Repo.Get(ctx, partnerID)
}

func (s *DefaultAvailabilityService) SetAvailable(ctx context.Context, partnerID string, isAvailable bool, reason string) error {
	return s.Repo.UpdateAvailabilityStatus(ctx, partnerID, isAvailable, reason)
}

func (s *DefaultAvailabilityService) SetOnline(ctx context.Context, partnerID string, isOnline bool) error {
	return s.Repo.UpdateOnlineStatus(ctx, partnerID, isOnline)
}

// SetWorkingHours validates the schedule, then overwrites it. The repository
// layer performs no re-validation.
func (s *DefaultAvailabilityService) SetWorkingHours(ctx context.Context, partnerID string, hours map[string][]string) error {
	if err := ValidateWorkingHours(hours); err != nil {
		return err
	}
	return s.Repo.UpdateWorkingHours(ctx, partnerID, hours)
}

func (s *DefaultAvailabilityService) BlockDates(ctx context.Context, partnerID string, dates []string) error {
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidBlockedDate, d)
		}
	}
	return s.Repo.BlockDates(ctx, partnerID, dates)
}

func (s *DefaultAvailabilityService) UnblockDates(ctx context.Context, partnerID string, dates []string) error {
	return s.Repo.UnblockDates(ctx, partnerID, dates)
}

func (s *DefaultAvailabilityService) SetTemporaryUnavailability(ctx context.Context, partnerID string, until time.Time, reason string) error {
	if !until.After(time.Now()) {
		return ErrPastUnavailability
	}
	return s.Repo.SetTemporaryUnavailability(ctx, partnerID, until, reason)
}

func (s *DefaultAvailabilityService) ClearTemporaryUnavailability(ctx context.Context, partnerID string) error {
	return s.Repo.ClearTemporaryUnavailability(ctx, partnerID)
}

// SweepExpired clears every expired temporary-unavailability window. Partners
// become available again without having to clear the window themselves.
func (s *DefaultAvailabilityService) SweepExpired(ctx context.Context) (int, error) {
	partnerIDs, err := s.Repo.ExpiredUnavailability(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("expired unavailability lookup failed: %w", err)
	}

	cleared := 0
	for _, id := range partnerIDs {
		if err := s.Repo.ClearTemporaryUnavailability(ctx, id); err != nil {
			s.Logger.Warn("failed to clear expired unavailability",
				zap.String("partnerId", id), zap.Error(err))
			continue
		}
		cleared++
	}
	if cleared > 0 {
		s.Logger.Info("cleared expired unavailability windows", zap.Int("count", cleared))
	}
	return cleared, nil
}
