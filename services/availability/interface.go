package availability

import (
	"context"
	"time"

	"carenow/models"
)

// AvailabilityService manages a partner's capacity to receive new jobs.
type AvailabilityService interface {
	Get(ctx context.Context, partnerID string) (*models.PartnerAvailability, error)

	SetAvailable(ctx context.Context, partnerID string, isAvailable bool, reason string) error
	SetOnline(ctx context.Context, partnerID string, isOnline bool) error

	// SetWorkingHours validates the weekly schedule before persisting it.
	SetWorkingHours(ctx context.Context, partnerID string, hours map[string][]string) error

	BlockDates(ctx context.Context, partnerID string, dates []string) error
	UnblockDates(ctx context.Context, partnerID string, dates []string) error

	SetTemporaryUnavailability(ctx context.Context, partnerID string, until time.Time, reason string) error
	ClearTemporaryUnavailability(ctx context.Context, partnerID string) error

	// SweepExpired clears temporary-unavailability windows that have passed.
	// Driven by the cron schedule; returns the number of partners cleared.
	SweepExpired(ctx context.Context) (int, error)
}
