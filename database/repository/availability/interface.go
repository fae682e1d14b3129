package availabilityRepo

import (
	"context"
	"time"

	"carenow/models"
)

// AvailabilityRepository is the datasource for per-partner availability documents.
// Validation of working hours happens in the service layer; this layer only
// persists.
type AvailabilityRepository interface {
	// Get returns the partner's availability, creating the default document
	// (available, 09:00-17:00 all week) on first read.
	Get(ctx context.Context, partnerID string) (*models.PartnerAvailability, error)

	UpdateAvailabilityStatus(ctx context.Context, partnerID string, isAvailable bool, reason string) error
	UpdateOnlineStatus(ctx context.Context, partnerID string, isOnline bool) error
	UpdateWorkingHours(ctx context.Context, partnerID string, hours map[string][]string) error

	BlockDates(ctx context.Context, partnerID string, dates []string) error
	UnblockDates(ctx context.Context, partnerID string, dates []string) error

	SetTemporaryUnavailability(ctx context.Context, partnerID string, until time.Time, reason string) error
	ClearTemporaryUnavailability(ctx context.Context, partnerID string) error

	// ExpiredUnavailability lists partners whose temporary window has passed,
	// for the background sweep.
	ExpiredUnavailability(ctx context.Context, now time.Time) ([]string, error)

	// Watch streams changes to the partner's availability document.
	Watch(ctx context.Context, partnerID string) (<-chan models.PartnerAvailability, error)
}
