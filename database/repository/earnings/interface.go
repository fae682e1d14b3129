package earningsRepo

import (
	"context"

	"carenow/models"
)

// EarningsRepository is the datasource for per-partner earnings counters.
type EarningsRepository interface {
	// Get returns the partner's earnings, creating the default-zero document on
	// first read.
	Get(ctx context.Context, partnerID string) (*models.PartnerEarnings, error)

	// Accrue records one completed job worth amount in a single atomic
	// server-side update, including the calendar-day roll of the today-counters.
	// Concurrent completions for the same partner cannot lose updates.
	Accrue(ctx context.Context, partnerID string, amount float64) (*models.PartnerEarnings, error)

	// Watch streams changes to the partner's earnings document.
	Watch(ctx context.Context, partnerID string) (<-chan models.PartnerEarnings, error)
}
