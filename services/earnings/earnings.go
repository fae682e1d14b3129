// Package earnings exposes the partner earnings accumulator.
package earnings

import (
	"context"
	"errors"

	"go.uber.org/zap"

	earningsRepo "carenow/database/repository/earnings"
	"carenow/models"
)

// ErrWindowTotalsUnsupported is returned by RecalculateWindowTotals. The
// week/month counters are read by the dashboard but their rollover rules are
// still pending product clarification, so accrual into them is explicitly
// unsupported rather than silently wrong.
var ErrWindowTotalsUnsupported = errors.New("week/month earnings recalculation is not supported yet")

// EarningsService reads and accrues partner earnings.
type EarningsService interface {
	Get(ctx context.Context, partnerID string) (*models.PartnerEarnings, error)

	// RecordCompletedJob adds the job's partner share atomically; safe under
	// concurrent completions.
	RecordCompletedJob(ctx context.Context, partnerID string, amount float64) (*models.PartnerEarnings, error)

	// RecalculateWindowTotals always fails with ErrWindowTotalsUnsupported.
	RecalculateWindowTotals(ctx context.Context, partnerID string) error
}

// DefaultEarningsService is the production implementation.
type DefaultEarningsService struct {
	Repo   earningsRepo.EarningsRepository
	Logger *zap.Logger
}

func (s *DefaultEarningsService) Get(ctx context.Context, partnerID string) (*models.PartnerEarnings, error) {
	return s.Repo.Get(ctx, partnerID)
}

func (s *DefaultEarningsService) RecordCompletedJob(ctx context.Context, partnerID string, amount float64) (*models.PartnerEarnings, error) {
	updated, err := s.Repo.Accrue(ctx, partnerID, amount)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("recorded completed job earnings",
		zap.String("partnerId", partnerID),
		zap.Float64("amount", amount),
		zap.Float64("totalEarnings", updated.TotalEarnings))
	return updated, nil
}

func (s *DefaultEarningsService) RecalculateWindowTotals(ctx context.Context, partnerID string) error {
	return ErrWindowTotalsUnsupported
}
