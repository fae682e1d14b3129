package cron

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"carenow/services/availability"
)

// StartAvailabilitySweep schedules the expired-unavailability sweep. Partners
// whose temporary window has lapsed are flipped back to available without
// having to clear it themselves. The returned cron is stopped by the caller
// on shutdown.
func StartAvailabilitySweep(spec string, svc availability.AvailabilityService, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		cleared, err := svc.SweepExpired(context.Background())
		if err != nil {
			logger.Warn("availability sweep failed", zap.Error(err))
			return
		}
		if cleared > 0 {
			logger.Info("availability sweep done", zap.Int("cleared", cleared))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid availability sweep spec %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
