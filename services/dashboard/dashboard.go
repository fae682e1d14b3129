package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	availabilityRepo "carenow/database/repository/availability"
	earningsRepo "carenow/database/repository/earnings"
	jobRepo "carenow/database/repository/job"
	notificationRepo "carenow/database/repository/notification"
)

const (
	snapshotKeyPrefix  = "dashboard:"
	recentHistoryLimit = 20
)

// SnapshotCache is the subset of redis commands the snapshot cache needs;
// *redis.Client satisfies it.
type SnapshotCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DefaultDashboardService is the production implementation.
type DefaultDashboardService struct {
	Jobs          jobRepo.JobRepository
	Earnings      earningsRepo.EarningsRepository
	Availability  availabilityRepo.AvailabilityRepository
	Notifications notificationRepo.NotificationRepository
	Cache         SnapshotCache
	CacheTTL      time.Duration
	Logger        *zap.Logger
}

func snapshotKey(partnerID string) string { return snapshotKeyPrefix + partnerID }

// Load returns the cached snapshot when fresh, otherwise fans out the six
// dashboard reads concurrently and caches the merged result.
func (s *DefaultDashboardService) Load(ctx context.Context, partnerID string) (*State, error) {
	if cached, err := s.Cache.Get(ctx, snapshotKey(partnerID)).Result(); err == nil {
		var state State
		if err := json.Unmarshal([]byte(cached), &state); err == nil {
			return &state, nil
		}
		// Corrupt snapshot: fall through to a full load.
	}

	state := &State{PartnerID: partnerID}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := s.Jobs.GetPendingJobs(gctx, partnerID)
		if err != nil {
			return err
		}
		state.PendingJobs = jobs
		return nil
	})
	g.Go(func() error {
		jobs, err := s.Jobs.GetActiveJobs(gctx, partnerID)
		if err != nil {
			return err
		}
		state.ActiveJobs = jobs
		return nil
	})
	g.Go(func() error {
		jobs, err := s.Jobs.GetJobHistory(gctx, partnerID, recentHistoryLimit)
		if err != nil {
			return err
		}
		state.RecentJobs = jobs
		return nil
	})
	g.Go(func() error {
		earnings, err := s.Earnings.Get(gctx, partnerID)
		if err != nil {
			return err
		}
		state.Earnings = earnings
		return nil
	})
	g.Go(func() error {
		availability, err := s.Availability.Get(gctx, partnerID)
		if err != nil {
			return err
		}
		state.Availability = availability
		return nil
	})
	g.Go(func() error {
		count, err := s.Notifications.UnreadCount(gctx, partnerID)
		if err != nil {
			return err
		}
		state.UnreadNotification = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cacheSnapshot(ctx, partnerID, state)
	return state, nil
}

func (s *DefaultDashboardService) cacheSnapshot(ctx context.Context, partnerID string, state *State) {
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, snapshotKey(partnerID), data, s.CacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache dashboard snapshot",
			zap.String("partnerId", partnerID), zap.Error(err))
	}
}

// Invalidate drops the cached snapshot so the next Load re-fetches everything,
// mirroring the full-refresh-after-action behavior of the mobile dashboard.
func (s *DefaultDashboardService) Invalidate(ctx context.Context, partnerID string) {
	if err := s.Cache.Del(ctx, snapshotKey(partnerID)).Err(); err != nil {
		s.Logger.Warn("failed to invalidate dashboard snapshot",
			zap.String("partnerId", partnerID), zap.Error(err))
	}
}
