package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carenow/models"
)

// fakeAvailabilityRepo is an in-memory AvailabilityRepository.
type fakeAvailabilityRepo struct {
	docs map[string]*models.PartnerAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{docs: make(map[string]*models.PartnerAvailability)}
}

func (f *fakeAvailabilityRepo) get(partnerID string) *models.PartnerAvailability {
	if doc, ok := f.docs[partnerID]; ok {
		return doc
	}
	doc := new(models.PartnerAvailability)
	*doc = models.DefaultAvailability(partnerID, time.Now())
	f.docs[partnerID] = doc
	return doc
}

func (f *fakeAvailabilityRepo) Get(_ context.Context, partnerID string) (*models.PartnerAvailability, error) {
	doc := *f.get(partnerID)
	return &doc, nil
}

func (f *fakeAvailabilityRepo) UpdateAvailabilityStatus(_ context.Context, partnerID string, isAvailable bool, reason string) error {
	doc := f.get(partnerID)
	doc.IsAvailable = isAvailable
	if reason != "" {
		doc.UnavailabilityReason = reason
	}
	doc.LastUpdated = time.Now()
	return nil
}

func (f *fakeAvailabilityRepo) UpdateOnlineStatus(_ context.Context, partnerID string, isOnline bool) error {
	doc := f.get(partnerID)
	now := time.Now()
	doc.IsOnline = isOnline
	doc.LastSeen = &now
	doc.LastUpdated = now
	return nil
}

func (f *fakeAvailabilityRepo) UpdateWorkingHours(_ context.Context, partnerID string, hours map[string][]string) error {
	f.get(partnerID).WorkingHours = hours
	return nil
}

func (f *fakeAvailabilityRepo) BlockDates(_ context.Context, partnerID string, dates []string) error {
	doc := f.get(partnerID)
	for _, d := range dates {
		found := false
		for _, existing := range doc.BlockedDates {
			if existing == d {
				found = true
				break
			}
		}
		if !found {
			doc.BlockedDates = append(doc.BlockedDates, d)
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) UnblockDates(_ context.Context, partnerID string, dates []string) error {
	doc := f.get(partnerID)
	var kept []string
	for _, existing := range doc.BlockedDates {
		remove := false
		for _, d := range dates {
			if existing == d {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, existing)
		}
	}
	doc.BlockedDates = kept
	return nil
}

func (f *fakeAvailabilityRepo) SetTemporaryUnavailability(_ context.Context, partnerID string, until time.Time, reason string) error {
	doc := f.get(partnerID)
	doc.IsAvailable = false
	doc.UnavailableUntil = &until
	doc.UnavailabilityReason = reason
	return nil
}

func (f *fakeAvailabilityRepo) ClearTemporaryUnavailability(_ context.Context, partnerID string) error {
	doc := f.get(partnerID)
	doc.IsAvailable = true
	doc.UnavailableUntil = nil
	doc.UnavailabilityReason = ""
	return nil
}

func (f *fakeAvailabilityRepo) ExpiredUnavailability(_ context.Context, now time.Time) ([]string, error) {
	var ids []string
	for id, doc := range f.docs {
		if doc.UnavailableUntil != nil && !doc.UnavailableUntil.After(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeAvailabilityRepo) Watch(ctx context.Context, partnerID string) (<-chan models.PartnerAvailability, error) {
	ch := make(chan models.PartnerAvailability)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func newService(repo *fakeAvailabilityRepo) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{Repo: repo, Logger: zap.NewNop()}
}

func TestTemporaryUnavailabilityRoundTrip(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := newService(repo)
	ctx := context.Background()

	until := time.Now().Add(2 * time.Hour)
	require.NoError(t, svc.SetTemporaryUnavailability(ctx, "p1", until, "family emergency"))

	got, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, "family emergency", got.UnavailabilityReason)
	require.NotNil(t, got.UnavailableUntil)

	require.NoError(t, svc.ClearTemporaryUnavailability(ctx, "p1"))
	got, err = svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
	assert.Nil(t, got.UnavailableUntil)
	assert.Empty(t, got.UnavailabilityReason)
}

func TestSetTemporaryUnavailabilityRejectsPastWindow(t *testing.T) {
	svc := newService(newFakeAvailabilityRepo())
	err := svc.SetTemporaryUnavailability(context.Background(), "p1", time.Now().Add(-time.Minute), "sick")
	assert.Error(t, err)
}

func TestSetWorkingHoursValidatesBeforePersisting(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := newService(repo)
	ctx := context.Background()

	err := svc.SetWorkingHours(ctx, "p1", map[string][]string{"monday": {"08:00-13:00"}})
	var whErr *WorkingHoursError
	require.ErrorAs(t, err, &whErr)

	// The default schedule must be untouched after a rejected update.
	got, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-17:00"}, got.WorkingHours["monday"])

	require.NoError(t, svc.SetWorkingHours(ctx, "p1", map[string][]string{"monday": {"08:00-10:00", "14:00-16:00"}}))
	got, err = svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00-10:00", "14:00-16:00"}, got.WorkingHours["monday"])
}

func TestBlockDatesIsSetUnion(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := newService(repo)
	ctx := context.Background()

	require.NoError(t, svc.BlockDates(ctx, "p1", []string{"2026-04-01", "2026-04-02"}))
	require.NoError(t, svc.BlockDates(ctx, "p1", []string{"2026-04-02", "2026-04-03"}))

	got, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2026-04-01", "2026-04-02", "2026-04-03"}, got.BlockedDates)

	require.NoError(t, svc.UnblockDates(ctx, "p1", []string{"2026-04-02"}))
	got, err = svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2026-04-01", "2026-04-03"}, got.BlockedDates)

	assert.Error(t, svc.BlockDates(ctx, "p1", []string{"April 1st"}))
}

func TestSweepExpiredClearsOnlyPastWindows(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := newService(repo)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	require.NoError(t, repo.SetTemporaryUnavailability(ctx, "expired", past, "was sick"))
	require.NoError(t, repo.SetTemporaryUnavailability(ctx, "active", future, "on leave"))

	cleared, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	expired, _ := svc.Get(ctx, "expired")
	assert.True(t, expired.IsAvailable)
	assert.Nil(t, expired.UnavailableUntil)

	active, _ := svc.Get(ctx, "active")
	assert.False(t, active.IsAvailable)
	require.NotNil(t, active.UnavailableUntil)
}
