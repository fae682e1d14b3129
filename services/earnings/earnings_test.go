package earnings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carenow/models"
)

// fakeEarningsRepo applies models.PartnerEarnings.Accrue under a mutex, the
// in-memory analog of the atomic server-side pipeline.
type fakeEarningsRepo struct {
	mu   sync.Mutex
	docs map[string]models.PartnerEarnings
	now  func() time.Time
}

func newFakeEarningsRepo() *fakeEarningsRepo {
	return &fakeEarningsRepo{
		docs: make(map[string]models.PartnerEarnings),
		now:  time.Now,
	}
}

func (f *fakeEarningsRepo) Get(_ context.Context, partnerID string) (*models.PartnerEarnings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[partnerID]
	if !ok {
		doc = models.DefaultEarnings(partnerID, f.now())
		f.docs[partnerID] = doc
	}
	return &doc, nil
}

func (f *fakeEarningsRepo) Accrue(_ context.Context, partnerID string, amount float64) (*models.PartnerEarnings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[partnerID]
	if !ok {
		doc = models.DefaultEarnings(partnerID, f.now())
	}
	doc = doc.Accrue(amount, f.now())
	f.docs[partnerID] = doc
	return &doc, nil
}

func (f *fakeEarningsRepo) Watch(ctx context.Context, partnerID string) (<-chan models.PartnerEarnings, error) {
	ch := make(chan models.PartnerEarnings)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func TestRecordCompletedJobAccruesExactly(t *testing.T) {
	repo := newFakeEarningsRepo()
	svc := &DefaultEarningsService{Repo: repo, Logger: zap.NewNop()}
	ctx := context.Background()

	before, err := svc.Get(ctx, "p1")
	require.NoError(t, err)

	after, err := svc.RecordCompletedJob(ctx, "p1", 180000)
	require.NoError(t, err)

	assert.Equal(t, before.TotalEarnings+180000, after.TotalEarnings)
	assert.Equal(t, before.TotalJobs+1, after.TotalJobs)
}

// The accrual primitive is atomic, so racing completions must all land.
func TestConcurrentCompletionsLoseNothing(t *testing.T) {
	repo := newFakeEarningsRepo()
	svc := &DefaultEarningsService{Repo: repo, Logger: zap.NewNop()}
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecordCompletedJob(ctx, "p1", 10000)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, float64(workers*10000), got.TotalEarnings)
	assert.Equal(t, workers, got.TotalJobs)
}

func TestDayRollResetsTodayCounters(t *testing.T) {
	repo := newFakeEarningsRepo()
	svc := &DefaultEarningsService{Repo: repo, Logger: zap.NewNop()}
	ctx := context.Background()

	day1 := time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

	repo.now = func() time.Time { return day1 }
	_, err := svc.RecordCompletedJob(ctx, "p1", 300000)
	require.NoError(t, err)
	_, err = svc.RecordCompletedJob(ctx, "p1", 100000)
	require.NoError(t, err)

	got, _ := svc.Get(ctx, "p1")
	assert.Equal(t, 400000.0, got.TodayEarnings)
	assert.Equal(t, 2, got.TodayJobs)

	repo.now = func() time.Time { return day2 }
	after, err := svc.RecordCompletedJob(ctx, "p1", 50000)
	require.NoError(t, err)

	assert.Equal(t, 450000.0, after.TotalEarnings)
	assert.Equal(t, 3, after.TotalJobs)
	assert.Equal(t, 50000.0, after.TodayEarnings)
	assert.Equal(t, 1, after.TodayJobs)
}

func TestRecalculateWindowTotalsUnsupported(t *testing.T) {
	svc := &DefaultEarningsService{Repo: newFakeEarningsRepo(), Logger: zap.NewNop()}
	err := svc.RecalculateWindowTotals(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrWindowTotalsUnsupported)
}
