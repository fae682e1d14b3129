package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	jobRepo "carenow/database/repository/job"
	"carenow/models"
	"carenow/services/earnings"
)

// fakeJobRepo mimics the transactional Mongo datasource: guarded transitions
// and booking mirroring happen together or not at all.
type fakeJobRepo struct {
	mu       sync.Mutex
	jobs     map[string]*models.Job
	bookings map[string]string // booking id -> status
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:     make(map[string]*models.Job),
		bookings: make(map[string]string),
	}
}

func (f *fakeJobRepo) Create(_ context.Context, j *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	j.Status = models.JobStatusPending
	j.CreatedAt = now
	j.UpdatedAt = now
	copied := *j
	f.jobs[j.ID] = &copied
	f.bookings[j.BookingID] = models.BookingStatusPending
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, partnerID, jobID string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[jobID]
	if !ok || j.PartnerID != partnerID {
		return nil, jobRepo.ErrJobNotFound
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) Transition(_ context.Context, partnerID, jobID string, to models.JobStatus, reason string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	j, ok := f.jobs[jobID]
	if !ok || j.PartnerID != partnerID {
		return nil, jobRepo.ErrJobNotFound
	}
	if err := models.ValidateTransition(j.Status, to); err != nil {
		return nil, err
	}

	now := time.Now()
	j.Status = to
	j.UpdatedAt = now
	if reason != "" {
		j.RejectionReason = reason
	}
	switch to {
	case models.JobStatusAccepted:
		j.AcceptedAt = &now
	case models.JobStatusRejected:
		j.RejectedAt = &now
	case models.JobStatusInProgress:
		j.StartedAt = &now
	case models.JobStatusCompleted:
		j.CompletedAt = &now
	case models.JobStatusCancelled:
		j.CancelledAt = &now
	}
	f.bookings[j.BookingID] = models.BookingStatusFor(to)

	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) GetPendingJobs(_ context.Context, partnerID string) ([]models.Job, error) {
	return f.byStatus(partnerID, models.JobStatusPending), nil
}

func (f *fakeJobRepo) GetActiveJobs(_ context.Context, partnerID string) ([]models.Job, error) {
	active := f.byStatus(partnerID, models.JobStatusAccepted)
	return append(active, f.byStatus(partnerID, models.JobStatusInProgress)...), nil
}

func (f *fakeJobRepo) GetJobHistory(_ context.Context, partnerID string, limit int64) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, j := range f.jobs {
		if j.PartnerID == partnerID && int64(len(out)) < limit {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) byStatus(partnerID string, status models.JobStatus) []models.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, j := range f.jobs {
		if j.PartnerID == partnerID && j.Status == status {
			out = append(out, *j)
		}
	}
	return out
}

func (f *fakeJobRepo) Watch(ctx context.Context, partnerID string) (<-chan models.Job, error) {
	ch := make(chan models.Job)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakeJobRepo) EnsureIndexes(context.Context) error { return nil }

type fakeNotifier struct {
	mu          sync.Mutex
	clientPings []string
}

func (f *fakeNotifier) NotifyClient(_ context.Context, userID, _, _ string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clientPings = append(f.clientPings, userID)
	return nil
}

func (f *fakeNotifier) NotifyPartner(_ context.Context, _, _, _, _ string) error { return nil }

type fakeEnqueuer struct {
	payloads []models.OfferPushPayload
}

func (f *fakeEnqueuer) EnqueueOfferPush(_ context.Context, p models.OfferPushPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

// fakeAccrualRepo backs a real DefaultEarningsService for scenario tests.
type fakeAccrualRepo struct {
	mu   sync.Mutex
	docs map[string]models.PartnerEarnings
}

func (f *fakeAccrualRepo) Get(_ context.Context, partnerID string) (*models.PartnerEarnings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.docs[partnerID]
	doc.PartnerID = partnerID
	return &doc, nil
}

func (f *fakeAccrualRepo) Accrue(_ context.Context, partnerID string, amount float64) (*models.PartnerEarnings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.docs[partnerID]
	doc.PartnerID = partnerID
	doc = doc.Accrue(amount, time.Now())
	f.docs[partnerID] = doc
	return &doc, nil
}

func (f *fakeAccrualRepo) Watch(ctx context.Context, _ string) (<-chan models.PartnerEarnings, error) {
	ch := make(chan models.PartnerEarnings)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func newTestService() (*DefaultJobService, *fakeJobRepo, *fakeAccrualRepo, *fakeEnqueuer) {
	repo := newFakeJobRepo()
	accrual := &fakeAccrualRepo{docs: make(map[string]models.PartnerEarnings)}
	enq := &fakeEnqueuer{}
	svc := &DefaultJobService{
		Repo:     repo,
		Earnings: &earnings.DefaultEarningsService{Repo: accrual, Logger: zap.NewNop()},
		Notifier: &fakeNotifier{},
		Offers:   enq,
		Logger:   zap.NewNop(),
	}
	return svc, repo, accrual, enq
}

func sampleJob() *models.Job {
	return &models.Job{
		ID:              "bk-1001",
		BookingID:       "bk-1001",
		PartnerID:       "partner-1",
		UserID:          "user-1",
		ClientName:      "Mai Nguyen",
		ClientPhone:     "0912345678",
		ServiceID:       "elder-care",
		ServiceName:     "Elder care",
		ScheduledDate:   "2026-09-05",
		TimeSlot:        "08:00-11:00",
		Hours:           3,
		TotalPrice:      450000,
		PartnerEarnings: 360000,
		ClientAddress:   "12 Hang Bac, Hanoi",
	}
}

func TestCreateJobQueuesOfferPush(t *testing.T) {
	svc, repo, _, enq := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateJob(ctx, sampleJob()))

	created, err := repo.GetByID(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	require.Len(t, enq.payloads, 1)
	assert.Equal(t, "bk-1001", enq.payloads[0].JobID)
	assert.Equal(t, "partner-1", enq.payloads[0].PartnerID)
}

func TestCreateJobValidatesBeforePersisting(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	bad := sampleJob()
	bad.TotalPrice = 0
	require.Error(t, svc.CreateJob(ctx, bad))

	bad = sampleJob()
	bad.PartnerEarnings = bad.TotalPrice + 1
	require.Error(t, svc.CreateJob(ctx, bad))

	bad = sampleJob()
	bad.PartnerID = ""
	require.Error(t, svc.CreateJob(ctx, bad))

	_, err := repo.GetByID(ctx, "partner-1", "bk-1001")
	assert.ErrorIs(t, err, jobRepo.ErrJobNotFound)
}

func TestAcceptJobSetsStatusAndTimestamp(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateJob(ctx, sampleJob()))

	updated, err := svc.AcceptJob(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusAccepted, updated.Status)
	require.NotNil(t, updated.AcceptedAt)
	assert.Nil(t, updated.RejectedAt)
	assert.Equal(t, models.BookingStatusConfirmed, repo.bookings["bk-1001"])
}

func TestDoubleAcceptFailsWithTypedError(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateJob(ctx, sampleJob()))

	first, err := svc.AcceptJob(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)

	_, err = svc.AcceptJob(ctx, "partner-1", "bk-1001")
	var invalid *models.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.JobStatusAccepted, invalid.From)

	// The rejected retry must leave the job untouched.
	current, err := repo.GetByID(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusAccepted, current.Status)
	assert.Equal(t, first.AcceptedAt.Unix(), current.AcceptedAt.Unix())
}

func TestRejectJobRequiresReason(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateJob(ctx, sampleJob()))

	_, err := svc.RejectJob(ctx, "partner-1", "bk-1001", "")
	require.Error(t, err)

	updated, err := svc.RejectJob(ctx, "partner-1", "bk-1001", "fully booked")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusRejected, updated.Status)
	assert.Equal(t, "fully booked", updated.RejectionReason)
	require.NotNil(t, updated.RejectedAt)
	assert.Nil(t, updated.AcceptedAt)
	assert.Equal(t, models.BookingStatusRejected, repo.bookings["bk-1001"])
}

func TestStartRequiresAccepted(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateJob(ctx, sampleJob()))

	_, err := svc.StartJob(ctx, "partner-1", "bk-1001")
	var invalid *models.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestCompleteJobAccruesEarnings(t *testing.T) {
	svc, repo, accrual, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.CreateJob(ctx, sampleJob()))

	_, err := svc.AcceptJob(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)
	_, err = svc.StartJob(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)

	updated, err := svc.CompleteJob(ctx, "partner-1", "bk-1001")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.AcceptedAt)
	require.NotNil(t, updated.StartedAt)
	assert.Equal(t, models.BookingStatusCompleted, repo.bookings["bk-1001"])

	got, err := accrual.Get(ctx, "partner-1")
	require.NoError(t, err)
	assert.Equal(t, 360000.0, got.TotalEarnings)
	assert.Equal(t, 1, got.TotalJobs)

	// A duplicate complete is stopped by the guard before it can double-accrue.
	_, err = svc.CompleteJob(ctx, "partner-1", "bk-1001")
	var invalid *models.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	got, _ = accrual.Get(ctx, "partner-1")
	assert.Equal(t, 360000.0, got.TotalEarnings)
	assert.Equal(t, 1, got.TotalJobs)
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	for _, prep := range []func(id string){
		func(id string) {}, // pending
		func(id string) { _, _ = svc.AcceptJob(ctx, "partner-1", id) },
		func(id string) {
			_, _ = svc.AcceptJob(ctx, "partner-1", id)
			_, _ = svc.StartJob(ctx, "partner-1", id)
		},
	} {
		j := sampleJob()
		j.ID = "bk-" + time.Now().Format("150405.000000000")
		j.BookingID = j.ID
		require.NoError(t, svc.CreateJob(ctx, j))
		prep(j.ID)

		updated, err := svc.CancelJob(ctx, "partner-1", j.ID, "client no-show")
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusCancelled, updated.Status)
		require.NotNil(t, updated.CancelledAt)
		assert.Equal(t, models.BookingStatusCancelled, repo.bookings[j.BookingID])
	}

	// Terminal states cannot be cancelled.
	j := sampleJob()
	j.ID, j.BookingID = "bk-done", "bk-done"
	require.NoError(t, svc.CreateJob(ctx, j))
	_, _ = svc.AcceptJob(ctx, "partner-1", "bk-done")
	_, _ = svc.StartJob(ctx, "partner-1", "bk-done")
	_, _ = svc.CompleteJob(ctx, "partner-1", "bk-done")
	_, err := svc.CancelJob(ctx, "partner-1", "bk-done", "too late")
	var invalid *models.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestUnknownJobReturnsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.AcceptJob(context.Background(), "partner-1", "no-such-job")
	assert.ErrorIs(t, err, jobRepo.ErrJobNotFound)
}
