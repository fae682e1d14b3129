package dashboard

import (
	"context"

	"carenow/models"
)

// State is the combined partner dashboard view.
type State struct {
	PartnerID          string                      `json:"partnerId"`
	PendingJobs        []models.Job                `json:"pendingJobs"`
	ActiveJobs         []models.Job                `json:"activeJobs"`
	RecentJobs         []models.Job                `json:"recentJobs"`
	Earnings           *models.PartnerEarnings     `json:"earnings"`
	Availability       *models.PartnerAvailability `json:"availability"`
	UnreadNotification int64                       `json:"unreadNotifications"`
}

// Update is the closed set of live dashboard updates. Exactly one concrete
// type exists per stream; consumers switch exhaustively on the variants.
type Update interface {
	isDashboardUpdate()
}

type JobUpdate struct {
	Job models.Job `json:"job"`
}

type EarningsUpdate struct {
	Earnings models.PartnerEarnings `json:"earnings"`
}

type AvailabilityUpdate struct {
	Availability models.PartnerAvailability `json:"availability"`
}

func (JobUpdate) isDashboardUpdate()          {}
func (EarningsUpdate) isDashboardUpdate()     {}
func (AvailabilityUpdate) isDashboardUpdate() {}

// DashboardService loads the combined dashboard and streams live updates.
type DashboardService interface {
	// Load fans out the dashboard reads in parallel. Any failing read fails
	// the whole load; there is no partial-success state.
	Load(ctx context.Context, partnerID string) (*State, error)

	// Invalidate drops the cached snapshot after a job action so the next
	// Load re-fetches everything.
	Invalidate(ctx context.Context, partnerID string)

	// Watch merges the job, earnings, and availability streams into one
	// channel. The channel closes when ctx is cancelled. Ordering is only
	// guaranteed within a single underlying stream.
	Watch(ctx context.Context, partnerID string) (<-chan Update, error)
}
