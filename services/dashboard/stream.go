package dashboard

import (
	"context"
	"sync"

	"carenow/models"
)

// Watch opens the three per-partner change streams and merges them into one
// update channel. Each underlying stream preserves its own emission order;
// no ordering holds across streams. Cancelling ctx tears down all three
// subscriptions and closes the channel; callers resubscribe by calling Watch
// again, which gives them fresh streams.
func (s *DefaultDashboardService) Watch(ctx context.Context, partnerID string) (<-chan Update, error) {
	jobCh, err := s.Jobs.Watch(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	earningsCh, err := s.Earnings.Watch(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	availabilityCh, err := s.Availability.Watch(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	out := make(chan Update)
	var wg sync.WaitGroup
	wg.Add(3)

	forward := func(updates <-chan Update) {
		defer wg.Done()
		for u := range updates {
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}

	jobs := make(chan Update)
	go func() {
		defer close(jobs)
		for j := range jobCh {
			select {
			case jobs <- JobUpdate{Job: j}:
			case <-ctx.Done():
				return
			}
		}
	}()
	earnings := make(chan Update)
	go func() {
		defer close(earnings)
		for e := range earningsCh {
			select {
			case earnings <- EarningsUpdate{Earnings: e}:
			case <-ctx.Done():
				return
			}
		}
	}()
	availability := make(chan Update)
	go func() {
		defer close(availability)
		for a := range availabilityCh {
			select {
			case availability <- AvailabilityUpdate{Availability: a}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go forward(jobs)
	go forward(earnings)
	go forward(availability)

	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}

// Apply merges a live update into the state, patching the affected field the
// way the dashboard patches its loaded view between full reloads.
func (s *State) Apply(u Update) {
	switch v := u.(type) {
	case JobUpdate:
		s.applyJob(v)
	case EarningsUpdate:
		e := v.Earnings
		s.Earnings = &e
	case AvailabilityUpdate:
		a := v.Availability
		s.Availability = &a
	}
}

func (s *State) applyJob(u JobUpdate) {
	job := u.Job

	s.PendingJobs = replaceOrDrop(s.PendingJobs, job, job.Status == models.JobStatusPending)
	s.ActiveJobs = replaceOrDrop(s.ActiveJobs, job, job.IsActive())

	// Recent history: replace in place if present, otherwise prepend.
	for i := range s.RecentJobs {
		if s.RecentJobs[i].ID == job.ID {
			s.RecentJobs[i] = job
			return
		}
	}
	s.RecentJobs = append([]models.Job{job}, s.RecentJobs...)
}

// replaceOrDrop updates the job's entry in a status-scoped list: replaced or
// appended while it belongs there, removed once it no longer does.
func replaceOrDrop(jobs []models.Job, job models.Job, belongs bool) []models.Job {
	for i := range jobs {
		if jobs[i].ID == job.ID {
			if belongs {
				jobs[i] = job
				return jobs
			}
			return append(jobs[:i], jobs[i+1:]...)
		}
	}
	if belongs {
		return append(jobs, job)
	}
	return jobs
}
