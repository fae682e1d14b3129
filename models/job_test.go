package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		ok       bool
	}{
		{JobStatusPending, JobStatusAccepted, true},
		{JobStatusPending, JobStatusRejected, true},
		{JobStatusPending, JobStatusCancelled, true},
		{JobStatusPending, JobStatusInProgress, false},
		{JobStatusPending, JobStatusCompleted, false},
		{JobStatusAccepted, JobStatusInProgress, true},
		{JobStatusAccepted, JobStatusCancelled, true},
		{JobStatusAccepted, JobStatusAccepted, false},
		{JobStatusAccepted, JobStatusCompleted, false},
		{JobStatusInProgress, JobStatusCompleted, true},
		{JobStatusInProgress, JobStatusCancelled, true},
		{JobStatusInProgress, JobStatusAccepted, false},
		{JobStatusCompleted, JobStatusCancelled, false},
		{JobStatusRejected, JobStatusAccepted, false},
		{JobStatusCancelled, JobStatusPending, false},
	}
	for _, tc := range cases {
		err := ValidateTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoErrorf(t, err, "%s -> %s should be allowed", tc.from, tc.to)
		} else {
			var invalid *InvalidTransitionError
			require.Errorf(t, err, "%s -> %s should be rejected", tc.from, tc.to)
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.from, invalid.From)
			assert.Equal(t, tc.to, invalid.To)
		}
	}
}

func TestPendingJobGuards(t *testing.T) {
	j := &Job{Status: JobStatusPending}
	assert.True(t, j.CanBeAccepted())
	assert.True(t, j.CanBeRejected())
	assert.True(t, j.CanBeCancelled())
	assert.False(t, j.CanBeStarted())
	assert.False(t, j.CanBeCompleted())
}

func TestGuardsFollowLifecycle(t *testing.T) {
	j := &Job{Status: JobStatusAccepted}
	assert.True(t, j.CanBeStarted())
	assert.False(t, j.CanBeAccepted())
	assert.False(t, j.CanBeCompleted())

	j.Status = JobStatusInProgress
	assert.True(t, j.CanBeCompleted())
	assert.True(t, j.CanBeCancelled())
	assert.False(t, j.CanBeStarted())

	j.Status = JobStatusCompleted
	assert.False(t, j.CanBeCancelled())
	assert.True(t, j.Status.IsTerminal())
}

func TestTransitionSources(t *testing.T) {
	assert.ElementsMatch(t, []JobStatus{JobStatusPending}, TransitionSources(JobStatusAccepted))
	assert.ElementsMatch(t, []JobStatus{JobStatusPending}, TransitionSources(JobStatusRejected))
	assert.ElementsMatch(t, []JobStatus{JobStatusAccepted}, TransitionSources(JobStatusInProgress))
	assert.ElementsMatch(t, []JobStatus{JobStatusInProgress}, TransitionSources(JobStatusCompleted))
	assert.ElementsMatch(t,
		[]JobStatus{JobStatusPending, JobStatusAccepted, JobStatusInProgress},
		TransitionSources(JobStatusCancelled))
}

func TestParseJobStatus(t *testing.T) {
	s, err := ParseJobStatus("inProgress")
	require.NoError(t, err)
	assert.Equal(t, JobStatusInProgress, s)

	_, err = ParseJobStatus("paused")
	assert.Error(t, err)
}

func TestBookingStatusFor(t *testing.T) {
	assert.Equal(t, BookingStatusConfirmed, BookingStatusFor(JobStatusAccepted))
	assert.Equal(t, BookingStatusRejected, BookingStatusFor(JobStatusRejected))
	assert.Equal(t, BookingStatusInProgress, BookingStatusFor(JobStatusInProgress))
	assert.Equal(t, BookingStatusCompleted, BookingStatusFor(JobStatusCompleted))
	assert.Equal(t, BookingStatusCancelled, BookingStatusFor(JobStatusCancelled))
	assert.Equal(t, BookingStatusPending, BookingStatusFor(JobStatusPending))
}

func TestAvailabilityTemporarilyUnavailable(t *testing.T) {
	now := time.Now()
	a := &PartnerAvailability{}
	assert.False(t, a.TemporarilyUnavailable(now))

	future := now.Add(time.Hour)
	a.UnavailableUntil = &future
	assert.True(t, a.TemporarilyUnavailable(now))

	past := now.Add(-time.Hour)
	a.UnavailableUntil = &past
	assert.False(t, a.TemporarilyUnavailable(now))
}

func TestDefaultAvailability(t *testing.T) {
	a := DefaultAvailability("p1", time.Now())
	assert.True(t, a.IsAvailable)
	assert.False(t, a.IsOnline)
	require.Len(t, a.WorkingHours, 7)
	for _, day := range WeekDays {
		assert.Equal(t, []string{"09:00-17:00"}, a.WorkingHours[day])
	}
}
