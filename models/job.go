package models

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle status of a partner job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusAccepted   JobStatus = "accepted"
	JobStatusRejected   JobStatus = "rejected"
	JobStatusInProgress JobStatus = "inProgress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// allowedTransitions is the single source of truth for the job state machine.
// pending -> accepted | rejected | cancelled
// accepted -> inProgress | cancelled
// inProgress -> completed | cancelled
var allowedTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:    {JobStatusAccepted, JobStatusRejected, JobStatusCancelled},
	JobStatusAccepted:   {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCancelled},
	JobStatusRejected:   {},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// InvalidTransitionError reports an attempted transition the state machine forbids.
type InvalidTransitionError struct {
	From JobStatus
	To   JobStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid job transition from %q to %q", e.From, e.To)
}

// ValidateTransition rejects illegal job status transitions with a typed error.
// Every mutating path goes through this check.
func ValidateTransition(from, to JobStatus) error {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

// TransitionSources returns the statuses from which a transition to the given
// status is legal. Used by the datasource layer to build guarded update filters.
func TransitionSources(to JobStatus) []JobStatus {
	var sources []JobStatus
	for from, targets := range allowedTransitions {
		for _, t := range targets {
			if t == to {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// IsTerminal reports whether no further transitions are possible.
func (s JobStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// ParseJobStatus validates a raw status string.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(raw)
	if _, ok := allowedTransitions[s]; !ok {
		return "", fmt.Errorf("unknown job status %q", raw)
	}
	return s, nil
}

// JobPriority indicates how urgently a job should be handled.
type JobPriority string

const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityNormal JobPriority = "normal"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

// Job represents a booking assigned to a partner and its fulfillment status.
// The job ID equals the booking ID it was created from.
type Job struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"bookingId" json:"bookingId"`
	PartnerID string `bson:"partnerId" json:"partnerId"`
	UserID    string `bson:"userId" json:"userId"`

	ClientName          string  `bson:"clientName" json:"clientName"`
	ClientPhone         string  `bson:"clientPhone" json:"clientPhone"`
	ServiceID           string  `bson:"serviceId" json:"serviceId"`
	ServiceName         string  `bson:"serviceName" json:"serviceName"`
	ScheduledDate       string  `bson:"scheduledDate" json:"scheduledDate"` // "YYYY-MM-DD"
	TimeSlot            string  `bson:"timeSlot" json:"timeSlot"`           // "HH:MM-HH:MM"
	Hours               float64 `bson:"hours" json:"hours"`
	TotalPrice          float64 `bson:"totalPrice" json:"totalPrice"`
	PartnerEarnings     float64 `bson:"partnerEarnings" json:"partnerEarnings"` // partner's share of TotalPrice
	ClientAddress       string  `bson:"clientAddress" json:"clientAddress"`
	Latitude            float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude           float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	SpecialInstructions string  `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`

	Status          JobStatus   `bson:"status" json:"status"`
	Priority        JobPriority `bson:"priority" json:"priority"`
	IsUrgent        bool        `bson:"isUrgent" json:"isUrgent"`
	RejectionReason string      `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	AcceptedAt  *time.Time `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	StartedAt   *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// Guard predicates exposed to callers so the UI can enable/disable actions.

func (j *Job) CanBeAccepted() bool  { return ValidateTransition(j.Status, JobStatusAccepted) == nil }
func (j *Job) CanBeRejected() bool  { return ValidateTransition(j.Status, JobStatusRejected) == nil }
func (j *Job) CanBeStarted() bool   { return ValidateTransition(j.Status, JobStatusInProgress) == nil }
func (j *Job) CanBeCompleted() bool { return ValidateTransition(j.Status, JobStatusCompleted) == nil }
func (j *Job) CanBeCancelled() bool { return ValidateTransition(j.Status, JobStatusCancelled) == nil }

// IsActive reports whether the job occupies the partner right now.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusAccepted || j.Status == JobStatusInProgress
}
