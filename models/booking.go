package models

import "time"

// Booking is the client-facing record of a requested appointment. Its status is
// mirrored from the partner job inside the same transaction on every transition.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	PartnerID   string    `bson:"partnerId,omitempty" json:"partnerId,omitempty"`
	ServiceID   string    `bson:"serviceId" json:"serviceId"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	TimeSlot    string    `bson:"timeSlot" json:"timeSlot"`
	Hours       float64   `bson:"hours" json:"hours"`
	TotalPrice  float64   `bson:"totalPrice" json:"totalPrice"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Booking statuses mirrored from job transitions.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusRejected   = "rejected"
	BookingStatusInProgress = "inProgress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// BookingStatusFor maps a job status to the booking status mirrored alongside it.
func BookingStatusFor(s JobStatus) string {
	switch s {
	case JobStatusAccepted:
		return BookingStatusConfirmed
	case JobStatusRejected:
		return BookingStatusRejected
	case JobStatusInProgress:
		return BookingStatusInProgress
	case JobStatusCompleted:
		return BookingStatusCompleted
	case JobStatusCancelled:
		return BookingStatusCancelled
	default:
		return BookingStatusPending
	}
}
