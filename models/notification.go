package models

import "time"

// PartnerNotification is an in-app notification row for a partner. The unread
// count feeds the dashboard.
type PartnerNotification struct {
	ID        string    `bson:"id" json:"id"`
	PartnerID string    `bson:"partnerId" json:"partnerId"`
	JobID     string    `bson:"jobId,omitempty" json:"jobId,omitempty"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// OfferPushPayload is the asynq task payload for a "new job offer" push.
type OfferPushPayload struct {
	PartnerID string `json:"partnerId"`
	JobID     string `json:"jobId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
