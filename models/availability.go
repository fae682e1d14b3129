package models

import "time"

// PartnerAvailability tracks whether a partner can receive new jobs,
// keyed by partner ID (one document per partner).
type PartnerAvailability struct {
	PartnerID            string              `bson:"partnerId" json:"partnerId"`
	IsAvailable          bool                `bson:"isAvailable" json:"isAvailable"`
	IsOnline             bool                `bson:"isOnline" json:"isOnline"`
	WorkingHours         map[string][]string `bson:"workingHours" json:"workingHours"` // day name -> ordered "HH:MM-HH:MM" slots
	BlockedDates         []string            `bson:"blockedDates" json:"blockedDates"` // "YYYY-MM-DD"
	UnavailableUntil     *time.Time          `bson:"unavailableUntil,omitempty" json:"unavailableUntil,omitempty"`
	UnavailabilityReason string              `bson:"unavailabilityReason,omitempty" json:"unavailabilityReason,omitempty"`
	LastSeen             *time.Time          `bson:"lastSeen,omitempty" json:"lastSeen,omitempty"`
	LastUpdated          time.Time           `bson:"lastUpdated" json:"lastUpdated"`
}

// WeekDays lists valid working-hours day names, Monday first.
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DefaultAvailability is the document synthesized on first read for a partner:
// available, offline, 09:00-17:00 every day.
func DefaultAvailability(partnerID string, now time.Time) PartnerAvailability {
	hours := make(map[string][]string, len(WeekDays))
	for _, day := range WeekDays {
		hours[day] = []string{"09:00-17:00"}
	}
	return PartnerAvailability{
		PartnerID:    partnerID,
		IsAvailable:  true,
		WorkingHours: hours,
		BlockedDates: []string{},
		LastUpdated:  now,
	}
}

// TemporarilyUnavailable reports whether a temporary-unavailability window is
// set and still in the future at the given instant.
func (a *PartnerAvailability) TemporarilyUnavailable(now time.Time) bool {
	return a.UnavailableUntil != nil && a.UnavailableUntil.After(now)
}
