package models

import "time"

// PartnerEarnings holds rolling income counters for a partner,
// keyed by partner ID (one document per partner).
type PartnerEarnings struct {
	PartnerID       string    `bson:"partnerId" json:"partnerId"`
	TotalEarnings   float64   `bson:"totalEarnings" json:"totalEarnings"`
	TodayEarnings   float64   `bson:"todayEarnings" json:"todayEarnings"`
	WeekEarnings    float64   `bson:"weekEarnings" json:"weekEarnings"`
	MonthEarnings   float64   `bson:"monthEarnings" json:"monthEarnings"`
	TotalJobs       int       `bson:"totalJobs" json:"totalJobs"`
	TodayJobs       int       `bson:"todayJobs" json:"todayJobs"`
	WeekJobs        int       `bson:"weekJobs" json:"weekJobs"`
	MonthJobs       int       `bson:"monthJobs" json:"monthJobs"`
	AverageRating   float64   `bson:"averageRating" json:"averageRating"`
	TotalReviews    int       `bson:"totalReviews" json:"totalReviews"`
	PlatformFeeRate float64   `bson:"platformFeeRate" json:"platformFeeRate"`
	LastUpdated     time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// DefaultEarnings is the zero-counter document created on first read.
func DefaultEarnings(partnerID string, now time.Time) PartnerEarnings {
	return PartnerEarnings{
		PartnerID:   partnerID,
		LastUpdated: now,
	}
}

// SameCalendarDay compares the (year, month, day) of two instants in UTC.
// The Mongo accrual pipeline evaluates $dateToString in UTC as well, so the
// day boundary is identical no matter which wall clock produced the inputs.
// Partner-local day windows are a product question, not handled here.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Accrue returns the counters after recording one completed job worth amount.
// Totals always accumulate. Today-counters accumulate when LastUpdated falls on
// the same calendar day as now, and reset to the single new value otherwise.
// Week/month counters are intentionally untouched: accrual for those windows is
// unsupported until the rollover rules are settled (see EarningsService).
//
// This function defines the accrual semantics; the Mongo datasource applies the
// same arithmetic server-side in a single atomic update.
func (e PartnerEarnings) Accrue(amount float64, now time.Time) PartnerEarnings {
	e.TotalEarnings += amount
	e.TotalJobs++
	if SameCalendarDay(e.LastUpdated, now) {
		e.TodayEarnings += amount
		e.TodayJobs++
	} else {
		e.TodayEarnings = amount
		e.TodayJobs = 1
	}
	e.LastUpdated = now
	return e
}
