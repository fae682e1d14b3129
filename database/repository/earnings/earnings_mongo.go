package earningsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carenow/models"
)

// MongoEarningsRepo is the MongoDB implementation of EarningsRepository.
type MongoEarningsRepo struct {
	coll *mongo.Collection
}

func NewMongoEarningsRepo(db *mongo.Database) *MongoEarningsRepo {
	return &MongoEarningsRepo{coll: db.Collection("partner_earnings")}
}

// Get returns the earnings document, upserting the default-zero document
// atomically on first read.
func (r *MongoEarningsRepo) Get(ctx context.Context, partnerID string) (*models.PartnerEarnings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	defaults := models.DefaultEarnings(partnerID, time.Now())
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var earnings models.PartnerEarnings
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"partnerId": partnerID},
		bson.M{"$setOnInsert": defaults},
		opts,
	).Decode(&earnings)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earnings for partner %s: %w", partnerID, err)
	}
	return &earnings, nil
}

// Accrue applies models.PartnerEarnings.Accrue server-side as one atomic update
// pipeline, upserting the document if the partner has never earned before.
// Calendar days are evaluated in UTC on both sides of the comparison.
func (r *MongoEarningsRepo) Accrue(ctx context.Context, partnerID string, amount float64) (*models.PartnerEarnings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	todayStr := now.Format("2006-01-02")

	// True when lastUpdated falls on today's UTC calendar day. A missing
	// lastUpdated (fresh upsert) counts as today so the counters start at the
	// new value either way.
	sameDay := bson.M{"$eq": bson.A{
		bson.M{"$dateToString": bson.M{
			"format": "%Y-%m-%d",
			"date":   bson.M{"$ifNull": bson.A{"$lastUpdated", now}},
		}},
		todayStr,
	}}

	addTo := func(field string, delta interface{}) bson.M {
		return bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$" + field, 0}}, delta}}
	}
	keep := func(field string) bson.M {
		return bson.M{"$ifNull": bson.A{"$" + field, 0}}
	}

	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"partnerId":     partnerID,
			"totalEarnings": addTo("totalEarnings", amount),
			"totalJobs":     addTo("totalJobs", 1),
			"todayEarnings": bson.M{"$cond": bson.A{sameDay, addTo("todayEarnings", amount), amount}},
			"todayJobs":     bson.M{"$cond": bson.A{sameDay, addTo("todayJobs", 1), 1}},
			// Week/month windows are read but never accrued here; rollover rules
			// are pending product clarification (see EarningsService).
			"weekEarnings":    keep("weekEarnings"),
			"monthEarnings":   keep("monthEarnings"),
			"weekJobs":        keep("weekJobs"),
			"monthJobs":       keep("monthJobs"),
			"averageRating":   keep("averageRating"),
			"totalReviews":    keep("totalReviews"),
			"platformFeeRate": keep("platformFeeRate"),
			"lastUpdated":     now,
		}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var earnings models.PartnerEarnings
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"partnerId": partnerID}, pipeline, opts).Decode(&earnings)
	if err != nil {
		return nil, fmt.Errorf("failed to accrue earnings for partner %s: %w", partnerID, err)
	}
	return &earnings, nil
}

// Watch streams changes to the partner's earnings document.
func (r *MongoEarningsRepo) Watch(ctx context.Context, partnerID string) (<-chan models.PartnerEarnings, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"fullDocument.partnerId": partnerID}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open earnings change stream: %w", err)
	}

	out := make(chan models.PartnerEarnings)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				FullDocument models.PartnerEarnings `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}
			select {
			case out <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
