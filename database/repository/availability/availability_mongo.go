package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carenow/models"
)

// MongoAvailabilityRepo is the MongoDB implementation of AvailabilityRepository.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

func NewMongoAvailabilityRepo(db *mongo.Database) *MongoAvailabilityRepo {
	return &MongoAvailabilityRepo{coll: db.Collection("partner_availability")}
}

// Get returns the availability document, upserting the default atomically on
// first read.
func (r *MongoAvailabilityRepo) Get(ctx context.Context, partnerID string) (*models.PartnerAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	defaults := models.DefaultAvailability(partnerID, time.Now())
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var availability models.PartnerAvailability
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"partnerId": partnerID},
		bson.M{"$setOnInsert": defaults},
		opts,
	).Decode(&availability)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for partner %s: %w", partnerID, err)
	}
	return &availability, nil
}

func (r *MongoAvailabilityRepo) update(ctx context.Context, partnerID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"partnerId": partnerID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update availability for partner %s: %w", partnerID, err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return fmt.Errorf("availability for partner %s not found", partnerID)
	}
	return nil
}

func (r *MongoAvailabilityRepo) UpdateAvailabilityStatus(ctx context.Context, partnerID string, isAvailable bool, reason string) error {
	set := bson.M{
		"partnerId":   partnerID,
		"isAvailable": isAvailable,
		"lastUpdated": time.Now(),
	}
	if reason != "" {
		set["unavailabilityReason"] = reason
	}
	return r.update(ctx, partnerID, bson.M{"$set": set})
}

func (r *MongoAvailabilityRepo) UpdateOnlineStatus(ctx context.Context, partnerID string, isOnline bool) error {
	now := time.Now()
	return r.update(ctx, partnerID, bson.M{"$set": bson.M{
		"partnerId":   partnerID,
		"isOnline":    isOnline,
		"lastSeen":    now,
		"lastUpdated": now,
	}})
}

// UpdateWorkingHours overwrites the weekly schedule. Slot semantics are
// validated by the availability service before this is called.
func (r *MongoAvailabilityRepo) UpdateWorkingHours(ctx context.Context, partnerID string, hours map[string][]string) error {
	return r.update(ctx, partnerID, bson.M{"$set": bson.M{
		"partnerId":    partnerID,
		"workingHours": hours,
		"lastUpdated":  time.Now(),
	}})
}

// BlockDates unions the given dates into blockedDates.
func (r *MongoAvailabilityRepo) BlockDates(ctx context.Context, partnerID string, dates []string) error {
	return r.update(ctx, partnerID, bson.M{
		"$addToSet": bson.M{"blockedDates": bson.M{"$each": dates}},
		"$set":      bson.M{"partnerId": partnerID, "lastUpdated": time.Now()},
	})
}

// UnblockDates removes the given dates from blockedDates.
func (r *MongoAvailabilityRepo) UnblockDates(ctx context.Context, partnerID string, dates []string) error {
	return r.update(ctx, partnerID, bson.M{
		"$pullAll": bson.M{"blockedDates": dates},
		"$set":     bson.M{"partnerId": partnerID, "lastUpdated": time.Now()},
	})
}

func (r *MongoAvailabilityRepo) SetTemporaryUnavailability(ctx context.Context, partnerID string, until time.Time, reason string) error {
	return r.update(ctx, partnerID, bson.M{"$set": bson.M{
		"partnerId":            partnerID,
		"isAvailable":          false,
		"unavailableUntil":     until,
		"unavailabilityReason": reason,
		"lastUpdated":          time.Now(),
	}})
}

// ClearTemporaryUnavailability resets the partner to available and drops the
// window and its reason, whether or not the window has passed.
func (r *MongoAvailabilityRepo) ClearTemporaryUnavailability(ctx context.Context, partnerID string) error {
	return r.update(ctx, partnerID, bson.M{
		"$set": bson.M{
			"partnerId":   partnerID,
			"isAvailable": true,
			"lastUpdated": time.Now(),
		},
		"$unset": bson.M{
			"unavailableUntil":     "",
			"unavailabilityReason": "",
		},
	})
}

// ExpiredUnavailability lists partner IDs whose temporary window has passed.
func (r *MongoAvailabilityRepo) ExpiredUnavailability(ctx context.Context, now time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"unavailableUntil": bson.M{"$lte": now}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"partnerId": 1}))
	if err != nil {
		return nil, fmt.Errorf("expired unavailability query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		PartnerID string `bson:"partnerId"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode expired unavailability docs: %w", err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.PartnerID
	}
	return ids, nil
}

// Watch streams changes to the partner's availability document.
func (r *MongoAvailabilityRepo) Watch(ctx context.Context, partnerID string) (<-chan models.PartnerAvailability, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"fullDocument.partnerId": partnerID}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open availability change stream: %w", err)
	}

	out := make(chan models.PartnerAvailability)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				FullDocument models.PartnerAvailability `bson:"fullDocument"`
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
