package jobRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carenow/models"
)

// transitionStampField maps a target status to the timestamp set exactly once
// on that transition.
func transitionStampField(to models.JobStatus) string {
	switch to {
	case models.JobStatusAccepted:
		return "acceptedAt"
	case models.JobStatusRejected:
		return "rejectedAt"
	case models.JobStatusInProgress:
		return "startedAt"
	case models.JobStatusCompleted:
		return "completedAt"
	case models.JobStatusCancelled:
		return "cancelledAt"
	default:
		return ""
	}
}

// transitionFilter builds the guarded update filter: the job must belong to the
// partner and sit in a status the state machine allows as a source for `to`.
func transitionFilter(partnerID, jobID string, to models.JobStatus) bson.M {
	return bson.M{
		"id":        jobID,
		"partnerId": partnerID,
		"status":    bson.M{"$in": models.TransitionSources(to)},
	}
}

// transitionUpdate builds the $set document for a transition at the given instant.
func transitionUpdate(to models.JobStatus, reason string, now time.Time) bson.M {
	set := bson.M{
		"status":                 to,
		"updatedAt":              now,
		transitionStampField(to): now,
	}
	if reason != "" {
		set["rejectionReason"] = reason
	}
	return bson.M{"$set": set}
}

// Transition updates the job and mirrors the linked booking status inside a
// single multi-document transaction, so the two documents can never diverge.
func (r *MongoJobRepo) Transition(ctx context.Context, partnerID, jobID string, to models.JobStatus, reason string) (*models.Job, error) {
	stamp := transitionStampField(to)
	if stamp == "" {
		return nil, fmt.Errorf("status %q is not a transition target", to)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.jobColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	var updated models.Job

	txnFn := func(sc mongo.SessionContext) error {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := r.jobColl.FindOneAndUpdate(
			sc,
			transitionFilter(partnerID, jobID, to),
			transitionUpdate(to, reason, now),
			opts,
		).Decode(&updated)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return r.classifyTransitionFailure(sc, partnerID, jobID, to)
			}
			return fmt.Errorf("job transition update failed: %w", err)
		}

		bookingUpdate := bson.M{"$set": bson.M{
			"status":    models.BookingStatusFor(to),
			"updatedAt": now,
		}}
		if _, err := r.bookingColl.UpdateOne(sc, bson.M{"id": updated.BookingID}, bookingUpdate); err != nil {
			return fmt.Errorf("booking status mirror failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, err
	}

	return &updated, nil
}

// classifyTransitionFailure distinguishes a missing job from an illegal
// transition so callers get a typed error instead of a bare no-match.
func (r *MongoJobRepo) classifyTransitionFailure(ctx context.Context, partnerID, jobID string, to models.JobStatus) error {
	var current models.Job
	err := r.jobColl.FindOne(ctx, bson.M{"id": jobID, "partnerId": partnerID}).Decode(&current)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to inspect job %s after rejected transition: %w", jobID, err)
	}
	return &models.InvalidTransitionError{From: current.Status, To: to}
}
