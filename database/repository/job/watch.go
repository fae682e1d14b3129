package jobRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carenow/models"
)

// Watch opens a change stream scoped to the partner's jobs and pumps full
// documents onto the returned channel. The channel closes when ctx is
// cancelled or the stream ends; callers resubscribe by calling Watch again.
func (r *MongoJobRepo) Watch(ctx context.Context, partnerID string) (<-chan models.Job, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"fullDocument.partnerId": partnerID,
			"operationType":          bson.M{"$in": []string{"insert", "update", "replace"}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.jobColl.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open job change stream: %w", err)
	}

	out := make(chan models.Job)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				FullDocument models.Job `bson:"fullDocument"`
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
