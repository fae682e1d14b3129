package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"carenow/models"
	"carenow/services/notification"
)

const TypeJobOfferPush = "job:offer_push"

// OfferQueue enqueues job-offer pushes onto the asynq queue for asynchronous
// delivery with retries.
type OfferQueue struct {
	client *asynq.Client
}

func NewOfferQueue(redisOpts asynq.RedisClientOpt) *OfferQueue {
	return &OfferQueue{client: asynq.NewClient(redisOpts)}
}

func (q *OfferQueue) EnqueueOfferPush(ctx context.Context, payload models.OfferPushPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal offer push payload: %w", err)
	}
	task := asynq.NewTask(TypeJobOfferPush, data, asynq.MaxRetry(5))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue offer push: %w", err)
	}
	return nil
}

func (q *OfferQueue) Close() error {
	return q.client.Close()
}

// OfferWorker consumes offer-push tasks and delivers them through the
// notification service.
type OfferWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewOfferWorker(redisOpts asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *OfferWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeJobOfferPush, handleOfferPush(notifSvc, logger))

	return &OfferWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background.
func (w *OfferWorker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start offer worker: %w", err)
	}
	w.logger.Info("offer push worker started")
	return nil
}

// Shutdown waits for in-flight tasks to finish.
func (w *OfferWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleOfferPush(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.OfferPushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid offer push payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %w", err)
		}

		if err := notifSvc.NotifyPartner(ctx, p.PartnerID, p.JobID, p.Title, p.Body); err != nil {
			logger.Warn("offer push delivery failed",
				zap.String("partnerId", p.PartnerID),
				zap.String("jobId", p.JobID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
