// Package notification sends FCM pushes and records in-app partner notifications.
package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	notificationRepo "carenow/database/repository/notification"
	"carenow/models"
)

// NotificationService defines methods for sending pushes around job lifecycle
// events. Clients and partners subscribe to their per-identity FCM topics.
type NotificationService interface {
	// NotifyClient pushes to the booking client's topic. Best-effort: callers
	// log failures but do not fail the triggering operation.
	NotifyClient(ctx context.Context, userID, title, body string, data map[string]string) error

	// NotifyPartner stores an in-app notification row and pushes to the
	// partner's topic.
	NotifyPartner(ctx context.Context, partnerID, jobID, title, body string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	FCM    *messaging.Client
	Repo   notificationRepo.NotificationRepository
	Logger *zap.Logger
}

func clientTopic(userID string) string     { return "user-" + userID }
func partnerTopic(partnerID string) string { return "partner-" + partnerID }

func (s *DefaultNotificationService) NotifyClient(ctx context.Context, userID, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: clientTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.FCM.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to push to client %s: %w", userID, err)
	}
	return nil
}

func (s *DefaultNotificationService) NotifyPartner(ctx context.Context, partnerID, jobID, title, body string) error {
	row := &models.PartnerNotification{
		PartnerID: partnerID,
		JobID:     jobID,
		Title:     title,
		Body:      body,
	}
	if err := s.Repo.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to store partner notification: %w", err)
	}

	msg := &messaging.Message{
		Topic: partnerTopic(partnerID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{"jobId": jobID},
	}
	if _, err := s.FCM.Send(ctx, msg); err != nil {
		// The in-app row exists; the push is best-effort on top of it.
		s.Logger.Warn("partner push failed",
			zap.String("partnerId", partnerID), zap.Error(err))
	}
	return nil
}
