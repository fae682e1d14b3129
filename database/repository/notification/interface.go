package notificationRepo

import (
	"context"

	"carenow/models"
)

// NotificationRepository stores in-app partner notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.PartnerNotification) error
	UnreadCount(ctx context.Context, partnerID string) (int64, error)
	Recent(ctx context.Context, partnerID string, limit int64) ([]models.PartnerNotification, error)
	MarkRead(ctx context.Context, partnerID, notificationID string) error
}
