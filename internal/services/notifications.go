package services

import (
	"context"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	log "github.com/sirupsen/logrus"
)

type ownerNotificationRepository interface {
	GetUnreadByOwner(ctx context.Context, ownerID int64) ([]models.MatchNotification, error)
	MarkRead(ctx context.Context, ownerID int64, ID int) (bool, error)
}

type Notifications struct {
	notifications ownerNotificationRepository
}

func NewNotifications(notifications ownerNotificationRepository) *Notifications {
	return &Notifications{notifications: notifications}
}

func (n *Notifications) Unread(ctx context.Context, ownerID int64) ([]models.MatchNotification, error) {
	notifications, err := n.notifications.GetUnreadByOwner(ctx, ownerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get unread notifications: %v", err)
		return nil, err
	}
	return notifications, nil
}

// MarkRead returns ErrNotificationNotFound for notifications of other owners
// as well as missing ones.
func (n *Notifications) MarkRead(ctx context.Context, ownerID int64, ID int) error {
	marked, err := n.notifications.MarkRead(ctx, ownerID, ID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to mark notification read: %v", err)
		return err
	}
	if !marked {
		return ErrNotificationNotFound
	}
	return nil
}
