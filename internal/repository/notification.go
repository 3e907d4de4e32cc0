package repository

import (
	"context"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID uint, ids []uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListByRecipient(
	ctx context.Context,
	recipientID uint,
	unreadOnly bool,
	limit, offset int,
) ([]models.Notification, error) {
	query := r.db.WithContext(ctx).
		Preload("Actor").
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("unread = TRUE")
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips the given notifications to read, scoped to the recipient so
// users cannot touch each other's notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, recipientID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND id IN ?", recipientID, ids).
		Update("unread", false).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND unread = TRUE", recipientID).
		Update("unread", false).Error
}
