package service

import (
	"context"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

// NotificationService exposes a user's notification inbox.
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListByRecipient(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead marks the given notifications as read. IDs not owned by the user
// are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, ids []uint) error {
	return s.repo.MarkRead(ctx, userID, ids)
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}
