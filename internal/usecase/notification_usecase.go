package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type NotificationUsecase struct {
	notifRepo repo.NotificationRepository
}

func NewNotificationUsecase(notifRepo repo.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notifRepo: notifRepo}
}

// 未読だけ新しい順で返す
func (u *NotificationUsecase) ListUnread(ctx context.Context, userID int64) ([]model.Notification, error) {
	items, err := u.notifRepo.ListUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}
	return items, nil
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, notificationID int64) error {
	err := u.notifRepo.MarkRead(ctx, notificationID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Notification not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to update notification")
	}
	return nil
}

func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID int64) error {
	if err := u.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to update notifications")
	}
	return nil
}

func (u *NotificationUsecase) Delete(ctx context.Context, notificationID int64) error {
	err := u.notifRepo.Delete(ctx, notificationID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Notification not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to delete notification")
	}
	return nil
}
