package repository

import (
	"context"

	"app/internal/domain/model"
)

// 通知はトランザクションの外で作る（失敗しても注文は巻き戻さない）
type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) (int64, error)
	ListUnreadByUserID(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, notificationID int64) error
}
