package model

import "time"

type NotificationType string

const (
	NotificationOrderStatus    NotificationType = "order_status"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationOrderConfirmed NotificationType = "order_confirmed"
	NotificationPaymentStatus  NotificationType = "payment_status"
)

// 通知は注文処理の副作用。
// 作成に失敗しても注文自体には影響させない。
type Notification struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64  `gorm:"not null;index" json:"user_id"`
	OrderID *int64 `gorm:"index" json:"order_id"`

	Type    NotificationType `gorm:"type:varchar(30);not null;index" json:"type"`
	Message string           `gorm:"type:text;not null" json:"message"`

	IsRead bool `gorm:"not null;default:false;index" json:"is_read"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
