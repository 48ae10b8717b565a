package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// 注文は物理削除しない（履歴はステータスだけが変わる）
type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//ユーザー削除時はSET NULLでnilになる
	UserID *int64 `gorm:"index" json:"user_id"`

	TotalAmount    float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingAmount float64 `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_amount"`
	TaxAmount      float64 `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`

	//配送先は注文時点の文字列として保存
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`

	OrderStatus   OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"order_status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod string        `gorm:"type:varchar(50);not null;default:'COD'" json:"payment_method"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func IsValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}
