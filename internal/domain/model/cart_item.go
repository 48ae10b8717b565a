package model

import "time"

// カート明細
// (user_id, product_id, size) で1行。同じ組み合わせの追加は数量を加算する。
// 価格・商品名・画像は追加時点のスナップショット。
type CartItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_cart_user_product_size" json:"user_id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_user_product_size" json:"product_id"`

	ProductName string  `gorm:"type:varchar(255);not null" json:"product_name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Size        string  `gorm:"type:varchar(10);uniqueIndex:idx_cart_user_product_size" json:"size"`
	Quantity    int64   `gorm:"not null" json:"quantity"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"image_url"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
