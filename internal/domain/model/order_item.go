package model

import "time"

// 注文明細
// 商品名・価格・画像は注文時点のスナップショット。
// あとで商品が変わっても明細は変わらない。
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	//商品削除時はSET NULL（表示はスナップショットで生き残る）
	ProductID *int64 `gorm:"index" json:"product_id"`

	ProductName string  `gorm:"type:varchar(255);not null" json:"product_name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Size        string  `gorm:"type:varchar(10)" json:"size"`
	Quantity    int64   `gorm:"not null" json:"quantity"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"image_url"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
