package model

import "time"

// ストア設定はid=1の1行だけを使う
type StoreSettings struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	StoreName    string `gorm:"type:varchar(255);not null" json:"store_name"`
	StoreEmail   string `gorm:"type:varchar(255)" json:"store_email"`
	StorePhone   string `gorm:"type:varchar(30)" json:"store_phone"`
	StoreAddress string `gorm:"type:varchar(255)" json:"store_address"`

	TaxRate               float64 `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	ShippingFee           float64 `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_fee"`
	FreeShippingThreshold float64 `gorm:"type:decimal(10,2);not null;default:0" json:"free_shipping_threshold"`

	MaintenanceMode    bool `gorm:"not null;default:false" json:"maintenance_mode"`
	AllowGuestCheckout bool `gorm:"not null;default:false" json:"allow_guest_checkout"`
	EnableSales        bool `gorm:"not null;default:true" json:"enable_sales"`

	Currency       string `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`
	CurrencySymbol string `gorm:"type:varchar(5);not null;default:'$'" json:"currency_symbol"`

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
