package model

import "time"

type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string  `gorm:"type:varchar(100);index" json:"category"`
	Size        string  `gorm:"type:varchar(50)" json:"size"`
	Color       string  `gorm:"type:varchar(50)" json:"color"`
	Stock       int64   `gorm:"not null;default:0" json:"stock"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"image_url"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
