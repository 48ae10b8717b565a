package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// 設定行のID（常に1）
const settingsRowID = 1

type SettingsGormRepository struct {
	db *gorm.DB
}

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

func (r *SettingsGormRepository) Get(ctx context.Context) (model.StoreSettings, error) {
	var s model.StoreSettings
	err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StoreSettings{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StoreSettings{}, err
	}
	return s, nil
}

func (r *SettingsGormRepository) Update(ctx context.Context, s model.StoreSettings) error {
	res := r.db.WithContext(ctx).Model(&model.StoreSettings{}).
		Where("id = ?", settingsRowID).
		Updates(map[string]interface{}{
			"store_name":              s.StoreName,
			"store_email":             s.StoreEmail,
			"store_phone":             s.StorePhone,
			"store_address":           s.StoreAddress,
			"tax_rate":                s.TaxRate,
			"shipping_fee":            s.ShippingFee,
			"free_shipping_threshold": s.FreeShippingThreshold,
			"maintenance_mode":        s.MaintenanceMode,
			"allow_guest_checkout":    s.AllowGuestCheckout,
			"enable_sales":            s.EnableSales,
			"currency":                s.Currency,
			"currency_symbol":         s.CurrencySymbol,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
