package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type SettingsUsecase struct {
	settingsRepo repo.SettingsRepository
}

func NewSettingsUsecase(settingsRepo repo.SettingsRepository) *SettingsUsecase {
	return &SettingsUsecase{settingsRepo: settingsRepo}
}

func (u *SettingsUsecase) Get(ctx context.Context) (model.StoreSettings, error) {
	s, err := u.settingsRepo.Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return model.StoreSettings{}, NewHTTPError(http.StatusNotFound, "Settings not found")
	}
	if err != nil {
		return model.StoreSettings{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch settings")
	}
	return s, nil
}

func (u *SettingsUsecase) Update(ctx context.Context, s model.StoreSettings) (model.StoreSettings, error) {
	if strings.TrimSpace(s.StoreName) == "" {
		return model.StoreSettings{}, NewHTTPError(http.StatusBadRequest, "Store name is required")
	}
	if s.TaxRate < 0 || s.TaxRate > 100 {
		return model.StoreSettings{}, NewHTTPError(http.StatusBadRequest, "Tax rate must be between 0 and 100")
	}
	if s.ShippingFee < 0 || s.FreeShippingThreshold < 0 {
		return model.StoreSettings{}, NewHTTPError(http.StatusBadRequest, "Shipping amounts cannot be negative")
	}

	err := u.settingsRepo.Update(ctx, s)
	if errors.Is(err, repo.ErrNotFound) {
		return model.StoreSettings{}, NewHTTPError(http.StatusNotFound, "Settings not found")
	}
	if err != nil {
		return model.StoreSettings{}, NewHTTPError(http.StatusInternalServerError, "Failed to update settings")
	}
	return u.Get(ctx)
}
