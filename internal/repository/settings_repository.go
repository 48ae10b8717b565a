package repository

import (
	"context"

	"app/internal/domain/model"
)

// ストア設定はid=1の1行だけ
type SettingsRepository interface {
	Get(ctx context.Context) (model.StoreSettings, error)
	Update(ctx context.Context, s model.StoreSettings) error
}
