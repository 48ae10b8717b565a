package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)

	// 同一の(user, product, size)はプラス
	Upsert(ctx context.Context, item model.CartItem) error

	//qtyそのものを設定する（0以下はRemoveを使う）
	UpdateQuantity(ctx context.Context, userID int64, productID int64, size string, qty int64) error
	Remove(ctx context.Context, userID int64, productID int64, size string) error
	Clear(ctx context.Context, userID int64) error
}
