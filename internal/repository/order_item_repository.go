package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	//親注文と同じトランザクション内で一括作成する
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error)
}
