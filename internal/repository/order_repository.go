package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// ロック待ちタイムアウト（=競合）。リトライ対象はこれだけ。
var ErrLockTimeout = errors.New("lock wait timeout")

// 管理者一覧用：注文＋顧客名
type AdminOrderRow struct {
	model.Order  `gorm:"embedded"`
	CustomerName string `json:"customer_name"`
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//行ロック付き取得。ロック待ちは5秒で打ち切ってErrLockTimeoutを返す。
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)

	//新しい順。注文が無ければ空スライス。
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//管理者用の注文一覧（顧客名付き・新しい順）
	ListAdmin(ctx context.Context) ([]AdminOrderRow, error)

	//無条件上書き。遷移チェックは呼び出し側の責任。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	//プロフィール表示用：直近の注文の配送先
	LatestShippingAddress(ctx context.Context, userID int64) (string, error)

	//ダッシュボード用
	Count(ctx context.Context) (int64, error)
	DeliveredRevenue(ctx context.Context) (float64, error)
}
