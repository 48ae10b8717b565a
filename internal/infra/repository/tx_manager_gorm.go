package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

// Tx境界の中で動くリポジトリ束。fnの中でだけ使ってよい。
type txReposGorm struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	cartItems  repo.CartItemRepository
}

func (t *txReposGorm) Orders() repo.OrderRepository         { return t.orders }
func (t *txReposGorm) OrderItems() repo.OrderItemRepository { return t.orderItems }
func (t *txReposGorm) Products() repo.ProductRepository     { return t.products }
func (t *txReposGorm) CartItems() repo.CartItemRepository   { return t.cartItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) repo.TransactionManager {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返したらロールバック、nilを返したらコミット。
func (m *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			products:   NewProductGormRepository(tx),
			cartItems:  NewCartItemGormRepository(tx),
		}
		return fn(txRepos)
	})
}
