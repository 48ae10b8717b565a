package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CartUsecase struct {
	cartRepo    repo.CartItemRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartItemRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

func (u *CartUsecase) List(ctx context.Context, userID int64) ([]model.CartItem, error) {
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch cart")
	}
	return items, nil
}

type AddCartItemInput struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

// 商品名・価格・画像は追加時点の商品からスナップショットする。
// 同じ(product, size)が既にあれば数量を足す。
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartItemInput) error {
	if in.ProductID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	if strings.TrimSpace(in.Size) == "" {
		return NewHTTPError(http.StatusBadRequest, "size is required")
	}
	if in.Quantity <= 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add to cart")
	}

	item := model.CartItem{
		UserID:      userID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Size:        in.Size,
		Quantity:    in.Quantity,
		ImageURL:    p.ImageURL,
	}
	if err := u.cartRepo.Upsert(ctx, item); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to add to cart")
	}
	return nil
}

// 数量0以下は行ごと削除
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, productID int64, size string, qty int64) error {
	if productID <= 0 || strings.TrimSpace(size) == "" {
		return NewHTTPError(http.StatusBadRequest, "product_id and size are required")
	}

	if qty <= 0 {
		if err := u.cartRepo.Remove(ctx, userID, productID, size); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to update cart")
		}
		return nil
	}

	err := u.cartRepo.UpdateQuantity(ctx, userID, productID, size, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to update cart")
	}
	return nil
}

func (u *CartUsecase) Remove(ctx context.Context, userID int64, productID int64, size string) error {
	if err := u.cartRepo.Remove(ctx, userID, productID, size); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to remove cart item")
	}
	return nil
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to clear cart")
	}
	return nil
}
