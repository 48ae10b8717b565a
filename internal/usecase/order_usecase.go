package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/logger"
	repo "app/internal/repository"
)

// 初回+リトライ3回
const cancelMaxAttempts = 4

type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	productRepo   repo.ProductRepository
	notifRepo     repo.NotificationRepository

	//リトライ間隔の基準値。テストで短縮できるように持つ。
	retryBackoff time.Duration
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
	notifRepo repo.NotificationRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		notifRepo:     notifRepo,
		retryBackoff:  500 * time.Millisecond,
	}
}

func (u *OrderUsecase) SetRetryBackoff(d time.Duration) {
	u.retryBackoff = d
}

type OrderItemInput struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Quantity    int64   `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

type ShippingInfoInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type CreateOrderInput struct {
	Items          []OrderItemInput  `json:"items"`
	TotalAmount    float64           `json:"total_amount"`
	ShippingAmount float64           `json:"shipping_amount"`
	TaxAmount      float64           `json:"tax_amount"`
	ShippingInfo   ShippingInfoInput `json:"shipping_info"`
	PaymentMethod  string            `json:"payment_method"`
}

// 注文＋明細のレスポンス
type OrderDetail struct {
	model.Order
	Items []model.OrderItem `json:"items"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	if len(in.Items) == 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "items are required")
	}
	if in.TotalAmount <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "total_amount is required")
	}
	if strings.TrimSpace(in.ShippingInfo.Address) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "shipping address is required")
	}
	if strings.TrimSpace(in.ShippingInfo.City) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "shipping city is required")
	}
	if strings.TrimSpace(in.ShippingInfo.ZipCode) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "shipping zip code is required")
	}

	//明細はDB書き込み前に全件検証する
	orderItems := make([]model.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: product_id is required", i+1))
		}
		if strings.TrimSpace(it.ProductName) == "" {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: product_name is required", i+1))
		}
		if it.Price <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: price is required", i+1))
		}
		if strings.TrimSpace(it.Size) == "" {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: size is required", i+1))
		}
		if it.Quantity <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: quantity is required", i+1))
		}

		pid := it.ProductID
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   &pid,
			ProductName: strings.TrimSpace(it.ProductName),
			Price:       it.Price,
			Size:        it.Size,
			Quantity:    it.Quantity,
			ImageURL:    it.ImageURL,
		})
	}

	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = "COD"
	}

	order := model.Order{
		UserID:          &userID,
		TotalAmount:     in.TotalAmount,
		ShippingAmount:  in.ShippingAmount,
		TaxAmount:       in.TaxAmount,
		ShippingAddress: flattenShippingInfo(in.ShippingInfo),
		OrderStatus:     model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentMethod:   paymentMethod,
	}

	var orderID int64

	//注文＋明細＋カート削除は1トランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, id, orderItems); err != nil {
			return err
		}
		//チェックアウト後のカートは空にする
		if err := r.CartItems().Clear(ctx, userID); err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("order create failed")
		return 0, NewHTTPError(http.StatusInternalServerError, "Failed to create order")
	}

	//通知はコミットの外。失敗しても注文は成功のまま。
	u.notify(ctx, userID, orderID, model.NotificationOrderConfirmed,
		fmt.Sprintf("Your order #%d has been placed successfully", orderID))

	return orderID, nil
}

// 配送先は注文時点の1本の文字列として固める
func flattenShippingInfo(s ShippingInfoInput) string {
	addr := fmt.Sprintf("%s %s, %s, %s, %s",
		strings.TrimSpace(s.FirstName),
		strings.TrimSpace(s.LastName),
		strings.TrimSpace(s.Address),
		strings.TrimSpace(s.City),
		strings.TrimSpace(s.ZipCode),
	)
	return fmt.Sprintf("%s. Phone: %s, Email: %s", addr, strings.TrimSpace(s.Phone), strings.TrimSpace(s.Email))
}

func (u *OrderUsecase) CancelOrder(ctx context.Context, orderID int64, requestingUserID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var cancelledUserID int64

	for attempt := 1; attempt <= cancelMaxAttempts; attempt++ {
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			if err != nil {
				//ロック待ちタイムアウトはそのまま上へ（リトライ判定に使う）
				return err
			}

			if order.UserID == nil || *order.UserID != requestingUserID {
				return NewHTTPError(http.StatusForbidden, "You are not allowed to cancel this order")
			}

			if order.OrderStatus != model.OrderStatusPending && order.OrderStatus != model.OrderStatusProcessing {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Order cannot be cancelled in its current status (%s)", order.OrderStatus))
			}

			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
				return err
			}
			//キャンセル済みの注文は支払いも失敗で確定させる
			if err := r.Orders().UpdatePaymentStatus(ctx, orderID, model.PaymentStatusFailed); err != nil {
				return err
			}

			cancelledUserID = *order.UserID
			return nil
		})

		if err == nil {
			//通知はコミット後。失敗してもキャンセルは成功扱い。
			u.notify(ctx, cancelledUserID, orderID, model.NotificationOrderCancelled,
				fmt.Sprintf("Your order #%d has been cancelled", orderID))
			return nil
		}

		//リトライするのはロック待ちタイムアウトだけ
		if errors.Is(err, repo.ErrLockTimeout) {
			if attempt < cancelMaxAttempts {
				logger.WithField("order_id", orderID).
					WithField("attempt", attempt).
					Warn("lock timeout on order cancel, retrying")
				time.Sleep(u.retryBackoff * time.Duration(attempt))
				continue
			}
			logger.WithField("order_id", orderID).Error("order cancel retries exhausted")
			return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order. Please try again.")
		}

		if _, ok := AsHTTPError(err); ok {
			return err
		}
		logger.WithError(err).WithField("order_id", orderID).Error("order cancel failed")
		return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order")
	}

	return NewHTTPError(http.StatusInternalServerError, "Failed to cancel order. Please try again.")
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64, requestingUserID int64, isAdmin bool) (OrderDetail, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetail{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}

	//他人の注文は存在ごと隠す
	if !isAdmin && (order.UserID == nil || *order.UserID != requestingUserID) {
		return OrderDetail{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}
	u.overrideLiveProductFields(ctx, items)

	return OrderDetail{Order: order, Items: items}, nil
}

func (u *OrderUsecase) ListUserOrders(ctx context.Context, userID int64) ([]OrderDetail, error) {
	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}
	if len(orders) == 0 {
		return []OrderDetail{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemsByOrder, err := u.orderItemRepo.ListByOrderIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	out := make([]OrderDetail, 0, len(orders))
	for _, o := range orders {
		items := itemsByOrder[o.ID]
		u.overrideLiveProductFields(ctx, items)
		out = append(out, OrderDetail{Order: o, Items: items})
	}
	return out, nil
}

// 明細の表示名と画像は現在の商品を優先する。
// 商品が消えていればスナップショットのまま。価格と数量は常にスナップショット。
func (u *OrderUsecase) overrideLiveProductFields(ctx context.Context, items []model.OrderItem) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it.ProductID != nil {
			ids = append(ids, *it.ProductID)
		}
	}
	if len(ids) == 0 {
		return
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		//表示の上書きに失敗してもスナップショットで返せる
		logger.WithError(err).Warn("live product lookup failed")
		return
	}

	for i := range items {
		if items[i].ProductID == nil {
			continue
		}
		p, ok := products[*items[i].ProductID]
		if !ok {
			continue
		}
		items[i].ProductName = p.Name
		if p.ImageURL != "" {
			items[i].ImageURL = p.ImageURL
		}
	}
}

// 通知作成。失敗はログだけ残して握りつぶす。
func (u *OrderUsecase) notify(ctx context.Context, userID int64, orderID int64, typ model.NotificationType, message string) {
	oid := orderID
	_, err := u.notifRepo.Create(ctx, model.Notification{
		UserID:  userID,
		OrderID: &oid,
		Type:    typ,
		Message: message,
	})
	if err != nil {
		logger.WithError(err).
			WithField("order_id", orderID).
			WithField("type", string(typ)).
			Error("notification create failed")
	}
}
