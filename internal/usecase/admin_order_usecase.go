package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/logger"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	productRepo   repo.ProductRepository
	userRepo      repo.UserRepository
	notifRepo     repo.NotificationRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	notifRepo repo.NotificationRepository,
	auditRepo repo.AuditLogRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		notifRepo:     notifRepo,
		auditRepo:     auditRepo,
	}
}

func (u *AdminOrderUsecase) List(ctx context.Context) ([]repo.AdminOrderRow, error) {
	rows, err := u.orderRepo.ListAdmin(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}
	return rows, nil
}

func (u *AdminOrderUsecase) GetDetail(ctx context.Context, orderID int64) (OrderDetail, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetail{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}
	return OrderDetail{Order: order, Items: items}, nil
}

// ステータスの遷移チェックはしない（enumの値チェックのみ）。
// pendingからdeliveredへの飛び越しも許す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminUserID int64, orderID int64, status string) error {
	if !model.IsValidOrderStatus(status) {
		return NewHTTPError(http.StatusBadRequest, "Invalid order status")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}

	newStatus := model.OrderStatus(status)
	if err := u.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Failed to update order status")
	}

	u.audit(ctx, adminUserID, model.AuditActionUpdateOrderStatus, orderID,
		fmt.Sprintf(`{"order_status":%q}`, order.OrderStatus),
		fmt.Sprintf(`{"order_status":%q}`, newStatus))

	if order.UserID != nil {
		u.notifyOwner(ctx, *order.UserID, orderID, model.NotificationOrderStatus,
			fmt.Sprintf("Your order #%d status has been updated to %s", orderID, newStatus))
	}
	return nil
}

// キャンセル済みの注文はリクエスト値に関わらずfailedで保存する。
// ロック下で現在のorder_statusを見てから決める。
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, adminUserID int64, orderID int64, status string) error {
	if !model.IsValidPaymentStatus(status) {
		return NewHTTPError(http.StatusBadRequest, "Invalid payment status")
	}

	requested := model.PaymentStatus(status)
	var before model.PaymentStatus
	var applied model.PaymentStatus
	var ownerID *int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return err
		}

		applied = requested
		if order.OrderStatus == model.OrderStatusCancelled {
			applied = model.PaymentStatusFailed
		}
		before = order.PaymentStatus
		ownerID = order.UserID

		return r.Orders().UpdatePaymentStatus(ctx, orderID, applied)
	})
	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return he
		}
		logger.WithError(err).WithField("order_id", orderID).Error("payment status update failed")
		return NewHTTPError(http.StatusInternalServerError, "Failed to update payment status")
	}

	u.audit(ctx, adminUserID, model.AuditActionUpdatePaymentStatus, orderID,
		fmt.Sprintf(`{"payment_status":%q}`, before),
		fmt.Sprintf(`{"payment_status":%q,"requested":%q}`, applied, requested))

	if ownerID != nil {
		u.notifyOwner(ctx, *ownerID, orderID, model.NotificationPaymentStatus,
			fmt.Sprintf("Payment status for order #%d is now %s", orderID, applied))
	}
	return nil
}

type DashboardStats struct {
	TotalProducts    int64   `json:"total_products"`
	TotalOrders      int64   `json:"total_orders"`
	TotalCustomers   int64   `json:"total_customers"`
	DeliveredRevenue float64 `json:"delivered_revenue"`
}

func (u *AdminOrderUsecase) Stats(ctx context.Context) (DashboardStats, error) {
	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch stats")
	}
	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch stats")
	}
	customers, err := u.userRepo.CountCustomers(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch stats")
	}
	revenue, err := u.orderRepo.DeliveredRevenue(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch stats")
	}

	return DashboardStats{
		TotalProducts:    products,
		TotalOrders:      orders,
		TotalCustomers:   customers,
		DeliveredRevenue: revenue,
	}, nil
}

// 監査ログを作成（誰が・何を・どの対象に・どう変えたか）
// 失敗しても本体の更新は取り消さない。
func (u *AdminOrderUsecase) audit(ctx context.Context, adminUserID int64, action model.AuditAction, orderID int64, beforeJSON, afterJSON string) {
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		logger.WithError(err).WithField("order_id", orderID).Error("audit log create failed")
	}
}

func (u *AdminOrderUsecase) notifyOwner(ctx context.Context, userID int64, orderID int64, typ model.NotificationType, message string) {
	oid := orderID
	if _, err := u.notifRepo.Create(ctx, model.Notification{
		UserID:  userID,
		OrderID: &oid,
		Type:    typ,
		Message: message,
	}); err != nil {
		logger.WithError(err).WithField("order_id", orderID).Error("notification create failed")
	}
}
