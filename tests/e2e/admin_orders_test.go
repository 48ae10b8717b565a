package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func TestAdminOrders_PaymentStatusForcedFailedOnCancelled(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminToken := adminLogin(t, c, ctx)

	//一般ユーザーで注文してキャンセルする
	user := registerNewUser(t, c, ctx)
	orderID := placeOrder(t, c, ctx, user.Token)

	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/orders/"+toStr(orderID)+"/cancel", user.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	//adminがpaidをリクエストしてもfailedのまま
	b, _ := json.Marshal(statusUpdateRequest{Status: "paid"})
	resp, body = c.doJSON(ctx, t, http.MethodPut, "/api/admin/orders/"+toStr(orderID)+"/payment", adminToken, b)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/admin/orders/"+toStr(orderID), adminToken, nil)
	requireStatus(t, resp, http.StatusOK, body)
	order := mustDecodeOrder(t, body)
	if order.PaymentStatus != "failed" {
		t.Fatalf("payment_status=%q want failed", order.PaymentStatus)
	}
}

func TestAdminOrders_UpdateStatus(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminToken := adminLogin(t, c, ctx)

	user := registerNewUser(t, c, ctx)
	orderID := placeOrder(t, c, ctx, user.Token)

	b, _ := json.Marshal(statusUpdateRequest{Status: "shipped"})
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/admin/orders/"+toStr(orderID)+"/status", adminToken, b)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/admin/orders/"+toStr(orderID), adminToken, nil)
	requireStatus(t, resp, http.StatusOK, body)
	order := mustDecodeOrder(t, body)
	if order.OrderStatus != "shipped" {
		t.Fatalf("order_status=%q want shipped", order.OrderStatus)
	}
}

func TestAdminOrders_InvalidStatusRejected(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminToken := adminLogin(t, c, ctx)

	user := registerNewUser(t, c, ctx)
	orderID := placeOrder(t, c, ctx, user.Token)

	b, _ := json.Marshal(statusUpdateRequest{Status: "teleported"})
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/admin/orders/"+toStr(orderID)+"/status", adminToken, b)
	requireStatus(t, resp, http.StatusBadRequest, body)
}

func TestAdminOrders_CustomerCannotUseAdminRoutes(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user := registerNewUser(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/admin/orders", user.Token, nil)
	requireStatus(t, resp, http.StatusForbidden, body)
}

func TestAdminOrders_Stats(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminToken := adminLogin(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var stats struct {
		TotalProducts  int64 `json:"total_products"`
		TotalOrders    int64 `json:"total_orders"`
		TotalCustomers int64 `json:"total_customers"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("json.Unmarshal(stats) failed: %v body=%s", err, string(body))
	}
	if stats.TotalOrders < 0 || stats.TotalCustomers < 0 {
		t.Fatalf("negative counters: %+v", stats)
	}
}
