package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"
)

type OrderItemRequest struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Quantity    int64   `json:"quantity"`
}

type ShippingInfoRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type OrderCreateRequest struct {
	Items        []OrderItemRequest  `json:"items"`
	TotalAmount  float64             `json:"total_amount"`
	ShippingInfo ShippingInfoRequest `json:"shipping_info"`
}

type OrderCreateResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

type OrderItemDTO struct {
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Quantity    int64   `json:"quantity"`
}

type OrderDTO struct {
	ID            int64          `json:"id"`
	OrderStatus   string         `json:"order_status"`
	PaymentStatus string         `json:"payment_status"`
	TotalAmount   float64        `json:"total_amount"`
	Items         []OrderItemDTO `json:"items"`
}

func validOrderRequest() OrderCreateRequest {
	return OrderCreateRequest{
		Items: []OrderItemRequest{
			{ProductID: 7, ProductName: "Tee", Price: 500, Size: "M", Quantity: 2},
		},
		TotalAmount: 1000,
		ShippingInfo: ShippingInfoRequest{
			FirstName: "Test",
			LastName:  "User",
			Address:   "1-2-3 Ginza",
			City:      "Tokyo",
			ZipCode:   "104-0061",
		},
	}
}

func placeOrder(t *testing.T, c *TestClient, ctx context.Context, token string) int64 {
	t.Helper()

	b, err := json.Marshal(validOrderRequest())
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/orders", token, b)
	requireStatus(t, resp, http.StatusCreated, body)

	var out OrderCreateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("json.Unmarshal(OrderCreateResponse) failed: %v body=%s", err, string(body))
	}
	if out.OrderID <= 0 {
		t.Fatalf("order_id missing: body=%s", string(body))
	}
	return out.OrderID
}

func mustDecodeOrder(t *testing.T, body []byte) OrderDTO {
	t.Helper()
	var v OrderDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(OrderDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func TestOrders_CreateAndFetch(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := registerNewUser(t, c, ctx)
	orderID := placeOrder(t, c, ctx, auth.Token)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/orders/"+toStr(orderID), auth.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	order := mustDecodeOrder(t, body)
	if order.OrderStatus != "pending" {
		t.Fatalf("order_status=%q want pending", order.OrderStatus)
	}
	if order.PaymentStatus != "pending" {
		t.Fatalf("payment_status=%q want pending", order.PaymentStatus)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
}

func TestOrders_CreateValidation_MissingItems(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := registerNewUser(t, c, ctx)

	req := validOrderRequest()
	req.Items = nil
	b, _ := json.Marshal(req)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/orders", auth.Token, b)
	requireStatus(t, resp, http.StatusBadRequest, body)

	e := mustDecodeError(t, body)
	if !strings.Contains(e.Error, "items") {
		t.Fatalf("error=%q want mentions items", e.Error)
	}
}

func TestOrders_CancelFlow(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := registerNewUser(t, c, ctx)
	orderID := placeOrder(t, c, ctx, auth.Token)

	//1回目のキャンセルは成功
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/orders/"+toStr(orderID)+"/cancel", auth.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	//キャンセル後はcancelled/failedで固定
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/orders/"+toStr(orderID), auth.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	order := mustDecodeOrder(t, body)
	if order.OrderStatus != "cancelled" {
		t.Fatalf("order_status=%q want cancelled", order.OrderStatus)
	}
	if order.PaymentStatus != "failed" {
		t.Fatalf("payment_status=%q want failed", order.PaymentStatus)
	}

	//2回目のキャンセルは黙って成功しない
	resp, body = c.doJSON(ctx, t, http.MethodPut, "/api/orders/"+toStr(orderID)+"/cancel", auth.Token, nil)
	requireStatus(t, resp, http.StatusBadRequest, body)
	e := mustDecodeError(t, body)
	if !strings.Contains(e.Error, "cannot be cancelled") {
		t.Fatalf("error=%q want cannot be cancelled", e.Error)
	}
}

func TestOrders_CancelSomeoneElsesOrder_Forbidden(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := registerNewUser(t, c, ctx)
	orderID := placeOrder(t, c, ctx, owner.Token)

	other := registerNewUser(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/orders/"+toStr(orderID)+"/cancel", other.Token, nil)
	requireStatus(t, resp, http.StatusForbidden, body)

	//所有者から見ると注文は無傷
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/orders/"+toStr(orderID), owner.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	order := mustDecodeOrder(t, body)
	if order.OrderStatus != "pending" {
		t.Fatalf("order_status=%q want pending", order.OrderStatus)
	}
}

func TestOrders_CancelMissingOrder_NotFound(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := registerNewUser(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodPut, "/api/orders/999999999/cancel", auth.Token, nil)
	requireStatus(t, resp, http.StatusNotFound, body)
}

func TestOrders_ListMine_NewestFirst(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := registerNewUser(t, c, ctx)
	first := placeOrder(t, c, ctx, auth.Token)
	second := placeOrder(t, c, ctx, auth.Token)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/orders", auth.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var orders []OrderDTO
	if err := json.Unmarshal(body, &orders); err != nil {
		t.Fatalf("json.Unmarshal([]OrderDTO) failed: %v body=%s", err, string(body))
	}
	if len(orders) != 2 {
		t.Fatalf("len(orders)=%d want 2", len(orders))
	}
	if orders[0].ID != second || orders[1].ID != first {
		t.Fatalf("orders not newest-first: got %d,%d want %d,%d", orders[0].ID, orders[1].ID, second, first)
	}
}
