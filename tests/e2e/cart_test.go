package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

type ProductCreateRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int64   `json:"stock"`
}

type ProductDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartAddRequest struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

type CartItemDTO struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Quantity    int64   `json:"quantity"`
}

// adminで商品を作ってIDを返す
func createProduct(t *testing.T, c *TestClient, ctx context.Context, adminToken string, name string) int64 {
	t.Helper()

	b, _ := json.Marshal(ProductCreateRequest{Name: name, Price: 500, Category: "tops", Stock: 10})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/products", adminToken, b)
	requireStatus(t, resp, http.StatusCreated, body)

	var p ProductDTO
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("json.Unmarshal(ProductDTO) failed: %v body=%s", err, string(body))
	}
	return p.ID
}

func listCart(t *testing.T, c *TestClient, ctx context.Context, token string, userID int64) []CartItemDTO {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/cart/"+toStr(userID), token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var items []CartItemDTO
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("json.Unmarshal([]CartItemDTO) failed: %v body=%s", err, string(body))
	}
	return items
}

func TestCart_AddSameProductAndSizeAccumulates(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminToken := adminLogin(t, c, ctx)
	productID := createProduct(t, c, ctx, adminToken, "Cart Tee")

	user := registerNewUser(t, c, ctx)

	add := func(qty int64) {
		b, _ := json.Marshal(CartAddRequest{ProductID: productID, Size: "M", Quantity: qty})
		resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/cart/add", user.Token, b)
		requireStatus(t, resp, http.StatusOK, body)
	}

	add(1)
	add(2)

	items := listCart(t, c, ctx, user.Token, user.User.ID)
	if len(items) != 1 {
		t.Fatalf("len(items)=%d want 1 (same product+size accumulates)", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("quantity=%d want 3", items[0].Quantity)
	}
}

func TestCart_CheckoutClearsCart(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminToken := adminLogin(t, c, ctx)
	productID := createProduct(t, c, ctx, adminToken, "Checkout Tee")

	user := registerNewUser(t, c, ctx)

	b, _ := json.Marshal(CartAddRequest{ProductID: productID, Size: "L", Quantity: 1})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/cart/add", user.Token, b)
	requireStatus(t, resp, http.StatusOK, body)

	placeOrder(t, c, ctx, user.Token)

	items := listCart(t, c, ctx, user.Token, user.User.ID)
	if len(items) != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", items)
	}
}

func TestCart_CannotReadSomeoneElsesCart(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := registerNewUser(t, c, ctx)
	b := registerNewUser(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/cart/"+toStr(a.User.ID), b.Token, nil)
	requireStatus(t, resp, http.StatusForbidden, body)
}
