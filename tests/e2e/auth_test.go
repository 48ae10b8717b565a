package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	first := registerNewUser(t, c, ctx)

	//同じemailで再登録は400
	req := RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     first.User.Email,
		Password:  "password123",
	}
	b, _ := json.Marshal(req)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/auth/register", "", b)
	requireStatus(t, resp, http.StatusBadRequest, body)

	e := mustDecodeError(t, body)
	if !strings.Contains(e.Error, "already registered") {
		t.Fatalf("error=%q want already registered", e.Error)
	}
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user := registerNewUser(t, c, ctx)

	req := LoginRequest{Email: user.User.Email, Password: "wrong-password"}
	b, _ := json.Marshal(req)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/auth/login", "", b)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	e := mustDecodeError(t, body)
	if e.Error != "Invalid email or password" {
		t.Fatalf("error=%q want Invalid email or password", e.Error)
	}
}

func TestAuth_ProfileIncludesLatestShippingAddress(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := registerNewUser(t, c, ctx)
	placeOrder(t, c, ctx, auth.Token)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/auth/profile/"+toStr(auth.User.ID), auth.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var profile struct {
		ID                    int64  `json:"id"`
		LatestShippingAddress string `json:"latest_shipping_address"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("json.Unmarshal(profile) failed: %v body=%s", err, string(body))
	}
	if !strings.Contains(profile.LatestShippingAddress, "Tokyo") {
		t.Fatalf("latest_shipping_address=%q want contains Tokyo", profile.LatestShippingAddress)
	}
}

func TestAuth_ProfileOfOtherUser_Forbidden(t *testing.T) {
	c := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := registerNewUser(t, c, ctx)
	b := registerNewUser(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/auth/profile/"+toStr(a.User.ID), b.Token, nil)
	requireStatus(t, resp, http.StatusForbidden, body)
}
