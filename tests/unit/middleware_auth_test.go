package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub int64, role string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

// contextに入った値をそのまま返すハンドラ
func echoUserHandler(c echo.Context) error {
	userID, _ := c.Get(middleware.CtxUserIDKey).(int64)
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	return c.JSON(http.StatusOK, mwOKResponse{UserID: userID, Role: role})
}

func doAuthRequest(t *testing.T, cfg config.Config, authz string, guards ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := echoUserHandler
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	err := h(c)
	assert.NoError(t, err)
	return rec
}

// =====================
// AuthJWT tests
// =====================

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	rec := doAuthRequest(t, cfg, "", middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body mwErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
}

func TestAuthJWT_NonBearerHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	rec := doAuthRequest(t, cfg, "Basic abc", middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, "other-secret", 1, "customer")

	rec := doAuthRequest(t, cfg, "Bearer "+token, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	claims := jwt.MapClaims{
		"sub":  int64(1),
		"role": "customer",
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	assert.NoError(t, err)

	rec := doAuthRequest(t, cfg, "Bearer "+signed, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken_SetsContext(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, cfg.JWTSecret, 42, "customer")

	rec := doAuthRequest(t, cfg, "Bearer "+token, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "customer", body.Role)
}

// =====================
// AdminRoleGuard tests
// =====================

func TestAdminRoleGuard_CustomerForbidden(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, cfg.JWTSecret, 1, "customer")

	rec := doAuthRequest(t, cfg, "Bearer "+token, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_AdminAllowed(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, cfg.JWTSecret, 1, "admin")

	rec := doAuthRequest(t, cfg, "Bearer "+token, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleGuard_NoAuthContext(t *testing.T) {
	rec := doAuthRequest(t, config.Config{}, "", middleware.AdminRoleGuard())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
