package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/users（本人のプロフィール操作）
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/users")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/:id", h.get)
	g.PUT("/:id", h.updateProfile)
	g.PUT("/:id/password", h.changePassword)
}

// 本人かadminだけ許可
func targetUserID(c echo.Context) (int64, bool) {
	authID, ok := getUserIDFromContext(c)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	if id != authID && !isAdminFromContext(c) {
		return 0, false
	}
	return id, true
}

func (h *UserHandler) get(c echo.Context) error {
	id, ok := targetUserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	user, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	id, ok := targetUserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) changePassword(c echo.Context) error {
	id, ok := targetUserID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	var req usecase.ChangePasswordInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ChangePassword(c.Request().Context(), id, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Password updated"})
}
