package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// 登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Last name is required")
	}

	email := strings.TrimSpace(in.Email)
	if email == "" || !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "Please provide a valid email")
	}

	if len(in.Password) < 6 {
		return usecase.NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters")
	}

	//email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "Please provide a valid email")
	}
	if password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Password is required")
	}
	return nil
}

// ざっくりした形式チェックだけ（厳密なRFC準拠はしない）
var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isEmailLike(s string) bool {
	return emailRegexp.MatchString(s)
}
