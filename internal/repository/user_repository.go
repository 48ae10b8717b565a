package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//管理画面用（新しい順）
	List(ctx context.Context) ([]model.User, error)

	UpdateProfile(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Delete(ctx context.Context, userID int64) error

	CountCustomers(ctx context.Context) (int64, error)
}
