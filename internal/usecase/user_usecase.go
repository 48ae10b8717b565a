package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/logger"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	userRepo  repo.UserRepository
	auditRepo repo.AuditLogRepository
}

func NewUserUsecase(userRepo repo.UserRepository, auditRepo repo.AuditLogRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, auditRepo: auditRepo}
}

func (u *UserUsecase) Get(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil || user == nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}
	return *user, nil
}

type UpdateProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (model.User, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "First name and last name are required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil || user == nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Phone = in.Phone
	user.Address = in.Address
	user.City = in.City
	user.ZipCode = in.ZipCode

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}
	return *user, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (u *UserUsecase) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	if len(in.NewPassword) < 6 {
		return NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil || user == nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}

	//現在のパスワードを照合してから変える
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to change password")
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, string(pwHash)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to change password")
	}
	return nil
}

// 管理画面用のユーザー一覧
func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}
	return users, nil
}

func (u *UserUsecase) UpdateRole(ctx context.Context, adminUserID int64, targetUserID int64, role string) error {
	r := model.Role(role)
	if r != model.RoleCustomer && r != model.RoleAdmin {
		return NewHTTPError(http.StatusBadRequest, "Invalid role")
	}

	//自分のロールは落とさせない
	if adminUserID == targetUserID {
		return NewHTTPError(http.StatusBadRequest, "You cannot change your own role")
	}

	user, err := u.userRepo.FindByID(ctx, targetUserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil || user == nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}

	if err := u.userRepo.UpdateRole(ctx, targetUserID, r); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to update role")
	}

	//失敗しても本体の更新は取り消さない
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateUserRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   `{"role":"` + string(user.Role) + `"}`,
		AfterJSON:    `{"role":"` + string(r) + `"}`,
		CreatedAt:    time.Now(),
	}); err != nil {
		logger.WithError(err).WithField("user_id", targetUserID).Error("audit log create failed")
	}
	return nil
}

func (u *UserUsecase) Delete(ctx context.Context, adminUserID int64, targetUserID int64) error {
	if adminUserID == targetUserID {
		return NewHTTPError(http.StatusBadRequest, "You cannot delete your own account")
	}

	err := u.userRepo.Delete(ctx, targetUserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	return nil
}
