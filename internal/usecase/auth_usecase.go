package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenの有効期限
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthOutput struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// プロフィールは直近注文の配送先も返す
type ProfileOutput struct {
	model.User
	LatestShippingAddress string `json:"latest_shipping_address,omitempty"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	orders    repo.OrderRepository
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	orders repo.OrderRepository,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		orders:    orders,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return AuthOutput{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to register")
	}

	user := &model.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(pwHash),
		Role:         model.RoleCustomer,
	}
	if err := u.users.Create(ctx, user); err != nil {
		//uniqueIndex違反は二重登録
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Email already registered")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to register")
	}

	return AuthOutput{Token: token, User: *user}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return AuthOutput{}, err
	}

	//未登録か照合失敗かは返答で区別させない
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil || user == nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to login")
	}

	return AuthOutput{Token: token, User: *user}, nil
}

func (u *AuthUsecase) Profile(ctx context.Context, userID int64) (ProfileOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil || user == nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch profile")
	}

	//直近注文の配送先。注文が無ければ空のまま。
	addr, err := u.orders.LatestShippingAddress(ctx, userID)
	if err != nil {
		addr = ""
	}

	return ProfileOutput{User: *user, LatestShippingAddress: addr}, nil
}

func (u *AuthUsecase) issueToken(user *model.User) (string, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}
