// Package account handles signup, login and session tokens.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// User-facing messages.
const (
	MsgDuplicateEmail     = "이미 가입된 이메일입니다."
	MsgInvalidCredentials = "이메일 또는 비밀번호가 일치하지 않습니다."
	MsgLoginRequired      = "로그인 후 이용해주세요."
)

// DefaultAdminEmail is the account that may review purchase requests.
const DefaultAdminEmail = "admin@easystyle.com"

// UserStore is the persistence the account service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Config holds account settings.
type Config struct {
	Now        func() time.Time
	Logger     *slog.Logger
	JWTSecret  string
	AdminEmail string
	TokenTTL   time.Duration
	BcryptCost int
}

// Principal identifies the caller of an authenticated request.
type Principal struct {
	Email   string
	IsAdmin bool
}

// SignupInput carries the signup form.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Service implements account operations.
type Service struct {
	store  UserStore
	logger *slog.Logger
	config Config
}

// NewService creates an account service.
func NewService(store UserStore, config Config) (*Service, error) {
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("%w: jwt secret", common.ErrMissingConfig)
	}
	if config.AdminEmail == "" {
		config.AdminEmail = DefaultAdminEmail
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, config: config}, nil
}

// Signup registers a new user. The admin email always gets admin rights.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, common.NewUserError("올바른 이메일 주소를 입력해주세요.", fmt.Errorf("invalid email %q: %w", in.Email, err))
	}
	if in.Password == "" {
		return nil, common.NewUserError("비밀번호를 입력해주세요.", errors.New("empty password"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		IsAdmin:      s.isAdminEmail(email),
		CreatedAt:    s.config.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return nil, common.NewUserError(MsgDuplicateEmail, err)
		}
		return nil, err
	}

	s.logger.Info("user signed up", "email", email)
	return user, nil
}

// Login checks credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.NewUserError(MsgInvalidCredentials, common.ErrInvalidCredentials)
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.NewUserError(MsgInvalidCredentials, common.ErrInvalidCredentials)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// EnsureAdmin creates the admin account with password if it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.store.GetUserByEmail(ctx, s.config.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	_, err = s.Signup(ctx, SignupInput{
		Name:     "Admin",
		Email:    s.config.AdminEmail,
		Phone:    "010-0000-0000",
		Password: password,
	})
	return err
}

// IssueToken signs a session token for user.
func (s *Service) IssueToken(user *model.User) (string, error) {
	now := s.config.Now()
	claims := jwt.MapClaims{
		"sub":   user.Email,
		"admin": s.isAdminEmail(user.Email),
		"iat":   now.Unix(),
		"exp":   now.Add(s.config.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate validates a session token.
func (s *Service) Authenticate(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.config.Now))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Principal{}, fmt.Errorf("%w: invalid claims", common.ErrUnauthorized)
	}
	email, err := claims.GetSubject()
	if err != nil || email == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", common.ErrUnauthorized)
	}
	return Principal{Email: email, IsAdmin: s.isAdminEmail(email)}, nil
}

// AdminEmail returns the configured admin address.
func (s *Service) AdminEmail() string {
	return s.config.AdminEmail
}

func (s *Service) isAdminEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), s.config.AdminEmail)
}
