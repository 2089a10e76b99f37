package storage

import (
	"context"
	"strings"

	"github.com/Veraticus/easy-style/internal/model"
)

// CreateUser inserts a new account. An existing email yields common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, name, phone, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, normalizeEmail(user.Email), user.Name, user.Phone, user.PasswordHash, user.IsAdmin, user.CreatedAt.UTC())
	if err != nil {
		return translateError(err, "user")
	}
	return nil
}

// GetUserByEmail looks an account up by email.
func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT email, name, phone, password_hash, is_admin, created_at
		FROM users
		WHERE email = ?
	`, normalizeEmail(email)).Scan(
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err, "user")
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
