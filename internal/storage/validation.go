// Package storage provides the data persistence layer for the styling service.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/easy-style/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidUser       = errors.New("invalid user")
	ErrInvalidHistory    = errors.New("invalid history item")
	ErrInvalidPurchase   = errors.New("invalid purchase request")
	ErrInvalidStatusText = errors.New("invalid purchase status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("%w: missing email", ErrInvalidUser)
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("%w: missing password hash", ErrInvalidUser)
	}
	return nil
}

func validateHistoryItem(item *model.StyleHistoryItem) error {
	if item == nil {
		return fmt.Errorf("%w: history item", ErrNilParameter)
	}
	if item.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidHistory)
	}
	if item.UserEmail == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidHistory)
	}
	if item.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidHistory)
	}
	if item.StyledResult.ImageBase64 == "" {
		return fmt.Errorf("%w: missing styled image", ErrInvalidHistory)
	}
	return nil
}

func validatePurchaseRequest(req *model.PurchaseRequest) error {
	if req == nil {
		return fmt.Errorf("%w: purchase request", ErrNilParameter)
	}
	if req.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidPurchase)
	}
	if req.UserEmail == "" {
		return fmt.Errorf("%w: missing user", ErrInvalidPurchase)
	}
	if len(req.Products) == 0 {
		return fmt.Errorf("%w: no products", ErrInvalidPurchase)
	}
	if req.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidPurchase)
	}
	return validateStatus(req.Status)
}

func validateStatus(status model.PurchaseStatus) error {
	switch status {
	case model.PurchaseStatusPending, model.PurchaseStatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatusText, status)
	}
}
