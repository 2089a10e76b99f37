// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Styling errors.
	ErrGeneration      = errors.New("generation failed")
	ErrNoProductsFound = errors.New("no products found")
	ErrImageSynthesis  = errors.New("image synthesis failed")
	ErrCropFailed      = errors.New("product crop failed")

	// Session errors.
	ErrStaleResult  = errors.New("stale styling result")
	ErrRunInFlight  = errors.New("styling run already in flight")
	ErrNoResult     = errors.New("no styling result")
	ErrEmptyRequest = errors.New("no products selected")

	// Account and workflow errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotConfigured = errors.New("feature not configured")
)

// User-facing messages for the fatal styling failures.
const (
	MsgGenerationFailed = "스타일 생성 중 오류가 발생했습니다."
	MsgQuestionFailed   = "AI가 질문을 생성하는 데 실패했습니다. 잠시 후 다시 시도해주세요."
	MsgNoProductsFound  = "추천할만한 상품을 찾지 못했습니다. 다른 스타일로 시도해보세요."
	MsgImageSynthesis   = "AI가 새로운 스타일 이미지를 생성하는 데 실패했습니다."
	MsgEmptyRequest     = "요청할 상품을 선택해주세요."
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message that should be shown for err.
// Errors that carry no user message fall back to the generic generation failure copy.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	switch {
	case errors.Is(err, ErrNoProductsFound):
		return MsgNoProductsFound
	case errors.Is(err, ErrImageSynthesis):
		return MsgImageSynthesis
	case errors.Is(err, ErrEmptyRequest):
		return MsgEmptyRequest
	default:
		return MsgGenerationFailed
	}
}
