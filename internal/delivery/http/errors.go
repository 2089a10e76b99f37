package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// Messages for failures that carry no user message of their own.
const (
	MsgForbidden      = "권한이 없습니다."
	MsgNotFound       = "요청한 항목을 찾을 수 없습니다."
	MsgAlreadyHandled = "이미 처리된 요청입니다."
	MsgNotConfigured  = "현재 사용할 수 없는 기능입니다."
	MsgInvalidImage   = "지원하지 않는 이미지 형식입니다."
	MsgInvalidRequest = "요청 형식이 올바르지 않습니다."
	MsgMissingPhoto   = "사진을 업로드해주세요."
	MsgMissingPrompt  = "원하는 스타일을 입력해주세요."
	MsgRunInFlight    = "이미 스타일을 생성하고 있습니다."
	MsgTimeout        = "요청 시간이 초과되었습니다. 잠시 후 다시 시도해주세요."
)

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var userErr *common.UserError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrDuplicateEntry),
		errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrRunInFlight):
		return http.StatusConflict
	case errors.Is(err, common.ErrEmptyRequest), errors.Is(err, model.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNoProductsFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrGeneration), errors.Is(err, common.ErrImageSynthesis):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &userErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor picks the text shown to the client.
func messageFor(err error, status int) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	switch status {
	case http.StatusUnauthorized:
		return account.MsgLoginRequired
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusServiceUnavailable:
		return MsgNotConfigured
	case http.StatusGatewayTimeout:
		return MsgTimeout
	case http.StatusRequestEntityTooLarge:
		return MsgUploadTooLarge
	}
	switch {
	case errors.Is(err, common.ErrInvalidTransition):
		return MsgAlreadyHandled
	case errors.Is(err, common.ErrRunInFlight):
		return MsgRunInFlight
	case errors.Is(err, model.ErrInvalidImage):
		return MsgInvalidImage
	}
	return common.UserMessage(err)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "status", status, "error", err)
	} else {
		h.logger.Debug("request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": messageFor(err, status)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
