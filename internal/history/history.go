// Package history saves styling results per user and shares them.
package history

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/share"
)

// Store is the persistence the history service needs.
type Store interface {
	SaveHistoryItem(ctx context.Context, item *model.StyleHistoryItem) error
	GetHistoryItem(ctx context.Context, userEmail, id string) (*model.StyleHistoryItem, error)
	ListHistory(ctx context.Context, userEmail string) ([]model.StyleHistoryItem, error)
	SetHistoryShareKey(ctx context.Context, userEmail, id, key string) error
}

// Shared is the result of sharing a history item.
type Shared struct {
	Link share.Link `json:"link"`
	Text string     `json:"text"`
}

// Service manages style history.
type Service struct {
	store    Store
	uploader share.Uploader
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithUploader enables sharing through u.
func WithUploader(u share.Uploader) Option {
	return func(s *Service) { s.uploader = u }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a history service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records result for the caller.
func (s *Service) Save(ctx context.Context, who account.Principal, prompt string, original model.Image, result model.StyleResult) (*model.StyleHistoryItem, error) {
	if who.Email == "" {
		return nil, common.NewUserError(account.MsgLoginRequired, common.ErrUnauthorized)
	}

	item := &model.StyleHistoryItem{
		ID:            s.newID(),
		UserEmail:     who.Email,
		CreatedAt:     s.now().UTC(),
		Prompt:        prompt,
		OriginalImage: original.Encoded(),
		StyledResult:  result.Styled(),
		Products:      model.CloneProducts(result.Products),
	}
	if err := s.store.SaveHistoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}

	s.logger.Info("history saved", "id", item.ID, "user", who.Email, "products", len(item.Products))
	return item, nil
}

// List returns the caller's history, newest first.
func (s *Service) List(ctx context.Context, who account.Principal) ([]model.StyleHistoryItem, error) {
	if who.Email == "" {
		return nil, common.NewUserError(account.MsgLoginRequired, common.ErrUnauthorized)
	}
	return s.store.ListHistory(ctx, who.Email)
}

// Get returns one of the caller's history items.
func (s *Service) Get(ctx context.Context, who account.Principal, id string) (*model.StyleHistoryItem, error) {
	if who.Email == "" {
		return nil, common.NewUserError(account.MsgLoginRequired, common.ErrUnauthorized)
	}
	return s.store.GetHistoryItem(ctx, who.Email, id)
}

// Share uploads the styled image of a history item and returns a public link.
func (s *Service) Share(ctx context.Context, who account.Principal, id string) (*Shared, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("sharing: %w", common.ErrNotConfigured)
	}

	item, err := s.Get(ctx, who, id)
	if err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(model.StripDataURLPrefix(item.StyledResult.ImageBase64))
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("history %s: %w", id, model.ErrInvalidImage)
	}
	contentType := item.StyledResult.ImageMIMEType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = model.DefaultGeneratedMIMEType
	}

	key := shareKey(item.ID, contentType)
	link, err := s.uploader.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetHistoryShareKey(ctx, who.Email, item.ID, key); err != nil {
		return nil, fmt.Errorf("failed to record share: %w", err)
	}

	return &Shared{Link: link, Text: ShareText(item.Prompt)}, nil
}

// ShareText is the message that accompanies a shared style.
func ShareText(prompt string) string {
	return "AI가 추천해준 제 새로운 스타일을 확인해보세요! - " + prompt
}

func shareKey(id, contentType string) string {
	return fmt.Sprintf("shares/%s.%s", id, strings.TrimPrefix(contentType, "image/"))
}
