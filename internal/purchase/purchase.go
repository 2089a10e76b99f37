// Package purchase turns product selections into purchase requests for an admin.
package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/notify"
	"github.com/Veraticus/easy-style/internal/service"
	"github.com/Veraticus/easy-style/internal/styling"
)

// Store is the persistence the purchase service needs.
type Store interface {
	SavePurchaseRequest(ctx context.Context, req *model.PurchaseRequest) error
	GetPurchaseRequest(ctx context.Context, id string) (*model.PurchaseRequest, error)
	ListPurchaseRequests(ctx context.Context, filter service.PurchaseFilter) ([]model.PurchaseRequest, error)
	CompletePurchaseRequest(ctx context.Context, id string, at time.Time) (*model.PurchaseRequest, error)
}

// Overview splits requests by status, each newest first.
type Overview struct {
	Pending   []model.PurchaseRequest `json:"pending"`
	Completed []model.PurchaseRequest `json:"completed"`
}

// Service manages purchase requests.
type Service struct {
	store    Store
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService creates a purchase service. A nil notifier disables notifications.
func NewService(store Store, notifier notify.Notifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create snapshots products into a new pending request owned by the caller.
func (s *Service) Create(ctx context.Context, who account.Principal, products []model.Product) (*model.PurchaseRequest, error) {
	if who.Email == "" {
		return nil, common.NewUserError(account.MsgLoginRequired, common.ErrUnauthorized)
	}
	if len(products) == 0 {
		return nil, common.NewUserError(common.MsgEmptyRequest, common.ErrEmptyRequest)
	}

	snapshot := model.CloneProducts(products)
	req := &model.PurchaseRequest{
		ID:         s.newID(),
		UserEmail:  who.Email,
		CreatedAt:  s.now().UTC(),
		Status:     model.PurchaseStatusPending,
		Products:   snapshot,
		TotalPrice: styling.Total(snapshot),
	}
	if err := s.store.SavePurchaseRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to save purchase request: %w", err)
	}

	s.logger.Info("purchase request created",
		"id", req.ID,
		"user", req.UserEmail,
		"products", len(req.Products),
		"total", req.TotalPrice)

	if err := s.notifier.PurchaseRequested(ctx, req); err != nil {
		s.logger.Warn("failed to notify admin", "id", req.ID, "error", err)
	}
	return req, nil
}

// List returns every request for an admin and the caller's own otherwise.
func (s *Service) List(ctx context.Context, who account.Principal) (*Overview, error) {
	if who.Email == "" {
		return nil, common.NewUserError(account.MsgLoginRequired, common.ErrUnauthorized)
	}

	filter := service.PurchaseFilter{}
	if !who.IsAdmin {
		filter.UserEmail = who.Email
	}
	reqs, err := s.store.ListPurchaseRequests(ctx, filter)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Pending:   []model.PurchaseRequest{},
		Completed: []model.PurchaseRequest{},
	}
	for _, r := range reqs {
		switch r.Status {
		case model.PurchaseStatusPending:
			overview.Pending = append(overview.Pending, r)
		case model.PurchaseStatusCompleted:
			overview.Completed = append(overview.Completed, r)
		}
	}
	return overview, nil
}

// Complete marks a pending request as fulfilled. Only admins may do this.
func (s *Service) Complete(ctx context.Context, who account.Principal, id string) (*model.PurchaseRequest, error) {
	if !who.IsAdmin {
		return nil, fmt.Errorf("complete purchase request: %w", common.ErrForbidden)
	}

	req, err := s.store.CompletePurchaseRequest(ctx, id, s.now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrInvalidTransition) {
			s.logger.Warn("purchase request already handled", "id", id)
		}
		return nil, err
	}

	s.logger.Info("purchase request completed", "id", req.ID, "admin", who.Email)
	if err := s.notifier.PurchaseCompleted(ctx, req); err != nil {
		s.logger.Warn("failed to notify user", "id", req.ID, "error", err)
	}
	return req, nil
}

// Get returns a request visible to the caller. Other users' requests are reported as missing.
func (s *Service) Get(ctx context.Context, who account.Principal, id string) (*model.PurchaseRequest, error) {
	if who.Email == "" {
		return nil, common.NewUserError(account.MsgLoginRequired, common.ErrUnauthorized)
	}
	req, err := s.store.GetPurchaseRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.IsAdmin && req.UserEmail != who.Email {
		return nil, fmt.Errorf("purchase request %s: %w", id, common.ErrNotFound)
	}
	return req, nil
}
