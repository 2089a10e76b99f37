// Package service defines the interfaces shared between application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/easy-style/internal/model"
)

// PurchaseFilter narrows a purchase request listing.
// Zero-value fields do not filter.
type PurchaseFilter struct {
	UserEmail string
	Status    model.PurchaseStatus
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Style history operations
	SaveHistoryItem(ctx context.Context, item *model.StyleHistoryItem) error
	GetHistoryItem(ctx context.Context, userEmail, id string) (*model.StyleHistoryItem, error)
	ListHistory(ctx context.Context, userEmail string) ([]model.StyleHistoryItem, error)
	SetHistoryShareKey(ctx context.Context, userEmail, id, key string) error
	ClearHistory(ctx context.Context, userEmail string) error

	// Purchase request operations
	SavePurchaseRequest(ctx context.Context, req *model.PurchaseRequest) error
	GetPurchaseRequest(ctx context.Context, id string) (*model.PurchaseRequest, error)
	ListPurchaseRequests(ctx context.Context, filter PurchaseFilter) ([]model.PurchaseRequest, error)
	CompletePurchaseRequest(ctx context.Context, id string, at time.Time) (*model.PurchaseRequest, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
