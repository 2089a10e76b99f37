package model

import (
	"fmt"
	"time"
)

// PurchaseStatus is the lifecycle state of a purchase request.
type PurchaseStatus string

const (
	// PurchaseStatusPending means the request awaits admin handling.
	PurchaseStatusPending PurchaseStatus = "Pending"
	// PurchaseStatusCompleted means an admin has fulfilled the request.
	PurchaseStatusCompleted PurchaseStatus = "Completed"
)

// PurchaseRequest asks an admin to buy a snapshot of products for a user.
type PurchaseRequest struct {
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	ID          string         `json:"id"`
	UserEmail   string         `json:"userEmail"`
	Status      PurchaseStatus `json:"status"`
	Products    []Product      `json:"products"`
	TotalPrice  int64          `json:"totalPrice"`
}

// Complete moves a pending request to completed.
// It returns an error naming the current status for any other starting state.
func (r *PurchaseRequest) Complete(at time.Time) error {
	if r.Status != PurchaseStatusPending {
		return fmt.Errorf("cannot complete request in status %s", r.Status)
	}
	r.Status = PurchaseStatusCompleted
	r.CompletedAt = &at
	return nil
}
