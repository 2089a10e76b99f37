package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/service"
)

// SavePurchaseRequest inserts a new purchase request.
func (s *SQLiteStorage) SavePurchaseRequest(ctx context.Context, req *model.PurchaseRequest) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePurchaseRequest(req); err != nil {
		return err
	}

	products, err := json.Marshal(req.Products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO purchase_requests (id, user_email, products, total_price, status, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, req.ID, normalizeEmail(req.UserEmail), string(products), req.TotalPrice, string(req.Status), req.CreatedAt.UTC(), nullTime(req.CompletedAt))
	if err != nil {
		return translateError(err, "purchase request")
	}
	return nil
}

// GetPurchaseRequest fetches a purchase request by ID.
func (s *SQLiteStorage) GetPurchaseRequest(ctx context.Context, id string) (*model.PurchaseRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getPurchaseRequestTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getPurchaseRequestTx(ctx context.Context, q queryable, id string) (*model.PurchaseRequest, error) {
	rows, err := q.QueryContext(ctx, purchaseSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase request: %w", err)
	}
	reqs, err := scanPurchases(rows)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("purchase request %s: %w", id, common.ErrNotFound)
	}
	return &reqs[0], nil
}

// ListPurchaseRequests returns matching requests, newest first.
func (s *SQLiteStorage) ListPurchaseRequests(ctx context.Context, filter service.PurchaseFilter) ([]model.PurchaseRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if filter.UserEmail != "" {
		where = append(where, "user_email = ?")
		args = append(args, normalizeEmail(filter.UserEmail))
	}
	if filter.Status != "" {
		if err := validateStatus(filter.Status); err != nil {
			return nil, err
		}
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := purchaseSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase requests: %w", err)
	}
	return scanPurchases(rows)
}

// CompletePurchaseRequest marks a pending request completed.
// Requests in any other status yield common.ErrInvalidTransition.
func (s *SQLiteStorage) CompletePurchaseRequest(ctx context.Context, id string, at time.Time) (*model.PurchaseRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var completed *model.PurchaseRequest
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		req, err := s.getPurchaseRequestTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := req.Complete(at.UTC()); err != nil {
			return fmt.Errorf("%w: %w", common.ErrInvalidTransition, err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE purchase_requests SET status = ?, completed_at = ?
			WHERE id = ? AND status = ?
		`, string(req.Status), nullTime(req.CompletedAt), id, string(model.PurchaseStatusPending)); err != nil {
			return fmt.Errorf("failed to update purchase request: %w", err)
		}
		completed = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

const purchaseSelect = `
	SELECT id, user_email, products, total_price, status, created_at, completed_at
	FROM purchase_requests`

func scanPurchases(rows rowScanner) ([]model.PurchaseRequest, error) {
	defer func() { _ = rows.Close() }()

	var reqs []model.PurchaseRequest
	for rows.Next() {
		var (
			req         model.PurchaseRequest
			products    string
			status      string
			completedAt sql.NullTime
		)
		if err := rows.Scan(
			&req.ID,
			&req.UserEmail,
			&products,
			&req.TotalPrice,
			&status,
			&req.CreatedAt,
			&completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase request: %w", err)
		}
		req.Status = model.PurchaseStatus(status)
		if completedAt.Valid {
			t := completedAt.Time
			req.CompletedAt = &t
		}
		if err := json.Unmarshal([]byte(products), &req.Products); err != nil {
			return nil, fmt.Errorf("failed to decode products of %s: %w", req.ID, err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase requests: %w", err)
	}
	return reqs, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
