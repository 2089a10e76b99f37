package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// SaveHistoryItem stores a styling result. Items are immutable once saved.
func (s *SQLiteStorage) SaveHistoryItem(ctx context.Context, item *model.StyleHistoryItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHistoryItem(item); err != nil {
		return err
	}

	products, err := json.Marshal(item.Products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO style_history (
			id, user_email, prompt, original_image, original_mime_type,
			styled_image, styled_mime_type, description, products, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		normalizeEmail(item.UserEmail),
		item.Prompt,
		item.OriginalImage.Base64,
		item.OriginalImage.MIMEType,
		item.StyledResult.ImageBase64,
		styledMIMEType(item.StyledResult),
		item.StyledResult.Description,
		string(products),
		item.CreatedAt.UTC(),
	)
	if err != nil {
		return translateError(err, "history item")
	}
	return nil
}

// GetHistoryItem returns one of the user's history items.
func (s *SQLiteStorage) GetHistoryItem(ctx context.Context, userEmail, id string) (*model.StyleHistoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userEmail, "userEmail"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, historySelect+`
		WHERE user_email = ? AND id = ?
	`, normalizeEmail(userEmail), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query history item: %w", err)
	}
	items, err := scanHistory(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("history item %s: %w", id, common.ErrNotFound)
	}
	return &items[0], nil
}

// ListHistory returns the user's history, newest first.
func (s *SQLiteStorage) ListHistory(ctx context.Context, userEmail string) ([]model.StyleHistoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userEmail, "userEmail"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, historySelect+`
		WHERE user_email = ?
		ORDER BY created_at DESC, rowid DESC
	`, normalizeEmail(userEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanHistory(rows)
}

// SetHistoryShareKey records where a history item's styled image was shared.
func (s *SQLiteStorage) SetHistoryShareKey(ctx context.Context, userEmail, id, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE style_history SET share_key = ?
		WHERE user_email = ? AND id = ?
	`, key, normalizeEmail(userEmail), id)
	if err != nil {
		return fmt.Errorf("failed to update share key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update share key: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("history item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// ClearHistory deletes every history item owned by the user.
func (s *SQLiteStorage) ClearHistory(ctx context.Context, userEmail string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userEmail, "userEmail"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM style_history WHERE user_email = ?`, normalizeEmail(userEmail)); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

const historySelect = `
	SELECT id, user_email, prompt, original_image, original_mime_type,
		styled_image, styled_mime_type, description, products, created_at
	FROM style_history`

func styledMIMEType(styled model.StyledImage) string {
	if styled.ImageMIMEType == "" {
		return model.DefaultGeneratedMIMEType
	}
	return styled.ImageMIMEType
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanHistory(rows rowScanner) ([]model.StyleHistoryItem, error) {
	defer func() { _ = rows.Close() }()

	var items []model.StyleHistoryItem
	for rows.Next() {
		var (
			item     model.StyleHistoryItem
			products string
		)
		if err := rows.Scan(
			&item.ID,
			&item.UserEmail,
			&item.Prompt,
			&item.OriginalImage.Base64,
			&item.OriginalImage.MIMEType,
			&item.StyledResult.ImageBase64,
			&item.StyledResult.ImageMIMEType,
			&item.StyledResult.Description,
			&products,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history item: %w", err)
		}
		if err := json.Unmarshal([]byte(products), &item.Products); err != nil {
			return nil, fmt.Errorf("failed to decode products of %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return items, nil
}
