package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// LineItemRepository provides data access methods for the line_item table.
// Items are kept in a dense, zero-based position order per category.
type LineItemRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewLineItemRepository creates a new LineItemRepository with the provided database connection.
func NewLineItemRepository(db *sql.DB) *LineItemRepository {
	return &LineItemRepository{db: db}
}

// WithTx returns a new LineItemRepository scoped to the provided transaction.
func (r *LineItemRepository) WithTx(tx *sql.Tx) *LineItemRepository {
	return &LineItemRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *LineItemRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ListItems returns all items of a category in position order.
// Returns an empty slice when the category holds no items.
func (r *LineItemRepository) ListItems(ctx context.Context, category model.Category) ([]model.LineItem, error) {
	query := `
		SELECT id, name, quantity, unit, unit_price, position, created_at
		FROM line_item
		WHERE category = ?
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s items: %w", category, err)
	}
	defer rows.Close()

	items := []model.LineItem{}
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s items: %w", category, err)
	}

	return items, nil
}

// GetItem retrieves a single item from a category by its ID.
// Returns ErrLineItemNotFound if the item does not exist in that category.
func (r *LineItemRepository) GetItem(ctx context.Context, category model.Category, id string) (model.LineItem, error) {
	if id == "" {
		return model.LineItem{}, apperrors.ErrEmptyID
	}

	query := `
		SELECT id, name, quantity, unit, unit_price, position, created_at
		FROM line_item
		WHERE category = ? AND id = ?
	`

	item, err := scanLineItem(r.getQuerier().QueryRowContext(ctx, query, string(category), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LineItem{}, apperrors.ErrLineItemNotFound
		}
		return model.LineItem{}, err
	}

	return item, nil
}

// InsertItem appends an item to the end of a category and sets its Position.
func (r *LineItemRepository) InsertItem(ctx context.Context, category model.Category, item *model.LineItem) error {
	var next int
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM line_item WHERE category = ?`,
		string(category),
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to determine next position: %w", err)
	}

	item.Position = next
	return r.insert(ctx, category, item)
}

// InsertItemAfter inserts an item directly after the given position,
// shifting every later item in the category down by one.
func (r *LineItemRepository) InsertItemAfter(ctx context.Context, category model.Category, after int, item *model.LineItem) error {
	_, err := r.getQuerier().ExecContext(ctx,
		`UPDATE line_item SET position = position + 1 WHERE category = ? AND position > ?`,
		string(category), after,
	)
	if err != nil {
		return fmt.Errorf("failed to shift %s items: %w", category, err)
	}

	item.Position = after + 1
	return r.insert(ctx, category, item)
}

func (r *LineItemRepository) insert(ctx context.Context, category model.Category, item *model.LineItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO line_item (id, category, position, name, quantity, unit, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		item.ID,
		string(category),
		item.Position,
		item.Name,
		item.Quantity,
		item.Unit,
		item.UnitPrice,
		formatTime(item.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert line item: %w", err)
	}

	return nil
}

// UpdateItem writes the editable fields of an existing item.
// Returns ErrLineItemNotFound if no item with that ID exists in the category.
func (r *LineItemRepository) UpdateItem(ctx context.Context, category model.Category, item model.LineItem) error {
	query := `
		UPDATE line_item
		SET name = ?, quantity = ?, unit = ?, unit_price = ?
		WHERE category = ? AND id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		item.Name,
		item.Quantity,
		item.Unit,
		item.UnitPrice,
		string(category),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item: %w", err)
	}

	return expectOneRow(result)
}

// DeleteItem removes an item and closes the gap in the category's positions.
// Returns ErrLineItemNotFound if no item with that ID exists in the category.
func (r *LineItemRepository) DeleteItem(ctx context.Context, category model.Category, id string) error {
	item, err := r.GetItem(ctx, category, id)
	if err != nil {
		return err
	}

	result, err := r.getQuerier().ExecContext(ctx,
		`DELETE FROM line_item WHERE category = ? AND id = ?`,
		string(category), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}

	_, err = r.getQuerier().ExecContext(ctx,
		`UPDATE line_item SET position = position - 1 WHERE category = ? AND position > ?`,
		string(category), item.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to compact %s positions: %w", category, err)
	}

	return nil
}

// DeleteAll removes every line item in every category.
func (r *LineItemRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM line_item`); err != nil {
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	return nil
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrLineItemNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLineItem(row rowScanner) (model.LineItem, error) {
	var (
		item      model.LineItem
		createdAt string
	)
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.UnitPrice,
		&item.Position,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LineItem{}, err
		}
		return model.LineItem{}, fmt.Errorf("failed to scan line item: %w", err)
	}

	item.CreatedAt, err = ParseTime(createdAt)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return item, nil
}
