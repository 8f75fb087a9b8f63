package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/importer"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/repository"
)

// LineItemService handles edits to the three line item collections.
type LineItemService struct {
	db       *sql.DB
	itemRepo *repository.LineItemRepository
	lock     *SessionLock
	logger   *log.Logger
}

// NewLineItemService creates a new LineItemService with the provided dependencies.
func NewLineItemService(
	db *sql.DB,
	itemRepo *repository.LineItemRepository,
	lock *SessionLock,
	logger *log.Logger,
) *LineItemService {
	return &LineItemService{
		db:       db,
		itemRepo: itemRepo,
		lock:     lock,
		logger:   logger,
	}
}

// ListItems returns the items of a category in display order.
func (s *LineItemService) ListItems(ctx context.Context, category model.Category) ([]model.LineItem, error) {
	var items []model.LineItem
	err := s.lock.Do(ctx, func() error {
		var err error
		items, err = s.itemRepo.ListItems(ctx, category)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem appends a new item with a fresh ID to the end of a category.
func (s *LineItemService) CreateItem(ctx context.Context, category model.Category, req request.CreateLineItemRequest) (*model.LineItem, error) {
	item := &model.LineItem{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		CreatedAt: time.Now().UTC(),
	}

	err := s.lock.Do(ctx, func() error {
		return s.itemRepo.InsertItem(ctx, category, item)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create line item: %w", err)
	}

	return item, nil
}

// UpdateItem applies the provided fields of req to an existing item.
// Returns ErrLineItemNotFound if the item is not in the category.
func (s *LineItemService) UpdateItem(ctx context.Context, category model.Category, id string, req request.UpdateLineItemRequest) (*model.LineItem, error) {
	var item model.LineItem
	err := s.lock.Do(ctx, func() error {
		var err error
		item, err = s.itemRepo.GetItem(ctx, category, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.UnitPrice != nil {
			item.UnitPrice = *req.UnitPrice
		}

		return s.itemRepo.UpdateItem(ctx, category, item)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update line item: %w", err)
	}

	return &item, nil
}

// DeleteItem removes an item from a category.
// Returns ErrLineItemNotFound if the item is not in the category.
func (s *LineItemService) DeleteItem(ctx context.Context, category model.Category, id string) error {
	err := s.lock.Do(ctx, func() error {
		return withTx(ctx, s.db, func(tx *sql.Tx) error {
			return s.itemRepo.WithTx(tx).DeleteItem(ctx, category, id)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	return nil
}

// DuplicateItem copies an item under a fresh ID and inserts the copy directly
// after the original.
func (s *LineItemService) DuplicateItem(ctx context.Context, category model.Category, id string) (*model.LineItem, error) {
	var duplicate model.LineItem
	err := s.lock.Do(ctx, func() error {
		return withTx(ctx, s.db, func(tx *sql.Tx) error {
			repo := s.itemRepo.WithTx(tx)

			original, err := repo.GetItem(ctx, category, id)
			if err != nil {
				return err
			}

			duplicate = original
			duplicate.ID = uuid.New().String()
			duplicate.CreatedAt = time.Now().UTC()

			return repo.InsertItemAfter(ctx, category, original.Position, &duplicate)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate line item: %w", err)
	}

	return &duplicate, nil
}

// ImportItems parses pasted rows and appends every accepted row to the
// category in one transaction. Returns ErrNoImportRows together with the
// counts when nothing could be imported.
func (s *LineItemService) ImportItems(ctx context.Context, category model.Category, text string) (*importer.Result, error) {
	result := importer.Parse(text)
	if result.Added == 0 {
		return &result, apperrors.ErrNoImportRows
	}

	err := s.lock.Do(ctx, func() error {
		return withTx(ctx, s.db, func(tx *sql.Tx) error {
			repo := s.itemRepo.WithTx(tx)
			for i := range result.Items {
				if err := repo.InsertItem(ctx, category, &result.Items[i]); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import line items: %w", err)
	}

	s.logger.Info().
		Str("category", string(category)).
		Int("added", result.Added).
		Int("skipped", result.Skipped).
		Msg("line items imported")

	return &result, nil
}
