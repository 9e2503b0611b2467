// Package adapters provides GORM implementations of the stock feature's
// ledger, history log and transactional repository.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warehouse_backend/internal/feature/stock/domain"
	"warehouse_backend/internal/feature/stock/domain/entity"
	"warehouse_backend/internal/feature/stock/usecase"
)

// itemLedgerGorm is a GORM implementation of the ItemLedger interface.
type itemLedgerGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure itemLedgerGorm implements ItemLedger.
var _ usecase.ItemLedger = (*itemLedgerGorm)(nil)

// NewItemLedger creates a ledger bound to db, which may be a transaction.
func NewItemLedger(db *gorm.DB) *itemLedgerGorm {
	return &itemLedgerGorm{db: db}
}

// FindItem returns the row for key. The row is locked for update on
// databases that support row locks.
func (r *itemLedgerGorm) FindItem(ctx context.Context, key entity.ItemKey) (*entity.StockItem, error) {
	var m StockItemModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_name = ? AND company_name = ?", key.ItemName, key.CompanyName).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, key)
		}
		return nil, fmt.Errorf("%w: find item %s: %w", domain.ErrStorage, key, err)
	}
	return m.ToEntity(), nil
}

// CreateItem inserts item and sets its ID and timestamps.
func (r *itemLedgerGorm) CreateItem(ctx context.Context, item *entity.StockItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is required", domain.ErrValidation)
	}
	if err := item.Validate(); err != nil {
		return err
	}
	m := StockItemModelFromEntity(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: item %s already exists: %w", domain.ErrStorage, item.Key(), err)
		}
		return fmt.Errorf("%w: create item %s: %w", domain.ErrStorage, item.Key(), err)
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt
	return nil
}

// IncreaseQuantity adds delta in the database and on item.
func (r *itemLedgerGorm) IncreaseQuantity(ctx context.Context, item *entity.StockItem, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	res := r.db.WithContext(ctx).
		Model(&StockItemModel{}).
		Where("id = ?", item.ID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("%w: increase quantity of %s: %w", domain.ErrStorage, item.Key(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, item.Key())
	}
	return item.Increase(delta)
}

// DecreaseQuantity subtracts delta in the database and on item. The update is
// guarded by quantity >= delta so the stored quantity never goes negative.
func (r *itemLedgerGorm) DecreaseQuantity(ctx context.Context, item *entity.StockItem, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	if item.Quantity < delta {
		return fmt.Errorf("%w: %d on hand, %d requested", domain.ErrInsufficientStock, item.Quantity, delta)
	}
	res := r.db.WithContext(ctx).
		Model(&StockItemModel{}).
		Where("id = ? AND quantity >= ?", item.ID, delta).
		Update("quantity", gorm.Expr("quantity - ?", delta))
	if res.Error != nil {
		return fmt.Errorf("%w: decrease quantity of %s: %w", domain.ErrStorage, item.Key(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s changed concurrently", domain.ErrInsufficientStock, item.Key())
	}
	return item.Decrease(delta)
}

// ListItems returns all rows ordered by ID.
func (r *itemLedgerGorm) ListItems(ctx context.Context) ([]entity.StockItem, error) {
	var rows []StockItemModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list items: %w", domain.ErrStorage, err)
	}
	out := make([]entity.StockItem, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out, nil
}
