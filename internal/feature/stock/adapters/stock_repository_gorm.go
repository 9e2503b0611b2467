package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warehouse_backend/internal/feature/stock/domain"
	"warehouse_backend/internal/feature/stock/domain/entity"
	"warehouse_backend/internal/feature/stock/usecase"
)

type stockRepositoryGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockRepositoryGorm)(nil)

// NewStockRepository creates a StockRepository backed by db.
func NewStockRepository(db *gorm.DB) *stockRepositoryGorm {
	return &stockRepositoryGorm{db: db}
}

// ListItems returns the ledger.
func (r *stockRepositoryGorm) ListItems(ctx context.Context) ([]entity.StockItem, error) {
	return NewItemLedger(r.db).ListItems(ctx)
}

// ListHistory returns the history log.
func (r *stockRepositoryGorm) ListHistory(ctx context.Context) ([]entity.HistoryEntry, error) {
	return NewHistoryLog(r.db).ListAll(ctx)
}

// RunInTx runs fn inside a database transaction. Errors from fn are returned
// unchanged after rollback; failures to begin or commit are storage errors.
func (r *stockRepositoryGorm) RunInTx(ctx context.Context, fn func(usecase.ItemLedger, usecase.HistoryLog) error) error {
	var fnErr error
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewItemLedger(tx), NewHistoryLog(tx))
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		return fnErr
	}
	return fmt.Errorf("%w: transaction: %w", domain.ErrStorage, err)
}
