// Package usecase implements the stock movement rules: how stock-in and
// stock-out change an item's quantity and how each change is recorded in the
// history log.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"warehouse_backend/internal/feature/stock/domain"
	"warehouse_backend/internal/feature/stock/domain/entity"
)

// StockUsecase orchestrates ledger updates and history appends.
type StockUsecase struct {
	repo   StockRepository
	locker KeyLocker
	newRef func() string
}

// NewStockUsecase creates a StockUsecase with the given repository and locker.
func NewStockUsecase(repo StockRepository, locker KeyLocker) *StockUsecase {
	return &StockUsecase{
		repo:   repo,
		locker: locker,
		newRef: uuid.NewString,
	}
}

// StockIn records goods received from a supplier. The first receipt of an
// (item, company) pair creates the ledger row; later receipts accumulate into it.
// The returned entry is the history record written for the movement.
func (u *StockUsecase) StockIn(ctx context.Context, m entity.Movement) (*entity.HistoryEntry, error) {
	return u.move(ctx, entity.TransactionStockIn, m, func(ctx context.Context, ledger ItemLedger) error {
		item, err := ledger.FindItem(ctx, m.Key())
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return ledger.CreateItem(ctx, m.NewStockItem())
		case err != nil:
			return err
		default:
			return ledger.IncreaseQuantity(ctx, item, m.Quantity)
		}
	})
}

// StockOut records goods dispatched to a customer. It never creates an item:
// an unknown pair fails with domain.ErrItemNotFound and a request above the
// quantity on hand fails with domain.ErrInsufficientStock, both without
// changing anything.
func (u *StockUsecase) StockOut(ctx context.Context, m entity.Movement) (*entity.HistoryEntry, error) {
	return u.move(ctx, entity.TransactionStockOut, m, func(ctx context.Context, ledger ItemLedger) error {
		item, err := ledger.FindItem(ctx, m.Key())
		if err != nil {
			return err
		}
		if item.Quantity < m.Quantity {
			return fmt.Errorf("%w: %d on hand, %d requested", domain.ErrInsufficientStock, item.Quantity, m.Quantity)
		}
		return ledger.DecreaseQuantity(ctx, item, m.Quantity)
	})
}

// move validates m, holds the key lock and runs the ledger change and the
// history append in a single transaction.
func (u *StockUsecase) move(ctx context.Context, t entity.TransactionType, m entity.Movement,
	apply func(ctx context.Context, ledger ItemLedger) error) (*entity.HistoryEntry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	key := m.Key().String()
	unlock, err := u.locker.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire lock for %s: %w", domain.ErrStorage, key, err)
	}
	defer unlock()

	entry := m.HistoryEntry(t, u.newRef())
	err = u.repo.RunInTx(ctx, func(ledger ItemLedger, history HistoryLog) error {
		if err := apply(ctx, ledger); err != nil {
			return err
		}
		return history.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("stock movement recorded",
		"type", t,
		"item", m.ItemName,
		"company", m.CompanyName,
		"quantity", m.Quantity,
		"reference", entry.Reference,
	)
	return entry, nil
}

// ListStockItems returns the current ledger.
func (u *StockUsecase) ListStockItems(ctx context.Context) ([]entity.StockItem, error) {
	return u.repo.ListItems(ctx)
}

// ListHistory returns every recorded movement in the order it happened.
func (u *StockUsecase) ListHistory(ctx context.Context) ([]entity.HistoryEntry, error) {
	return u.repo.ListHistory(ctx)
}
