package usecase

import (
	"context"

	"warehouse_backend/internal/feature/stock/domain/entity"
)

// ItemLedger owns the stock item rows.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ItemLedger interface {
	// FindItem returns the item stored under key, or domain.ErrItemNotFound.
	FindItem(ctx context.Context, key entity.ItemKey) (*entity.StockItem, error)

	// CreateItem inserts a new item. It fails with domain.ErrValidation when a
	// required field is empty.
	CreateItem(ctx context.Context, item *entity.StockItem) error

	// IncreaseQuantity adds delta to the stored quantity and to item.
	IncreaseQuantity(ctx context.Context, item *entity.StockItem, delta int) error

	// DecreaseQuantity subtracts delta from the stored quantity and from item.
	// It fails with domain.ErrInsufficientStock when delta exceeds the quantity on hand.
	DecreaseQuantity(ctx context.Context, item *entity.StockItem, delta int) error
}

// HistoryLog is the append-only movement log.
type HistoryLog interface {
	// Append inserts entry and assigns its ID.
	Append(ctx context.Context, entry *entity.HistoryEntry) error
}

// StockRepository gives the usecase read access to both tables and a
// transactional boundary for writes.
type StockRepository interface {
	// ListItems returns every stock item ordered by ID.
	ListItems(ctx context.Context) ([]entity.StockItem, error)

	// ListHistory returns every history entry in insertion order.
	ListHistory(ctx context.Context) ([]entity.HistoryEntry, error)

	// RunInTx calls fn with a ledger and a history log bound to one
	// transaction. The transaction commits only if fn returns nil.
	RunInTx(ctx context.Context, fn func(ledger ItemLedger, history HistoryLog) error) error
}

// KeyLocker serialises work on a single key.
type KeyLocker interface {
	// Lock blocks until the key is held or ctx is done. The returned function
	// releases the key and must be called exactly once.
	Lock(ctx context.Context, key string) (func(), error)
}
