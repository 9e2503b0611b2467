package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warehouse_backend/internal/feature/stock/domain"
	"warehouse_backend/internal/feature/stock/domain/entity"
	"warehouse_backend/internal/feature/stock/usecase"
)

type historyLogGorm struct {
	db *gorm.DB
}

var _ usecase.HistoryLog = (*historyLogGorm)(nil)

// NewHistoryLog creates a history log bound to db, which may be a transaction.
func NewHistoryLog(db *gorm.DB) *historyLogGorm {
	return &historyLogGorm{db: db}
}

// Append inserts entry and copies the assigned ID and creation time back.
func (r *historyLogGorm) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	m := historyModelFromEntity(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("%w: append history: %w", domain.ErrStorage, err)
	}
	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

// ListAll returns every entry in insertion order.
func (r *historyLogGorm) ListAll(ctx context.Context) ([]entity.HistoryEntry, error) {
	var rows []HistoryModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list history: %w", domain.ErrStorage, err)
	}
	out := make([]entity.HistoryEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
