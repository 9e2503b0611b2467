package adapters

import (
	"time"

	"warehouse_backend/internal/feature/stock/domain/entity"
)

// StockItemModel is the GORM model for the stock_items table.
// item_name and company_name together form the business key.
type StockItemModel struct {
	ID                uint   `gorm:"primaryKey"`
	SupplierName      string `gorm:"size:255;not null"`
	Address           string `gorm:"size:512;not null"`
	ContactNumber     string `gorm:"size:64;not null"`
	CompanyName       string `gorm:"size:255;not null;uniqueIndex:stock_item_key,priority:2"`
	ItemName          string `gorm:"size:255;not null;uniqueIndex:stock_item_key,priority:1"`
	Quantity          int    `gorm:"not null;default:0;check:quantity >= 0"`
	UnitOfMeasurement string `gorm:"size:64;not null"`
	Date              string `gorm:"size:32;not null"`
	Timestamp         string `gorm:"size:64;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM.
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToEntity converts the GORM model to a domain entity.
func (m *StockItemModel) ToEntity() *entity.StockItem {
	return &entity.StockItem{
		ID:                m.ID,
		SupplierName:      m.SupplierName,
		Address:           m.Address,
		ContactNumber:     m.ContactNumber,
		CompanyName:       m.CompanyName,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		UnitOfMeasurement: m.UnitOfMeasurement,
		Date:              m.Date,
		Timestamp:         m.Timestamp,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// StockItemModelFromEntity converts a domain entity to a GORM model.
func StockItemModelFromEntity(s *entity.StockItem) *StockItemModel {
	return &StockItemModel{
		ID:                s.ID,
		SupplierName:      s.SupplierName,
		Address:           s.Address,
		ContactNumber:     s.ContactNumber,
		CompanyName:       s.CompanyName,
		ItemName:          s.ItemName,
		Quantity:          s.Quantity,
		UnitOfMeasurement: s.UnitOfMeasurement,
		Date:              s.Date,
		Timestamp:         s.Timestamp,
	}
}

// HistoryModel is the GORM model for the history table. Rows are inserted once and never updated.
type HistoryModel struct {
	ID                uint   `gorm:"primaryKey"`
	Reference         string `gorm:"size:36;not null;uniqueIndex"`
	TransactionType   string `gorm:"size:16;not null;index"`
	Name              string `gorm:"size:255;not null"`
	Address           string `gorm:"size:512;not null"`
	ContactNumber     string `gorm:"size:64;not null"`
	CompanyName       string `gorm:"size:255;not null"`
	ItemName          string `gorm:"size:255;not null"`
	Quantity          int    `gorm:"not null"`
	UnitOfMeasurement string `gorm:"size:64;not null"`
	Date              string `gorm:"size:32;not null"`
	Timestamp         string `gorm:"size:64;not null"`
	CreatedAt         time.Time
}

// TableName returns the table name for GORM.
func (HistoryModel) TableName() string {
	return "history"
}

func (m *HistoryModel) toEntity() entity.HistoryEntry {
	return entity.HistoryEntry{
		ID:                m.ID,
		Reference:         m.Reference,
		TransactionType:   entity.TransactionType(m.TransactionType),
		Name:              m.Name,
		Address:           m.Address,
		ContactNumber:     m.ContactNumber,
		CompanyName:       m.CompanyName,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		UnitOfMeasurement: m.UnitOfMeasurement,
		Date:              m.Date,
		Timestamp:         m.Timestamp,
		CreatedAt:         m.CreatedAt,
	}
}

func historyModelFromEntity(e *entity.HistoryEntry) *HistoryModel {
	return &HistoryModel{
		Reference:         e.Reference,
		TransactionType:   string(e.TransactionType),
		Name:              e.Name,
		Address:           e.Address,
		ContactNumber:     e.ContactNumber,
		CompanyName:       e.CompanyName,
		ItemName:          e.ItemName,
		Quantity:          e.Quantity,
		UnitOfMeasurement: e.UnitOfMeasurement,
		Date:              e.Date,
		Timestamp:         e.Timestamp,
	}
}

// Models lists every table owned by the stock feature, for migrations.
func Models() []any {
	return []any{&StockItemModel{}, &HistoryModel{}}
}
