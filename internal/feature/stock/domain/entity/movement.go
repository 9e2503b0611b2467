package entity

import (
	"fmt"

	"warehouse_backend/internal/feature/stock/domain"
)

// Movement is a stock-in or stock-out request. PartyName holds the supplier
// for a stock-in and the customer for a stock-out.
type Movement struct {
	PartyName         string
	Address           string
	ContactNumber     string
	CompanyName       string
	ItemName          string
	Quantity          int
	UnitOfMeasurement string
	Date              string
	Timestamp         string
}

// Key returns the ledger key the movement applies to.
func (m Movement) Key() ItemKey {
	return ItemKey{ItemName: m.ItemName, CompanyName: m.CompanyName}
}

// Validate rejects movements with empty text fields or a non-positive quantity.
func (m Movement) Validate() error {
	if err := m.Key().Validate(); err != nil {
		return err
	}
	if err := requireFields(
		field{"party name", m.PartyName},
		field{"address", m.Address},
		field{"contact number", m.ContactNumber},
		field{"unit of measurement", m.UnitOfMeasurement},
		field{"date", m.Date},
		field{"timestamp", m.Timestamp},
	); err != nil {
		return err
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	return nil
}

// NewStockItem builds the ledger row created by the first stock-in of a key.
func (m Movement) NewStockItem() *StockItem {
	return &StockItem{
		SupplierName:      m.PartyName,
		Address:           m.Address,
		ContactNumber:     m.ContactNumber,
		CompanyName:       m.CompanyName,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		UnitOfMeasurement: m.UnitOfMeasurement,
		Date:              m.Date,
		Timestamp:         m.Timestamp,
	}
}

// HistoryEntry builds the audit record for the movement.
func (m Movement) HistoryEntry(t TransactionType, reference string) *HistoryEntry {
	return &HistoryEntry{
		Reference:         reference,
		TransactionType:   t,
		Name:              m.PartyName,
		Address:           m.Address,
		ContactNumber:     m.ContactNumber,
		CompanyName:       m.CompanyName,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		UnitOfMeasurement: m.UnitOfMeasurement,
		Date:              m.Date,
		Timestamp:         m.Timestamp,
	}
}
