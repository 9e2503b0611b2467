// Package entity defines the domain models for the stock feature.
package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"warehouse_backend/internal/feature/stock/domain"
)

// ItemKey identifies a stock item. At most one StockItem exists per key.
type ItemKey struct {
	ItemName    string
	CompanyName string
}

// String returns a stable representation used for lock and cache keys.
func (k ItemKey) String() string {
	return escape(k.CompanyName) + "/" + escape(k.ItemName)
}

// Validate reports whether both parts of the key are present.
func (k ItemKey) Validate() error {
	if strings.TrimSpace(k.ItemName) == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(k.CompanyName) == "" {
		return fmt.Errorf("%w: company name is required", domain.ErrValidation)
	}
	return nil
}

// escape percent-encodes "%" and "/" (among others) so joined keys stay unique.
func escape(s string) string {
	return url.PathEscape(s)
}

// StockItem is a ledger row: an item held for a company together with its
// on-hand quantity and the supplier details of the first receipt.
type StockItem struct {
	ID                uint
	SupplierName      string
	Address           string
	ContactNumber     string
	CompanyName       string
	ItemName          string
	Quantity          int
	UnitOfMeasurement string
	Date              string
	Timestamp         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Key returns the composite identity of the item.
func (s *StockItem) Key() ItemKey {
	return ItemKey{ItemName: s.ItemName, CompanyName: s.CompanyName}
}

// Validate checks the fields required to create a new ledger row.
func (s *StockItem) Validate() error {
	if err := s.Key().Validate(); err != nil {
		return err
	}
	if err := requireFields(
		field{"supplier name", s.SupplierName},
		field{"address", s.Address},
		field{"contact number", s.ContactNumber},
		field{"unit of measurement", s.UnitOfMeasurement},
		field{"date", s.Date},
		field{"timestamp", s.Timestamp},
	); err != nil {
		return err
	}
	if s.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	return nil
}

// Increase adds delta to the on-hand quantity.
func (s *StockItem) Increase(delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	s.Quantity += delta
	return nil
}

// Decrease removes delta from the on-hand quantity. The item is left unchanged
// when delta exceeds the quantity on hand.
func (s *StockItem) Decrease(delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
	}
	if s.Quantity < delta {
		return fmt.Errorf("%w: %d on hand, %d requested", domain.ErrInsufficientStock, s.Quantity, delta)
	}
	s.Quantity -= delta
	return nil
}

type field struct {
	name  string
	value string
}

// requireFields returns ErrValidation naming the first empty field.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	return nil
}
