package entity

import "time"

// TransactionType classifies a history entry.
type TransactionType string

const (
	// TransactionStockIn records goods received from a supplier.
	TransactionStockIn TransactionType = "stock_in"
	// TransactionStockOut records goods dispatched to a customer.
	TransactionStockOut TransactionType = "stock_out"
)

// HistoryEntry is an immutable record of a completed stock movement.
type HistoryEntry struct {
	ID                uint
	Reference         string
	TransactionType   TransactionType
	Name              string
	Address           string
	ContactNumber     string
	CompanyName       string
	ItemName          string
	Quantity          int
	UnitOfMeasurement string
	Date              string
	Timestamp         string
	CreatedAt         time.Time
}
