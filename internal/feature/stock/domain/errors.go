// Package domain defines domain-level errors for the stock feature.
package domain

import "errors"

// Errors returned by the item ledger, the history log and the movement usecase.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrValidation indicates malformed, missing or non-positive input.
	// It is always returned before any mutation takes place.
	ErrValidation = errors.New("validation failed")

	// ErrItemNotFound indicates that no stock item exists for the requested (item, company) pair.
	ErrItemNotFound = errors.New("item not found in stock")

	// ErrInsufficientStock indicates that a stock-out asked for more than is on hand.
	ErrInsufficientStock = errors.New("not enough stock available")

	// ErrStorage indicates a failure of the underlying persistence layer.
	ErrStorage = errors.New("storage failure")
)
