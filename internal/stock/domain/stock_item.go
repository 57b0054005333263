// Package domain defines stock items: on-hand quantities of catalog products.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/errors"
)

// StockItem records the quantity on hand of one product. ProductName is read
// from the catalog and is never stored with the item.
type StockItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for stock operations.
var (
	// ErrStockItemNotFound indicates the requested stock item does not exist.
	ErrStockItemNotFound = errors.Wrap(errors.ErrNotFound, "stock item not found")

	// ErrQuantityRequired indicates a create without a quantity.
	ErrQuantityRequired = errors.Wrap(errors.ErrInvalidInput, "quantity is required")

	// ErrNegativeQuantity indicates a quantity below zero.
	ErrNegativeQuantity = errors.Wrap(errors.ErrInvalidInput, "quantity cannot be negative")

	// ErrNoUpdateFields indicates an update that supplies neither product nor quantity.
	ErrNoUpdateFields = errors.Wrap(errors.ErrInvalidInput, "at least one of product or quantity must be supplied")
)
