// Package domain defines the product catalog entities and the types used to
// resolve caller-supplied product references.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/errors"
)

// Product is a uniquely named catalog entry. Deliveries reference products by ID.
type Product struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemRef is a delivery line item as supplied by a caller: Ref is either a
// product ID or a product name.
type ItemRef struct {
	Ref   string
	Order int
}

// ResolvedItem is an ItemRef after resolution to a canonical product ID.
type ResolvedItem struct {
	ProductID uuid.UUID
	Order     int
}

// Domain-specific errors for catalog operations.
var (
	// ErrProductNotFound indicates neither the ID nor the name lookup matched.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrProductAlreadyExists indicates a product with the same name exists.
	ErrProductAlreadyExists = errors.Wrap(errors.ErrConflict, "product already exists")

	// ErrProductNameRequired indicates an empty product name.
	ErrProductNameRequired = errors.Wrap(errors.ErrInvalidInput, "product name is required")

	// ErrProductRefRequired indicates an item without a product reference.
	ErrProductRefRequired = errors.Wrap(errors.ErrInvalidInput, "product reference is required")
)
