// Package domain defines the delivery entity, its status state machine and
// the errors raised by the delivery queue.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a product line of a delivery. Order is caller-assigned and not
// required to be unique or contiguous.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Order     int       `json:"order"`
}

// Delivery is a unit of work moving through the queue.
type Delivery struct {
	ID          uuid.UUID
	Description string
	Status      Status
	Items       []Item
	OwnerUserID uuid.UUID
	PieceCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy of the delivery.
func (d *Delivery) Clone() *Delivery {
	c := *d
	c.Items = append([]Item(nil), d.Items...)
	return &c
}

// ListFilter narrows and orders a delivery listing.
type ListFilter struct {
	Status      *Status
	OwnerUserID *uuid.UUID
	// SortRecent orders by creation time descending instead of ascending.
	SortRecent bool
	Offset     int
	Limit      int
}

// Matches reports whether d passes the status and owner filters.
func (f ListFilter) Matches(d *Delivery) bool {
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.OwnerUserID != nil && d.OwnerUserID != *f.OwnerUserID {
		return false
	}
	return true
}
