package domain

import (
	"github.com/allisson/deliveryqueue/internal/errors"
)

// Domain-specific errors for delivery queue operations.
var (
	// ErrDeliveryNotFound indicates the delivery does not exist.
	ErrDeliveryNotFound = errors.Wrap(errors.ErrNotFound, "delivery not found")

	// ErrSlotOccupied indicates another delivery already holds the target slot.
	ErrSlotOccupied = errors.Wrap(errors.ErrConflict, "slot already occupied")

	// ErrStatusConflict indicates the status changed between read and write.
	ErrStatusConflict = errors.Wrap(errors.ErrConflict, "delivery status changed concurrently")

	// ErrInvalidStatusTransition indicates the requested status is unknown or not reachable.
	ErrInvalidStatusTransition = errors.Wrap(errors.ErrInvalidInput, "invalid status transition")

	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid status")

	// ErrInvalidSlot indicates a status that is not one of the active slots.
	ErrInvalidSlot = errors.Wrap(errors.ErrInvalidInput, "status is not an active slot")

	ErrDescriptionRequired = errors.Wrap(errors.ErrInvalidInput, "description is required")
	ErrNoUpdateFields      = errors.Wrap(errors.ErrInvalidInput, "at least one field must be provided")
	ErrInvalidPieceCount   = errors.Wrap(errors.ErrInvalidInput, "piece count must not be negative")
	ErrOwnerRequired       = errors.Wrap(errors.ErrInvalidInput, "owner is required")
)
