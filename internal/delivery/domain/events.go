package domain

// Outbox event types emitted by the delivery queue.
const (
	EventDeliveryCreated       = "delivery.created"
	EventDeliveryUpdated       = "delivery.updated"
	EventDeliveryStatusChanged = "delivery.status_changed"
	EventDeliveryDeleted       = "delivery.deleted"
	EventDeliveryPromoted      = "delivery.promoted"
)

// EventPayload is the JSON body of every delivery outbox event.
type EventPayload struct {
	DeliveryID     string `json:"delivery_id"`
	OwnerUserID    string `json:"owner_user_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	PieceCount     int    `json:"piece_count"`
}

// NewEventPayload builds the payload for d. previous may be empty.
func NewEventPayload(d *Delivery, previous Status) EventPayload {
	return EventPayload{
		DeliveryID:     d.ID.String(),
		OwnerUserID:    d.OwnerUserID.String(),
		Status:         string(d.Status),
		PreviousStatus: string(previous),
		PieceCount:     d.PieceCount,
	}
}
