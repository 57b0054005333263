package domain

import "github.com/google/uuid"

// User lifecycle events recorded in the outbox.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEventPayload is the outbox payload of every user event.
type UserEventPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}
