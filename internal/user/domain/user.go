// Package domain defines the user and bearer token entities used to identify
// the caller of the delivery API.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered API caller. Deliveries record the user that created them.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
