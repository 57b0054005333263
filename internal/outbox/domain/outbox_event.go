// Package domain defines the transactional outbox event written alongside
// delivery queue changes.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the processing state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent is a queue change recorded in the same transaction as the change itself.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkProcessed flags the event as handled at now.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkAttemptFailed records a failed processing attempt. The event becomes
// failed once it has been retried maxRetries times and stays pending before that.
func (e *OutboxEvent) MarkAttemptFailed(err error, maxRetries int, now time.Time) {
	e.Retries++
	msg := err.Error()
	e.LastError = &msg
	e.UpdatedAt = now
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}
