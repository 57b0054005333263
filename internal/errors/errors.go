// Package errors holds the five failure classes the delivery queue reports.
//
// Every domain error wraps exactly one class: a delivery that would take an
// occupied "Em Rota" or "Producao" slot is a conflict, a product reference
// that resolves to nothing is not found, a write on a finished delivery is
// invalid input, and touching another user's account is forbidden. The HTTP
// layer only looks at the class, so domain packages can add errors without
// teaching the transport about them.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing deliveries, products, stock items and users.
	// A product reference that matches neither an id nor a name lands here too.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers writes rejected by current state: an active slot
	// already held by another delivery, a duplicate product name or email,
	// and deleting a user who still owns deliveries.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput covers requests that can never succeed as sent, such as
	// an unknown status, a transition out of Entregue or Cancelada, or an
	// update with no fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means the bearer token is missing, expired or unknown.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but acts on an account
	// that is not theirs.
	ErrForbidden = errors.New("forbidden")
)

// classes is ordered by precedence when an error wraps more than one class.
var classes = []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden}

// Kind returns the class err belongs to, or nil for unclassified errors
// (store outages, driver failures) that must surface as internal errors.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range classes {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}

// Wrap prefixes err with message, keeping its class reachable through Is.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message, typically naming the delivery or
// product involved.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target. Repositories use
// it to pull driver codes out of *pq.Error and *mysql.MySQLError.
func As(err error, target any) bool {
	return errors.As(err, target)
}
