package domain

import (
	"github.com/allisson/deliveryqueue/internal/errors"
)

// Domain-specific errors for user and token operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUserHasDeliveries indicates the user still owns deliveries and cannot be deleted.
	ErrUserHasDeliveries = errors.Wrap(errors.ErrConflict, "user still owns deliveries")

	// ErrNoUpdateFields indicates an update that supplies no field.
	ErrNoUpdateFields = errors.Wrap(errors.ErrInvalidInput, "at least one field must be supplied")

	// ErrNotAccountOwner indicates a caller changing an account other than its own.
	ErrNotAccountOwner = errors.Wrap(errors.ErrForbidden, "users may only change their own account")

	// ErrTokenNotFound indicates no token matches the given hash.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials covers unknown emails, wrong passwords and
	// unknown, expired or revoked tokens alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
