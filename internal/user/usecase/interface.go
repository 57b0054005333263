// Package usecase implements user accounts (registration and management)
// and bearer token issuance and authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	outboxDomain "github.com/allisson/deliveryqueue/internal/outbox/domain"
	"github.com/allisson/deliveryqueue/internal/user/domain"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	// Update writes name, email, password hash and updated_at.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes a user and its tokens. A user that still owns
	// deliveries is kept and domain.ErrUserHasDeliveries is returned.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenRepository defines bearer token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Token, error)
}

// OutboxEventRepository records user events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput contains the optional fields of a user update. Nil means
// "leave unchanged".
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserUseCase defines user business logic operations.
type UserUseCase interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenUseCase defines bearer token operations.
type TokenUseCase interface {
	// Issue verifies the credentials and returns a new plain token.
	Issue(ctx context.Context, email, password string) (*domain.IssueTokenOutput, error)
	// Authenticate resolves a token hash to its user.
	Authenticate(ctx context.Context, tokenHash string) (*domain.User, error)
}
