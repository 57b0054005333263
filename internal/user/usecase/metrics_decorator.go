package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/metrics"
	"github.com/allisson/deliveryqueue/internal/user/domain"
)

const metricsDomain = "user"

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{next: useCase, metrics: m}
}

func (u *userUseCaseWithMetrics) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_register", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetByID(ctx, id)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, input)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	metrics.Observe(ctx, u.metrics, metricsDomain, "user_delete", start, err)
	return err
}

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{next: useCase, metrics: m}
}

func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	email, password string,
) (*domain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, email, password)
	metrics.Observe(ctx, t.metrics, metricsDomain, "token_issue", start, err)
	return output, err
}

func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, tokenHash string) (*domain.User, error) {
	start := time.Now()
	user, err := t.next.Authenticate(ctx, tokenHash)
	metrics.Observe(ctx, t.metrics, metricsDomain, "token_authenticate", start, err)
	return user, err
}
