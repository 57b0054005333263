package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/user/domain"
	"github.com/allisson/deliveryqueue/internal/user/service"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	userRepo        UserRepository
	tokenRepo       TokenRepository
	passwordService service.PasswordService
	tokenService    service.TokenService
	expiration      time.Duration
	now             func() time.Time
}

// NewTokenUseCase creates a new TokenUseCase issuing tokens valid for expiration.
func NewTokenUseCase(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	passwordService service.PasswordService,
	tokenService service.TokenService,
	expiration time.Duration,
) TokenUseCase {
	return &tokenUseCase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		expiration:      expiration,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Issue returns ErrInvalidCredentials for an unknown email and for a wrong
// password, so callers cannot discover registered addresses.
func (t *tokenUseCase) Issue(ctx context.Context, email, password string) (*domain.IssueTokenOutput, error) {
	user, err := t.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.passwordService.Compare(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := t.now()
	token := &domain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		UserID:    user.ID,
		ExpiresAt: now.Add(t.expiration),
		CreatedAt: now,
	}
	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &domain.IssueTokenOutput{PlainToken: plainToken, ExpiresAt: token.ExpiresAt}, nil
}

// Authenticate fails with ErrInvalidCredentials when the token is unknown,
// expired or revoked, or its user no longer exists.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*domain.User, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.IsValid(t.now()) {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := t.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
