package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	outboxDomain "github.com/allisson/deliveryqueue/internal/outbox/domain"
	"github.com/allisson/deliveryqueue/internal/user/domain"
)

// MockTxManager is a mock implementation of database.TxManager.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Token, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository.
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPasswordService is a mock implementation of service.PasswordService.
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) Compare(plain, hash string) bool {
	args := m.Called(plain, hash)
	return args.Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

var validInput = RegisterUserInput{
	Name:     "Maria Silva",
	Email:    " Maria@Example.com ",
	Password: "SecurePass123!",
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		passwords := &MockPasswordService{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, passwords)

		passwords.On("Hash", validInput.Password).Return("$argon2id$hash", nil).Once()
		txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		var recorded *outboxDomain.OutboxEvent
		outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*outboxDomain.OutboxEvent) }).
			Return(nil).Once()

		user, err := uc.Register(ctx, validInput)

		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", user.Email)
		assert.Equal(t, "$argon2id$hash", user.PasswordHash)

		require.NotNil(t, recorded)
		assert.Equal(t, domain.EventUserCreated, recorded.EventType)
		var payload domain.UserEventPayload
		require.NoError(t, json.Unmarshal([]byte(recorded.Payload), &payload))
		assert.Equal(t, user.ID, payload.UserID)
		assert.Equal(t, user.Email, payload.Email)

		txManager.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		passwords := &MockPasswordService{}
		uc := NewUserUseCase(&MockTxManager{}, &MockUserRepository{}, &MockOutboxEventRepository{}, passwords)

		input := validInput
		input.Password = "password"
		_, err := uc.Register(ctx, input)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		passwords.AssertNotCalled(t, "Hash", mock.Anything)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		uc := NewUserUseCase(&MockTxManager{}, &MockUserRepository{}, &MockOutboxEventRepository{}, &MockPasswordService{})

		input := validInput
		input.Email = "not-an-email"
		_, err := uc.Register(ctx, input)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		passwords := &MockPasswordService{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, passwords)

		passwords.On("Hash", mock.Anything).Return("$argon2id$hash", nil).Once()
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("Create", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists).Once()

		_, err := uc.Register(ctx, validInput)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_OutboxFailure", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		passwords := &MockPasswordService{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, passwords)

		passwords.On("Hash", mock.Anything).Return("$argon2id$hash", nil).Once()
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", ctx, mock.Anything).Return(errors.New("outbox down")).Once()

		_, err := uc.Register(ctx, validInput)

		assert.ErrorContains(t, err, "failed to create outbox event")
	})
}

func storedUser() *domain.User {
	created := time.Now().UTC().Add(-time.Hour)
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		PasswordHash: "$argon2id$old",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func strPtr(s string) *string { return &s }

func TestUserUseCase_List(t *testing.T) {
	ctx := context.Background()
	userRepo := &MockUserRepository{}
	uc := NewUserUseCase(&MockTxManager{}, userRepo, &MockOutboxEventRepository{}, &MockPasswordService{})

	users := []*domain.User{storedUser()}
	userRepo.On("List", ctx, 20, 10).Return(users, nil).Once()

	got, err := uc.List(ctx, 20, 10)

	require.NoError(t, err)
	assert.Equal(t, users, got)
	userRepo.AssertExpectations(t)
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NameAndEmail", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		passwords := &MockPasswordService{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, passwords)
		user := storedUser()

		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		var recorded *outboxDomain.OutboxEvent
		outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*outboxDomain.OutboxEvent) }).
			Return(nil).Once()

		got, err := uc.Update(ctx, user.ID, UpdateUserInput{
			Name:  strPtr("  Maria Souza "),
			Email: strPtr(" Maria.Souza@Example.com"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Maria Souza", got.Name)
		assert.Equal(t, "maria.souza@example.com", got.Email)
		assert.Equal(t, "$argon2id$old", got.PasswordHash)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
		require.NotNil(t, recorded)
		assert.Equal(t, domain.EventUserUpdated, recorded.EventType)
		passwords.AssertNotCalled(t, "Hash", mock.Anything)
		userRepo.AssertExpectations(t)
	})

	t.Run("Success_PasswordIsRehashed", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		passwords := &MockPasswordService{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, passwords)
		user := storedUser()

		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		passwords.On("Hash", "NewSecure456!").Return("$argon2id$new", nil).Once()
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, err := uc.Update(ctx, user.ID, UpdateUserInput{Password: strPtr("NewSecure456!")})

		require.NoError(t, err)
		assert.Equal(t, "$argon2id$new", got.PasswordHash)
		assert.Equal(t, "Maria Silva", got.Name)
		passwords.AssertExpectations(t)
	})

	t.Run("Error_NoFields", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		uc := NewUserUseCase(&MockTxManager{}, userRepo, &MockOutboxEventRepository{}, &MockPasswordService{})

		_, err := uc.Update(ctx, uuid.Must(uuid.NewV7()), UpdateUserInput{})

		assert.ErrorIs(t, err, domain.ErrNoUpdateFields)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		uc := NewUserUseCase(&MockTxManager{}, &MockUserRepository{}, &MockOutboxEventRepository{}, &MockPasswordService{})

		_, err := uc.Update(ctx, uuid.Must(uuid.NewV7()), UpdateUserInput{Password: strPtr("short")})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		uc := NewUserUseCase(&MockTxManager{}, &MockUserRepository{}, &MockOutboxEventRepository{}, &MockPasswordService{})

		_, err := uc.Update(ctx, uuid.Must(uuid.NewV7()), UpdateUserInput{Name: strPtr("   ")})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		uc := NewUserUseCase(&MockTxManager{}, userRepo, &MockOutboxEventRepository{}, &MockPasswordService{})
		id := uuid.Must(uuid.NewV7())

		userRepo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.Update(ctx, id, UpdateUserInput{Name: strPtr("Maria")})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, &MockPasswordService{})
		user := storedUser()

		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("Update", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists).Once()

		_, err := uc.Update(ctx, user.ID, UpdateUserInput{Email: strPtr("joao@example.com")})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, &MockPasswordService{})
		user := storedUser()

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		userRepo.On("Delete", ctx, user.ID).Return(nil).Once()

		var recorded *outboxDomain.OutboxEvent
		outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*outboxDomain.OutboxEvent) }).
			Return(nil).Once()

		require.NoError(t, uc.Delete(ctx, user.ID))

		require.NotNil(t, recorded)
		assert.Equal(t, domain.EventUserDeleted, recorded.EventType)
		var payload domain.UserEventPayload
		require.NoError(t, json.Unmarshal([]byte(recorded.Payload), &payload))
		assert.Equal(t, user.Email, payload.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		uc := NewUserUseCase(txManager, userRepo, &MockOutboxEventRepository{}, &MockPasswordService{})
		id := uuid.Must(uuid.NewV7())

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound).Once()

		err := uc.Delete(ctx, id)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Error_OwnsDeliveries", func(t *testing.T) {
		txManager := &MockTxManager{}
		userRepo := &MockUserRepository{}
		outboxRepo := &MockOutboxEventRepository{}
		uc := NewUserUseCase(txManager, userRepo, outboxRepo, &MockPasswordService{})
		user := storedUser()

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		userRepo.On("Delete", ctx, user.ID).Return(domain.ErrUserHasDeliveries).Once()

		err := uc.Delete(ctx, user.ID)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "maria@example.com", PasswordHash: "$argon2id$hash"}

	t.Run("Success", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		tokenRepo := &MockTokenRepository{}
		passwords := &MockPasswordService{}
		tokens := &MockTokenService{}
		uc := NewTokenUseCase(userRepo, tokenRepo, passwords, tokens, time.Hour)

		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(user, nil).Once()
		passwords.On("Compare", "SecurePass123!", user.PasswordHash).Return(true).Once()
		tokens.On("GenerateToken").Return("plain-token", "token-hash", nil).Once()
		tokenRepo.On("Create", ctx, mock.MatchedBy(func(token *domain.Token) bool {
			return token.TokenHash == "token-hash" && token.UserID == user.ID &&
				token.ExpiresAt.Sub(token.CreatedAt) == time.Hour
		})).Return(nil).Once()

		output, err := uc.Issue(ctx, "MARIA@example.com", "SecurePass123!")

		require.NoError(t, err)
		assert.Equal(t, "plain-token", output.PlainToken)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		uc := NewTokenUseCase(userRepo, &MockTokenRepository{}, &MockPasswordService{}, &MockTokenService{}, time.Hour)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.Issue(ctx, "nobody@example.com", "SecurePass123!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		passwords := &MockPasswordService{}
		tokens := &MockTokenService{}
		uc := NewTokenUseCase(userRepo, &MockTokenRepository{}, passwords, tokens, time.Hour)

		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		passwords.On("Compare", "wrong", user.PasswordHash).Return(false).Once()

		_, err := uc.Issue(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "GenerateToken")
	})
}

func TestTokenUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "maria@example.com"}
	now := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		tokenRepo := &MockTokenRepository{}
		uc := NewTokenUseCase(userRepo, tokenRepo, &MockPasswordService{}, &MockTokenService{}, time.Hour)

		tokenRepo.On("GetByTokenHash", ctx, "hash").
			Return(&domain.Token{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		got, err := uc.Authenticate(ctx, "hash")

		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		tokenRepo := &MockTokenRepository{}
		uc := NewTokenUseCase(userRepo, tokenRepo, &MockPasswordService{}, &MockTokenService{}, time.Hour)

		tokenRepo.On("GetByTokenHash", ctx, "hash").
			Return(&domain.Token{UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}, nil).Once()

		_, err := uc.Authenticate(ctx, "hash")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		uc := NewTokenUseCase(&MockUserRepository{}, tokenRepo, &MockPasswordService{}, &MockTokenService{}, time.Hour)

		tokenRepo.On("GetByTokenHash", ctx, "hash").Return(nil, domain.ErrTokenNotFound).Once()

		_, err := uc.Authenticate(ctx, "hash")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Error_UserGone", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		tokenRepo := &MockTokenRepository{}
		uc := NewTokenUseCase(userRepo, tokenRepo, &MockPasswordService{}, &MockTokenService{}, time.Hour)

		tokenRepo.On("GetByTokenHash", ctx, "hash").
			Return(&domain.Token{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.Authenticate(ctx, "hash")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Error_StoreFailurePropagates", func(t *testing.T) {
		tokenRepo := &MockTokenRepository{}
		uc := NewTokenUseCase(&MockUserRepository{}, tokenRepo, &MockPasswordService{}, &MockTokenService{}, time.Hour)
		storeErr := errors.New("connection reset")

		tokenRepo.On("GetByTokenHash", ctx, "hash").Return(nil, storeErr).Once()

		_, err := uc.Authenticate(ctx, "hash")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
