package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/deliveryqueue/internal/database"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	outboxDomain "github.com/allisson/deliveryqueue/internal/outbox/domain"
	"github.com/allisson/deliveryqueue/internal/user/domain"
	"github.com/allisson/deliveryqueue/internal/user/service"
	appValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	outboxRepo      OutboxEventRepository
	passwordService service.PasswordService
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	outboxRepo OutboxEventRepository,
	passwordService service.PasswordService,
) UserUseCase {
	return &userUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		passwordService: passwordService,
	}
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("name is required"),
		appValidation.NotBlank,
		validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
	}
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("email is required"),
		appValidation.NotBlank,
		appValidation.Email,
		validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		appValidation.PasswordStrength{
			MinLength:      8,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	}
}

func validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name, nameRules()...),
		validation.Field(&input.Email, emailRules()...),
		validation.Field(&input.Password, passwordRules()...),
	)
	return appValidation.WrapValidationError(err)
}

// validateUpdateUserInput applies the registration rules to the supplied fields only.
func validateUpdateUserInput(input UpdateUserInput) error {
	if input.Name == nil && input.Email == nil && input.Password == nil {
		return domain.ErrNoUpdateFields
	}

	errs := validation.Errors{}
	if input.Name != nil {
		errs["name"] = validation.Validate(*input.Name, nameRules()...)
	}
	if input.Email != nil {
		errs["email"] = validation.Validate(*input.Email, emailRules()...)
	}
	if input.Password != nil {
		errs["password"] = validation.Validate(*input.Password, passwordRules()...)
	}
	return appValidation.WrapValidationError(errs.Filter())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// recordEvent writes a user event to the outbox within the caller's transaction.
func (uc *userUseCase) recordEvent(ctx context.Context, eventType string, user *domain.User) error {
	payload, err := json.Marshal(domain.UserEventPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event payload")
	}

	now := time.Now().UTC()
	event := &outboxDomain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(payload),
		Status:    outboxDomain.OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// Register creates a user and records a user.created outbox event in the same transaction.
func (uc *userUseCase) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventUserCreated, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *userUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// Update changes the supplied fields. A new password is hashed before it is
// stored; taking another user's email fails with ErrUserAlreadyExists.
func (uc *userUseCase) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if err := validateUpdateUserInput(input); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Password != nil {
		passwordHash, err := uc.passwordService.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}
	user.UpdatedAt = time.Now().UTC()

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventUserUpdated, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user together with its tokens and records user.deleted.
func (uc *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.userRepo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recordEvent(ctx, domain.EventUserDeleted, user)
	})
}
