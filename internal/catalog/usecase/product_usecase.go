package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	appValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// productUseCase implements ProductUseCase.
type productUseCase struct {
	productRepo ProductRepository
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository) ProductUseCase {
	return &productUseCase{productRepo: productRepo}
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrProductNameRequired
	}

	err := validation.Validate(name,
		appValidation.NotBlank,
		validation.Length(1, 255).Error("product name must be between 1 and 255 characters"),
	)
	return appValidation.WrapValidationError(err)
}

// Create validates the name and stores a new product. Name uniqueness is
// enforced by the repository.
func (p *productUseCase) Create(ctx context.Context, name string) (*domain.Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *productUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return p.productRepo.Get(ctx, id)
}

func (p *productUseCase) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return p.productRepo.GetByName(ctx, name)
}

func (p *productUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	return p.productRepo.List(ctx, offset, limit)
}

func (p *productUseCase) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product, err := p.productRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(name)
	product.UpdatedAt = time.Now().UTC()

	if err := p.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product. Deliveries that reference it are left untouched.
func (p *productUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return p.productRepo.Delete(ctx, id)
}

// Resolve implements the ID-then-name lookup. Only a not-found result falls
// through to the next lookup; any other repository error is returned as is.
func (p *productUseCase) Resolve(ctx context.Context, ref string) (uuid.UUID, error) {
	if strings.TrimSpace(ref) == "" {
		return uuid.Nil, domain.ErrProductRefRequired
	}

	if id, err := uuid.Parse(ref); err == nil {
		product, err := p.productRepo.Get(ctx, id)
		if err == nil {
			return product.ID, nil
		}
		if !apperrors.Is(err, domain.ErrProductNotFound) {
			return uuid.Nil, err
		}
	}

	product, err := p.productRepo.GetByName(ctx, ref)
	if err != nil {
		if apperrors.Is(err, domain.ErrProductNotFound) {
			return uuid.Nil, apperrors.Wrapf(domain.ErrProductNotFound, "product reference %q", ref)
		}
		return uuid.Nil, err
	}
	return product.ID, nil
}

func (p *productUseCase) ResolveItems(
	ctx context.Context,
	items []domain.ItemRef,
) ([]domain.ResolvedItem, error) {
	resolved := make([]domain.ResolvedItem, 0, len(items))
	for _, item := range items {
		productID, err := p.Resolve(ctx, item.Ref)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, domain.ResolvedItem{ProductID: productID, Order: item.Order})
	}
	return resolved, nil
}
