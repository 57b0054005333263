package app

import (
	"fmt"

	catalogRepository "github.com/allisson/deliveryqueue/internal/catalog/repository"
	catalogUseCase "github.com/allisson/deliveryqueue/internal/catalog/usecase"
	"github.com/allisson/deliveryqueue/internal/config"
)

// ProductRepository returns the product repository for the configured driver.
func (c *Container) ProductRepository() (catalogUseCase.ProductRepository, error) {
	var err error
	c.productRepositoryInit.Do(func() {
		c.productRepository, err = c.initProductRepository()
		if err != nil {
			c.initErrors["productRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productRepository"]; exists {
		return nil, storedErr
	}
	return c.productRepository, nil
}

// ProductUseCase returns the product use case. It also serves as the
// delivery queue's product resolver.
func (c *Container) ProductUseCase() (catalogUseCase.ProductUseCase, error) {
	var err error
	c.productUseCaseInit.Do(func() {
		c.productUseCase, err = c.initProductUseCase()
		if err != nil {
			c.initErrors["productUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productUseCase"]; exists {
		return nil, storedErr
	}
	return c.productUseCase, nil
}

func (c *Container) initProductRepository() (catalogUseCase.ProductRepository, error) {
	if c.InMemory() {
		return catalogRepository.NewMemoryProductRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverPostgres:
		return catalogRepository.NewPostgreSQLProductRepository(db), nil
	case config.DriverMySQL:
		return catalogRepository.NewMySQLProductRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initProductUseCase() (catalogUseCase.ProductUseCase, error) {
	productRepository, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewProductUseCase(productRepository)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
		}
		return catalogUseCase.NewProductUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
