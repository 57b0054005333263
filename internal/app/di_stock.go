package app

import (
	"fmt"

	"github.com/allisson/deliveryqueue/internal/config"
	stockRepository "github.com/allisson/deliveryqueue/internal/stock/repository"
	stockUseCase "github.com/allisson/deliveryqueue/internal/stock/usecase"
)

// StockItemRepository returns the stock item repository for the configured driver.
func (c *Container) StockItemRepository() (stockUseCase.StockItemRepository, error) {
	var err error
	c.stockRepositoryInit.Do(func() {
		c.stockItemRepository, err = c.initStockItemRepository()
		if err != nil {
			c.initErrors["stockItemRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stockItemRepository"]; exists {
		return nil, storedErr
	}
	return c.stockItemRepository, nil
}

// StockItemUseCase returns the stock item use case.
func (c *Container) StockItemUseCase() (stockUseCase.StockItemUseCase, error) {
	var err error
	c.stockUseCaseInit.Do(func() {
		c.stockItemUseCase, err = c.initStockItemUseCase()
		if err != nil {
			c.initErrors["stockItemUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stockItemUseCase"]; exists {
		return nil, storedErr
	}
	return c.stockItemUseCase, nil
}

func (c *Container) initStockItemRepository() (stockUseCase.StockItemRepository, error) {
	if c.InMemory() {
		productRepository, err := c.ProductRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get product repository for stock item repository: %w", err)
		}
		return stockRepository.NewMemoryStockItemRepository(productRepository), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for stock item repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverPostgres:
		return stockRepository.NewPostgreSQLStockItemRepository(db), nil
	case config.DriverMySQL:
		return stockRepository.NewMySQLStockItemRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initStockItemUseCase() (stockUseCase.StockItemUseCase, error) {
	stockItemRepository, err := c.StockItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get stock item repository for stock item use case: %w", err)
	}

	productUseCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product use case for stock item use case: %w", err)
	}

	baseUseCase := stockUseCase.NewStockItemUseCase(stockItemRepository, productUseCase)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for stock item use case: %w", err)
		}
		return stockUseCase.NewStockItemUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
