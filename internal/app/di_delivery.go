package app

import (
	"fmt"

	"github.com/allisson/deliveryqueue/internal/config"
	deliveryRepository "github.com/allisson/deliveryqueue/internal/delivery/repository"
	deliveryUseCase "github.com/allisson/deliveryqueue/internal/delivery/usecase"
)

// DeliveryRepository returns the delivery store for the configured driver.
func (c *Container) DeliveryRepository() (deliveryUseCase.DeliveryRepository, error) {
	var err error
	c.deliveryRepositoryInit.Do(func() {
		c.deliveryRepository, err = c.initDeliveryRepository()
		if err != nil {
			c.initErrors["deliveryRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deliveryRepository"]; exists {
		return nil, storedErr
	}
	return c.deliveryRepository, nil
}

// DeliveryUseCase returns the delivery queue manager.
func (c *Container) DeliveryUseCase() (deliveryUseCase.DeliveryUseCase, error) {
	var err error
	c.deliveryUseCaseInit.Do(func() {
		c.deliveryUseCase, err = c.initDeliveryUseCase()
		if err != nil {
			c.initErrors["deliveryUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deliveryUseCase"]; exists {
		return nil, storedErr
	}
	return c.deliveryUseCase, nil
}

func (c *Container) initDeliveryRepository() (deliveryUseCase.DeliveryRepository, error) {
	if c.InMemory() {
		return deliveryRepository.NewMemoryDeliveryRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for delivery repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverPostgres:
		return deliveryRepository.NewPostgreSQLDeliveryRepository(db), nil
	case config.DriverMySQL:
		return deliveryRepository.NewMySQLDeliveryRepository(db), nil
	default:
		return nil, c.unsupportedDriver()
	}
}

func (c *Container) initDeliveryUseCase() (deliveryUseCase.DeliveryUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for delivery use case: %w", err)
	}

	deliveryRepo, err := c.DeliveryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery repository for delivery use case: %w", err)
	}

	productUseCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product resolver for delivery use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for delivery use case: %w", err)
	}

	queueMetrics, err := c.QueueMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get queue metrics for delivery use case: %w", err)
	}

	baseUseCase := deliveryUseCase.NewDeliveryUseCase(
		txManager,
		deliveryRepo,
		productUseCase,
		outboxRepo,
		queueMetrics,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for delivery use case: %w", err)
		}
		return deliveryUseCase.NewDeliveryUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
