package app

import (
	"fmt"

	catalogHTTP "github.com/allisson/deliveryqueue/internal/catalog/http"
	deliveryHTTP "github.com/allisson/deliveryqueue/internal/delivery/http"
	"github.com/allisson/deliveryqueue/internal/http"
	stockHTTP "github.com/allisson/deliveryqueue/internal/stock/http"
	userHTTP "github.com/allisson/deliveryqueue/internal/user/http"
)

const serviceName = "deliveryqueue"

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	productUseCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product use case for http server: %w", err)
	}

	stockItemUseCase, err := c.StockItemUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get stock item use case for http server: %w", err)
	}

	deliveryUseCase, err := c.DeliveryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery use case for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	routerConfig := http.RouterConfig{
		ProductHandler:   catalogHTTP.NewProductHandler(productUseCase, logger),
		StockHandler:     stockHTTP.NewStockItemHandler(stockItemUseCase, logger),
		DeliveryHandler:  deliveryHTTP.NewDeliveryHandler(deliveryUseCase, logger),
		UserHandler:      userHTTP.NewUserHandler(userUseCase, logger),
		TokenHandler:     userHTTP.NewTokenHandler(tokenUseCase, logger),
		AuthMiddleware:   userHTTP.AuthenticationMiddleware(tokenUseCase, c.TokenService(), logger),
		MetricsNamespace: c.config.MetricsNamespace,
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
		ServiceName:      serviceName,
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		routerConfig.MeterProvider = provider.MeterProvider()
	}

	var server *http.Server
	if c.InMemory() {
		server = http.NewServer(nil, c.config.ServerHost, c.config.ServerPort, logger).WithInMemoryStore()
	} else {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for http server: %w", err)
		}
		server = http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	}

	server.SetupRouter(routerConfig)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
