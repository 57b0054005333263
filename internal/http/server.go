// Package http provides the HTTP server, its router and the cross-cutting
// gin middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"

	catalogHTTP "github.com/allisson/deliveryqueue/internal/catalog/http"
	deliveryHTTP "github.com/allisson/deliveryqueue/internal/delivery/http"
	"github.com/allisson/deliveryqueue/internal/metrics"
	stockHTTP "github.com/allisson/deliveryqueue/internal/stock/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server.
type Server struct {
	db       *sql.DB
	inMemory bool
	server   *http.Server
	router   *gin.Engine
	logger   *slog.Logger
}

// NewServer creates a new HTTP server. db is pinged by the readiness check;
// pass nil together with WithInMemoryStore when no database backs the store.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// WithInMemoryStore marks the server as running without a database, so the
// readiness check does not require one.
func (s *Server) WithInMemoryStore() *Server {
	s.inMemory = true
	return s
}

// RouterConfig bundles the handlers and options SetupRouter wires together.
type RouterConfig struct {
	ProductHandler  *catalogHTTP.ProductHandler
	StockHandler    *stockHTTP.StockItemHandler
	DeliveryHandler *deliveryHTTP.DeliveryHandler
	UserHandler     UserHandler
	TokenHandler    IssueTokenHandler
	// AuthMiddleware guards every /v1 route except registration and token issuance.
	AuthMiddleware gin.HandlerFunc

	MeterProvider    metric.MeterProvider
	MetricsNamespace string

	CORSEnabled      bool
	CORSAllowOrigins string
	ServiceName      string
}

// UserHandler is implemented by the user account handler.
type UserHandler interface {
	RegisterHandler(c *gin.Context)
	ListHandler(c *gin.Context)
	GetHandler(c *gin.Context)
	UpdateHandler(c *gin.Context)
	DeleteHandler(c *gin.Context)
}

// IssueTokenHandler is implemented by the token issuance handler.
type IssueTokenHandler interface {
	IssueTokenHandler(c *gin.Context)
}

// SetupRouter builds the gin engine with middleware and all API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public endpoints
	v1.POST("/users", cfg.UserHandler.RegisterHandler)
	v1.POST("/token", cfg.TokenHandler.IssueTokenHandler)

	authenticated := v1.Group("")
	authenticated.Use(cfg.AuthMiddleware)

	users := authenticated.Group("/users")
	{
		users.GET("", cfg.UserHandler.ListHandler)
		users.GET("/:id", cfg.UserHandler.GetHandler)
		users.PUT("/:id", cfg.UserHandler.UpdateHandler)
		users.DELETE("/:id", cfg.UserHandler.DeleteHandler)
	}

	products := authenticated.Group("/products")
	{
		products.POST("", cfg.ProductHandler.CreateHandler)
		products.GET("", cfg.ProductHandler.ListHandler)
		products.GET("/:id", cfg.ProductHandler.GetHandler)
		products.PUT("/:id", cfg.ProductHandler.UpdateHandler)
		products.DELETE("/:id", cfg.ProductHandler.DeleteHandler)
	}

	stock := authenticated.Group("/stock")
	{
		stock.POST("", cfg.StockHandler.CreateHandler)
		stock.GET("", cfg.StockHandler.ListHandler)
		stock.GET("/:id", cfg.StockHandler.GetHandler)
		stock.PUT("/:id", cfg.StockHandler.UpdateHandler)
		stock.DELETE("/:id", cfg.StockHandler.DeleteHandler)
	}

	deliveries := authenticated.Group("/deliveries")
	{
		deliveries.POST("", cfg.DeliveryHandler.CreateHandler)
		deliveries.GET("", cfg.DeliveryHandler.ListHandler)
		deliveries.GET("/slots/:status", cfg.DeliveryHandler.SlotHandler)
		deliveries.GET("/:id", cfg.DeliveryHandler.GetHandler)
		deliveries.PUT("/:id", cfg.DeliveryHandler.UpdateHandler)
		deliveries.DELETE("/:id", cfg.DeliveryHandler.DeleteHandler)
	}

	s.router = router
}

// Handler returns the configured router, or nil before SetupRouter.
func (s *Server) Handler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the delivery store is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.inMemory {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"components": gin.H{"database": "memory"},
		})
		return
	}

	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
