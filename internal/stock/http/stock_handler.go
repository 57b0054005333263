// Package http provides HTTP handlers for stock items.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/httputil"
	"github.com/allisson/deliveryqueue/internal/stock/http/dto"
	stockUseCase "github.com/allisson/deliveryqueue/internal/stock/usecase"
	customValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// StockItemHandler handles HTTP requests for stock operations.
type StockItemHandler struct {
	stockUseCase stockUseCase.StockItemUseCase
	logger       *slog.Logger
}

// NewStockItemHandler creates a new stock item handler.
func NewStockItemHandler(useCase stockUseCase.StockItemUseCase, logger *slog.Logger) *StockItemHandler {
	return &StockItemHandler{stockUseCase: useCase, logger: logger}
}

func (h *StockItemHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid stock item id format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// CreateHandler creates a stock item.
// POST /v1/stock - Returns 201 Created.
func (h *StockItemHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.stockUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapStockItemToResponse(item))
}

// GetHandler retrieves a stock item by ID.
// GET /v1/stock/:id
func (h *StockItemHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.stockUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStockItemToResponse(item))
}

// ListHandler lists stock items ordered by creation.
// GET /v1/stock?offset=0&limit=50
func (h *StockItemHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	items, err := h.stockUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStockItemsToListResponse(items))
}

// UpdateHandler changes the product and/or quantity of a stock item.
// PUT /v1/stock/:id
func (h *StockItemHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.stockUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStockItemToResponse(item))
}

// DeleteHandler deletes a stock item.
// DELETE /v1/stock/:id - Returns 204 No Content.
func (h *StockItemHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.stockUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
