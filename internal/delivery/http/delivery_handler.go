// Package http provides HTTP handlers for the delivery queue.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
	"github.com/allisson/deliveryqueue/internal/delivery/http/dto"
	deliveryUseCase "github.com/allisson/deliveryqueue/internal/delivery/usecase"
	apperrors "github.com/allisson/deliveryqueue/internal/errors"
	"github.com/allisson/deliveryqueue/internal/httputil"
	userHTTP "github.com/allisson/deliveryqueue/internal/user/http"
	customValidation "github.com/allisson/deliveryqueue/internal/validation"
)

const sortRecent = "recent"

// DeliveryHandler handles HTTP requests for delivery queue operations. All
// routes expect AuthenticationMiddleware to have run.
type DeliveryHandler struct {
	deliveryUseCase deliveryUseCase.DeliveryUseCase
	logger          *slog.Logger
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(deliveryUseCase deliveryUseCase.DeliveryUseCase, logger *slog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryUseCase: deliveryUseCase,
		logger:          logger,
	}
}

func (h *DeliveryHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid delivery id format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// CreateHandler creates a delivery owned by the authenticated user.
// POST /v1/deliveries - Returns 201 Created.
func (h *DeliveryHandler) CreateHandler(c *gin.Context) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	delivery, err := h.deliveryUseCase.Create(c.Request.Context(), req.ToInput(user.ID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapDeliveryToResponse(delivery))
}

// GetHandler retrieves a delivery by ID.
// GET /v1/deliveries/:id
func (h *DeliveryHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	delivery, err := h.deliveryUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeliveryToResponse(delivery))
}

// ListHandler lists deliveries, oldest first unless sort=recent.
// GET /v1/deliveries?status=Pendente&mine=true&sort=recent&offset=0&limit=50
func (h *DeliveryHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := domain.ListFilter{Offset: offset, Limit: limit}

	switch c.Query("sort") {
	case "":
	case sortRecent:
		filter.SortRecent = true
	default:
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid sort parameter: only %q is supported", sortRecent), h.logger)
		return
	}

	if raw, present := c.GetQuery("status"); present {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid status parameter: %q", raw), h.logger)
			return
		}
		filter.Status = &status
	}

	mine, err := httputil.ParseBoolQuery(c, "mine")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if mine {
		user, ok := userHTTP.GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
			return
		}
		filter.OwnerUserID = &user.ID
	}

	deliveries, err := h.deliveryUseCase.List(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeliveriesToListResponse(deliveries))
}

// SlotHandler lists the occupants of an active slot. A healthy queue has at
// most one.
// GET /v1/deliveries/slots/:status
func (h *DeliveryHandler) SlotHandler(c *gin.Context) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid slot: %q", c.Param("status")), h.logger)
		return
	}

	deliveries, err := h.deliveryUseCase.ListBySlot(c.Request.Context(), status)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeliveriesToListResponse(deliveries))
}

// UpdateHandler applies a partial update.
// PUT /v1/deliveries/:id
func (h *DeliveryHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	delivery, err := h.deliveryUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeliveryToResponse(delivery))
}

// DeleteHandler deletes a delivery and returns the removed record.
// DELETE /v1/deliveries/:id - Returns 200 OK.
func (h *DeliveryHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	delivery, err := h.deliveryUseCase.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeliveryToResponse(delivery))
}
