package dto

import (
	"time"

	"github.com/allisson/deliveryqueue/internal/delivery/domain"
)

// ItemResponse is a stored delivery line. ProductRef is always the canonical product ID.
type ItemResponse struct {
	ProductRef string `json:"productRef"`
	Order      int    `json:"order"`
}

// DeliveryResponse represents a delivery in API responses.
type DeliveryResponse struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Items       []ItemResponse `json:"items"`
	OwnerUserID string         `json:"ownerUserId"`
	PieceCount  int            `json:"pieceCount"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ListDeliveriesResponse wraps a list of deliveries.
type ListDeliveriesResponse struct {
	Data []DeliveryResponse `json:"data"`
}

// MapDeliveryToResponse converts a domain delivery to an API response.
func MapDeliveryToResponse(delivery *domain.Delivery) DeliveryResponse {
	items := make([]ItemResponse, 0, len(delivery.Items))
	for _, item := range delivery.Items {
		items = append(items, ItemResponse{ProductRef: item.ProductID.String(), Order: item.Order})
	}

	return DeliveryResponse{
		ID:          delivery.ID.String(),
		Description: delivery.Description,
		Status:      delivery.Status.String(),
		Items:       items,
		OwnerUserID: delivery.OwnerUserID.String(),
		PieceCount:  delivery.PieceCount,
		CreatedAt:   delivery.CreatedAt,
		UpdatedAt:   delivery.UpdatedAt,
	}
}

// MapDeliveriesToListResponse converts domain deliveries to a list response.
func MapDeliveriesToListResponse(deliveries []*domain.Delivery) ListDeliveriesResponse {
	data := make([]DeliveryResponse, 0, len(deliveries))
	for _, delivery := range deliveries {
		data = append(data, MapDeliveryToResponse(delivery))
	}
	return ListDeliveriesResponse{Data: data}
}
