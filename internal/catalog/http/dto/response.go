package dto

import (
	"time"

	"github.com/allisson/deliveryqueue/internal/catalog/domain"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListProductsResponse wraps a page of products.
type ListProductsResponse struct {
	Data []ProductResponse `json:"data"`
}

// MapProductToResponse converts a domain product to an API response.
func MapProductToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// MapProductsToListResponse converts domain products to a list response.
func MapProductsToListResponse(products []*domain.Product) ListProductsResponse {
	data := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		data = append(data, MapProductToResponse(product))
	}
	return ListProductsResponse{Data: data}
}
