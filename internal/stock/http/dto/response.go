package dto

import (
	"time"

	"github.com/allisson/deliveryqueue/internal/stock/domain"
)

// ProductSummary identifies the product a stock item counts.
type ProductSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockItemResponse is the API view of a stock item.
type StockItemResponse struct {
	ID        string         `json:"id"`
	Product   ProductSummary `json:"product"`
	Quantity  int            `json:"quantity"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ListStockItemsResponse is the body of GET /v1/stock.
type ListStockItemsResponse struct {
	Data []StockItemResponse `json:"data"`
}

// MapStockItemToResponse converts a domain stock item to an API response.
func MapStockItemToResponse(item *domain.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:        item.ID.String(),
		Product:   ProductSummary{ID: item.ProductID.String(), Name: item.ProductName},
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// MapStockItemsToListResponse converts domain stock items to a list response.
func MapStockItemsToListResponse(items []*domain.StockItem) ListStockItemsResponse {
	data := make([]StockItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, MapStockItemToResponse(item))
	}
	return ListStockItemsResponse{Data: data}
}
