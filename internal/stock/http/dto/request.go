// Package dto provides data transfer objects for the stock HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/deliveryqueue/internal/stock/usecase"
	customValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// CreateStockItemRequest is the body of POST /v1/stock. ProductRef is a
// product ID or a product name; a zero quantity is allowed.
type CreateStockItemRequest struct {
	ProductRef string `json:"productRef"`
	Quantity   *int   `json:"quantity"`
}

// Validate checks if the create stock item request is valid.
func (r *CreateStockItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ProductRef, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Quantity, validation.NotNil, validation.Min(0)),
	)
}

// ToInput converts the request into use case input.
func (r *CreateStockItemRequest) ToInput() usecase.CreateStockItemInput {
	return usecase.CreateStockItemInput{ProductRef: r.ProductRef, Quantity: r.Quantity}
}

// UpdateStockItemRequest is the body of PUT /v1/stock/:id. Omitted fields are
// left unchanged.
type UpdateStockItemRequest struct {
	ProductRef *string `json:"productRef"`
	Quantity   *int    `json:"quantity"`
}

// Validate rejects an empty body, a blank product reference and a negative quantity.
func (r *UpdateStockItemRequest) Validate() error {
	if r.ProductRef == nil && r.Quantity == nil {
		return validation.Errors{"body": validation.NewError(
			"validation_no_fields", "at least one of productRef or quantity is required",
		)}
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.ProductRef, validation.NilOrNotEmpty, customValidation.NotBlank),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
}

// ToInput converts the request into use case input.
func (r *UpdateStockItemRequest) ToInput() usecase.UpdateStockItemInput {
	return usecase.UpdateStockItemInput{ProductRef: r.ProductRef, Quantity: r.Quantity}
}
