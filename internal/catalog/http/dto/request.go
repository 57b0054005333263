// Package dto provides data transfer objects for the catalog HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// CreateProductRequest contains the parameters for creating a product.
type CreateProductRequest struct {
	Name string `json:"name"`
}

// Validate checks if the create product request is valid.
func (r *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// UpdateProductRequest contains the new name of a product.
type UpdateProductRequest struct {
	Name string `json:"name"`
}

// Validate checks if the update product request is valid.
func (r *UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
