// Package dto provides data transfer objects for the delivery HTTP API.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	catalogDomain "github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/delivery/usecase"
	customValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// ItemRequest is a delivery line. ProductRef is a product ID or a product name.
type ItemRequest struct {
	ProductRef string `json:"productRef"`
	Order      int    `json:"order"`
}

// Validate checks that the product reference is present.
func (i ItemRequest) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProductRef, validation.Required, customValidation.NotBlank),
	)
}

func toItemRefs(items []ItemRequest) []catalogDomain.ItemRef {
	refs := make([]catalogDomain.ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, catalogDomain.ItemRef{Ref: item.ProductRef, Order: item.Order})
	}
	return refs
}

// CreateDeliveryRequest is the body of POST /v1/deliveries. Items must be
// present but may be empty.
type CreateDeliveryRequest struct {
	Description string        `json:"description"`
	Items       []ItemRequest `json:"items"`
}

// Validate checks if the create delivery request is valid.
func (r *CreateDeliveryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1000),
		),
		validation.Field(&r.Items, validation.NotNil),
	)
}

// ToInput converts the request into use case input for owner.
func (r *CreateDeliveryRequest) ToInput(owner uuid.UUID) usecase.CreateDeliveryInput {
	return usecase.CreateDeliveryInput{
		Description: r.Description,
		Items:       toItemRefs(r.Items),
		OwnerUserID: owner,
	}
}

// UpdateDeliveryRequest is the body of PUT /v1/deliveries/:id. Absent fields
// are left unchanged.
type UpdateDeliveryRequest struct {
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Items       *[]ItemRequest `json:"items"`
	PieceCount  *int           `json:"pieceCount"`
}

// Validate checks the supplied fields. Status values and the presence of at
// least one field are checked by the use case.
func (r *UpdateDeliveryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(1, 1000)),
		validation.Field(&r.PieceCount, validation.Min(0)),
		validation.Field(&r.Items),
	)
}

// ToInput converts the request into use case input.
func (r *UpdateDeliveryRequest) ToInput() usecase.UpdateDeliveryInput {
	input := usecase.UpdateDeliveryInput{
		Description: r.Description,
		Status:      r.Status,
		PieceCount:  r.PieceCount,
	}
	if r.Items != nil {
		refs := toItemRefs(*r.Items)
		input.Items = &refs
	}
	return input
}
