// Package dto provides data transfer objects for the user HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/deliveryqueue/internal/user/usecase"
	appValidation "github.com/allisson/deliveryqueue/internal/validation"
)

// RegisterUserRequest is the body of POST /v1/users.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request shape. Password strength is enforced by the use case.
func (r *RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, appValidation.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// IssueTokenRequest is the body of POST /v1/token.
type IssueTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateUserRequest is the body of PUT /v1/users/:id. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate rejects an empty body and blank values. Password strength is
// enforced by the use case.
func (r *UpdateUserRequest) Validate() error {
	if r.Name == nil && r.Email == nil && r.Password == nil {
		return validation.Errors{"body": validation.NewError("validation_no_fields", "at least one of name, email or password is required")}
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, appValidation.NotBlank),
		validation.Field(&r.Email, validation.NilOrNotEmpty, appValidation.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty),
	)
}

// ToInput converts the request to the use case input.
func (r *UpdateUserRequest) ToInput() usecase.UpdateUserInput {
	return usecase.UpdateUserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}
