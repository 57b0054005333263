package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/deliveryqueue/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	tests := []struct {
		name     string
		password string
		errMsg   string
	}{
		{name: "valid password", password: "Entrega2024"},
		{name: "too short", password: "Ab1", errMsg: "at least 8 characters"},
		{name: "missing uppercase", password: "entrega2024", errMsg: "uppercase letter"},
		{name: "missing lowercase", password: "ENTREGA2024", errMsg: "lowercase letter"},
		{name: "missing number", password: "EntregaRapida", errMsg: "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("non-string value", func(t *testing.T) {
		assert.Error(t, rule.Validate(42))
	})
}

func TestPasswordStrength_RequireSpecial(t *testing.T) {
	rule := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	assert.NoError(t, rule.Validate("Senha-Forte-123"))
	assert.NoError(t, rule.Validate("SecurePass123!"))

	err := rule.Validate("Entrega2024")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "special character")
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email   string
		isValid bool
	}{
		{"operador@fabrica.com.br", true},
		{"first.last+tag@example.com", true},
		{"missing-at.example.com", false},
		{"user@nodot", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := validation.Validate(tt.email, Email)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("Mesa", NoWhitespace))
	assert.Error(t, validation.Validate(" Mesa", NoWhitespace))
	assert.Error(t, validation.Validate("Mesa ", NoWhitespace))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("Entrega zona sul", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
	assert.Error(t, validation.Validate("\t\n", NotBlank))
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), assert.AnError.Error())
	})
}
