package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	t.Run("matches ErrValidation through wrapping", func(t *testing.T) {
		var errs ValidationErrors
		errs.Add("email", "notanemail is not a valid email address")

		wrapped := fmt.Errorf("create customer: %w", errs)

		assert.ErrorIs(t, wrapped, ErrValidation)
		var target ValidationErrors
		assert.True(t, errors.As(wrapped, &target))
		assert.Len(t, target, 1)
	})

	t.Run("groups messages by field in insertion order", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "email", Message: "first"},
			{Field: "fullName", Message: "only"},
			{Field: "email", Message: "second"},
		}

		grouped := errs.ByField()

		assert.Equal(t, []string{"first", "second"}, grouped["email"])
		assert.Equal(t, []string{"only"}, grouped["fullName"])
	})

	t.Run("error text names the fields", func(t *testing.T) {
		errs := ValidationErrors{{Field: "email", Message: "bad"}, {Field: "githubUsername", Message: "bad"}}
		assert.Equal(t, "validation failed: 2 errors (email, githubUsername)", errs.Error())
		assert.False(t, ValidationErrors{}.HasErrors())
	})
}

func TestWrapErrors(t *testing.T) {
	dbErr := WrapDatabaseError(errors.New("connection reset"), "failed to insert customer")
	assert.ErrorIs(t, dbErr, ErrDatabase)
	assert.Equal(t, "[DB_ERROR] failed to insert customer", dbErr.Error())

	upErr := WrapUpstreamError("github", "rate limited")
	assert.ErrorIs(t, upErr, ErrUpstreamUnavailable)
	assert.NotErrorIs(t, upErr, ErrValidation)
}
