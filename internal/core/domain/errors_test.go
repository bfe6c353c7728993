package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrParse", ErrParse},
		{"ErrDomain", ErrDomain},
		{"ErrFit", ErrFit},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrRenderFailed", ErrRenderFailed},
		{"ErrNotFound", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{ErrParse, ErrDomain, ErrFit, ErrInvalidInput, ErrRenderFailed, ErrNotFound}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"parse", fmt.Errorf("%w: token 2", ErrParse), CodeParse},
		{"domain", fmt.Errorf("index 0: %w", ErrDomain), CodeDomain},
		{"fit", fmt.Errorf("forchheimer: %w", ErrFit), CodeFit},
		{"invalid", ErrInvalidInput, CodeInvalidRequest},
		{"deadline", fmt.Errorf("render: %w", context.DeadlineExceeded), CodeTimeout},
		{"canceled", context.Canceled, CodeCanceled},
		{"wrapped canceled", fmt.Errorf("render: %w", context.Canceled), CodeCanceled},
		{"not found", fmt.Errorf("setting x: %w", ErrNotFound), CodeNotFound},
		{"render", ErrRenderFailed, CodeInternal},
		{"unknown", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeOf(tt.err))
		})
	}
}

func TestErrorCode_IsClientError(t *testing.T) {
	assert.True(t, CodeParse.IsClientError())
	assert.True(t, CodeDomain.IsClientError())
	assert.True(t, CodeFit.IsClientError())
	assert.True(t, CodeInvalidRequest.IsClientError())
	assert.True(t, CodeNotFound.IsClientError())
	assert.True(t, CodeRateLimited.IsClientError())
	assert.True(t, CodeCanceled.IsClientError())
	assert.False(t, CodeTimeout.IsClientError())
	assert.False(t, CodeInternal.IsClientError())
	assert.Equal(t, "parse_error", CodeParse.String())
}
