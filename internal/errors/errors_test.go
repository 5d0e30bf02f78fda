// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to open input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to open input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeConfig,
				Message: "indent is invalid",
			},
			expected: "config: indent is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := NewOutputError("write failed", wrappedErr)

	assert.Equal(t, wrappedErr, appErr.Unwrap())
	assert.ErrorIs(t, fmt.Errorf("context: %w", appErr), wrappedErr)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{"same type", NewInputError("a", nil), NewInputError("b", nil), true},
		{"different type", NewInputError("a", nil), NewConfigError("a", nil), false},
		{"not an app error", NewPathError("a", nil), errors.New("a"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.appError, tt.target))
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		err  *AppError
		want ErrorType
	}{
		{NewInputError("m", cause), ErrorTypeInput},
		{NewConfigError("m", cause), ErrorTypeConfig},
		{NewPathError("m", cause), ErrorTypePath},
		{NewOutputError("m", cause), ErrorTypeOutput},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Type)
		assert.Equal(t, "m", tt.err.Message)
		assert.ErrorIs(t, tt.err, cause)
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"input", NewInputError("cannot open x.json", nil), "Input error: cannot open x.json"},
		{"config", NewConfigError("bad indent", nil), "Configuration error: bad indent"},
		{"path", NewPathError(`key "a" not found`, ErrPathNotFound), `Path error: key "a" not found`},
		{"output", NewOutputError("broken pipe", nil), "Output error: broken pipe"},
		{"unknown type", &AppError{Type: ErrorType("other"), Message: "odd"}, "Error: odd"},
		{"wrapped app error", fmt.Errorf("run: %w", NewInputError("gone", nil)), "Input error: gone"},
		{"no value", ErrNoValue, "Error: The input did not contain a value."},
		{"path not found", fmt.Errorf("x: %w", ErrPathNotFound), "Error: The requested path does not exist in the input."},
		{"invalid path", ErrInvalidPath, "Error: Invalid file path. Please provide a valid file path."},
		{"generic", errors.New("something else"), "Error: something else"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
