// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package errors defines the categorized errors reported by the prettyjson
// command-line tool.
package errors

import (
	"errors"
	"fmt"
)

// Standard application errors.
var (
	ErrNoValue      = errors.New("no value was produced")
	ErrPathNotFound = errors.New("path not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrorTypeInput  ErrorType = "input"
	ErrorTypeConfig ErrorType = "config"
	ErrorTypePath   ErrorType = "path"
	ErrorTypeOutput ErrorType = "output"
)

// AppError is an application error with a category and context.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error { return e.Err }

// Is reports whether target is an *AppError of the same type, for use with
// errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(typ ErrorType, message string, err error) *AppError {
	return &AppError{Type: typ, Message: message, Err: err}
}

// NewInputError creates an error related to opening or reading input.
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewConfigError creates an error related to loading configuration.
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewPathError creates an error related to selecting a value by path.
func NewPathError(message string, err error) *AppError {
	return newError(ErrorTypePath, message, err)
}

// NewOutputError creates an error related to writing output.
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a message describing err suitable for display.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypePath:
			return fmt.Sprintf("Path error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case errors.Is(err, ErrNoValue):
		return "Error: The input did not contain a value."
	case errors.Is(err, ErrPathNotFound):
		return "Error: The requested path does not exist in the input."
	case errors.Is(err, ErrInvalidPath):
		return "Error: Invalid file path. Please provide a valid file path."
	}
	return fmt.Sprintf("Error: %v", err)
}
