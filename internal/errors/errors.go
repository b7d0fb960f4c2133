// Package errors provides custom error types and utilities for ondus.
//
// This package provides error handling for various operations including:
// - Transport errors (the request never produced a response)
// - Decode errors (a successful response carried an unusable body)
// - Configuration and validation errors
// - Multi-error handling
//
// A non-200 response is not an error anywhere in ondus and has no type here.
package errors

import (
	"errors"
	"fmt"
)

// Error categories for ondus operations
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNetwork       = errors.New("network error")
	ErrDecode        = errors.New("decode error")
	ErrConfiguration = errors.New("configuration error")
)

// TransportError represents a request that could not be completed
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failure: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return errors.Is(target, ErrNetwork)
}

// NewTransportError creates a new transport error
func NewTransportError(method, url string, err error) *TransportError {
	return &TransportError{
		Method: method,
		URL:    url,
		Err:    err,
	}
}

// IsNetwork checks if an error is network-related
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// DecodeError represents a 200 response whose body did not decode into Target
type DecodeError struct {
	Method string
	URL    string
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: failed to decode response into %s: %v", e.Method, e.URL, e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return errors.Is(target, ErrDecode)
}

// NewDecodeError creates a new decode error
func NewDecodeError(method, url, target string, err error) *DecodeError {
	return &DecodeError{
		Method: method,
		URL:    url,
		Target: target,
		Err:    err,
	}
}

// IsDecode checks if an error is a response decoding failure
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// MultiError represents multiple errors that occurred together
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// Join creates a MultiError from multiple errors, filtering out nils
func Join(errs ...error) error {
	var nonNilErrors []error
	for _, err := range errs {
		if err != nil {
			nonNilErrors = append(nonNilErrors, err)
		}
	}

	if len(nonNilErrors) == 0 {
		return nil
	}
	if len(nonNilErrors) == 1 {
		return nonNilErrors[0]
	}

	return &MultiError{Errors: nonNilErrors}
}
