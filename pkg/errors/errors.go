// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeDuplicateName indicates a parameter, steady-state entry, or
	// setting was registered more than once under the same name.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"
	// ErrCodeUnknownParameter indicates a lookup for an unregistered parameter
	// or steady-state name.
	ErrCodeUnknownParameter ErrorCode = "UNKNOWN_PARAMETER"
	// ErrCodeUnknownSetting indicates a lookup for an unregistered setting key.
	ErrCodeUnknownSetting ErrorCode = "UNKNOWN_SETTING"
	// ErrCodeInvalidRange indicates malformed grid bounds, sizes, or an index
	// layout that fails its consistency checks.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"
	// ErrCodeCircularSetting indicates a derived setting referenced a key that
	// is not yet defined, which would require circular or lazy evaluation.
	ErrCodeCircularSetting ErrorCode = "CIRCULAR_SETTING"
	// ErrCodeConvergence indicates a steady-state solve failed to converge
	// within its iteration budget.
	ErrCodeConvergence ErrorCode = "CONVERGENCE"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// IsCode reports whether err or any error in its chain is a StructuredError
// carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code == code
	}
	return false
}
