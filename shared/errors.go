// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package shared

import (
	"errors"
	"fmt"
)

// ErrIntegrationNotFound is returned when no visible integration matches the
// requested id, provider and organization. At validation time it surfaces as
// a ValidationError, at execution time it is swallowed - the integration was
// removed after the rule was saved and the rule stays active.
var ErrIntegrationNotFound = errors.New("integration not found")

// ValidationError is a field level error on the rule action form.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IntegrationError wraps a failure of the provider client during issue
// creation. It propagates to the caller, the rule configuration is untouched
// and will be retried on the next matching event.
type IntegrationError struct {
	Provider string
	Err      error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s integration error: %v", e.Provider, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// KeyPathError reports a missing element while walking the dotted issue key
// path through a create-issue response. It is never swallowed - it indicates
// misconfiguration that should be visible.
type KeyPathError struct {
	Path    string
	Missing string
}

func (e *KeyPathError) Error() string {
	return fmt.Sprintf("no element %q in create-issue response for key path %q", e.Missing, e.Path)
}
