// Package validate holds the pre-submission field checks shared by the
// login, registration and profile forms. The remote API stays the authority;
// these checks only stop requests that cannot possibly succeed.
package validate

import (
	"fmt"
	"strings"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
)

// FieldError names the offending field so forms can render the message inline.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return models.ErrValidation }

// NonEmpty rejects blank or whitespace-only values.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	return nil
}

// MinLength rejects values shorter than n characters. Empty values fail too,
// so it composes with NonEmpty rather than depending on it.
func MinLength(field, value string, n int) error {
	if len(strings.TrimSpace(value)) < n {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %d characters", field, n)}
	}
	return nil
}

// First returns the first failing check, or nil when all pass. Forms compose
// their rule set with it and surface one message at a time.
func First(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Registration rules: username non-empty and at least 3 characters,
// password at least 6.
func Registration(username, password string) error {
	return First(
		NonEmpty("username", username),
		MinLength("username", username, 3),
		NonEmpty("password", password),
		MinLength("password", password, 6),
	)
}

// Login rules: both fields non-empty, password at least 6 characters.
func Login(username, password string) error {
	return First(
		NonEmpty("username", username),
		NonEmpty("password", password),
		MinLength("password", password, 6),
	)
}
