package models

import (
	"fmt"
	"strings"
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field validation failures.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// AddMessage records a validation failure for a field.
func (v *ValidationErrors) AddMessage(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any failures were recorded.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Err returns the aggregate as an error, or nil when empty.
func (v *ValidationErrors) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}
	messages := make([]string, 0, len(v.Errors))
	for _, err := range v.Errors {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("%d validation errors: %s", len(v.Errors), strings.Join(messages, "; "))
}
