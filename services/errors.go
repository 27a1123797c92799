package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"category-services-backend/utils"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrServiceNotFound     = errors.New("service not found in this category")
	ErrCategoryHasServices = errors.New("cannot delete category with services, remove all services first")
)

// ValidationError carries every rule a write violated. Nothing is persisted
// when it is returned.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validationError(fields []utils.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

const (
	minNameLength = 2
	maxNameLength = 255
)

func checkName(field, label, name string) []utils.FieldError {
	if name == "" {
		return []utils.FieldError{{Field: field, Message: label + " is required"}}
	}
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return []utils.FieldError{{Field: field, Message: label + " must be between 2 and 255 characters"}}
	}
	return nil
}
