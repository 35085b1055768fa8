package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrConflict           = errors.New("user with provided email or username already exists")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmptyFilter        = errors.New("provide department or position to search")
)

// ValidationError carries per-field messages for input the core refuses.
type ValidationError struct {
	Fields map[string]string
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
