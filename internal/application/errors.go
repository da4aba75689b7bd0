package application

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when the requested snapshot does not exist in the
// content store.
var ErrNotFound = errors.New("application: not found")

// ValidationError captures field level validation issues that the hosting
// layer can surface to content authors at edit time.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface, naming the offending fields.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
