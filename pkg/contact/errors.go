package contact

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrContactNotFound is returned when no visible contact matches the ID
	// for the requesting owner
	ErrContactNotFound = errors.New("contact not found")

	// ErrCategoryNotFound is returned when a referenced category does not exist
	ErrCategoryNotFound = errors.New("category not found")
)

// ValidationErrors maps field names to their first failing rule's message
type ValidationErrors map[string]string

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+ve[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
