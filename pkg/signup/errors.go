package signup

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrSessionExpired is returned when no pending registration exists for
	// the session, either because it was never created or its staging TTL
	// lapsed. The caller must restart the registration flow.
	ErrSessionExpired = errors.New("registration session expired, please register again")

	// ErrRegistrationDisabled is returned when registration is turned off
	ErrRegistrationDisabled = errors.New("registration is currently disabled")
)

// ValidationErrors maps field names to their first failing rule's message.
// It implements error so services can return it directly.
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
