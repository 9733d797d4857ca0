package validate

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError maps a field name to its failure messages.
type ValidationError map[string][]string

// Add records a message for field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Error lists failures in field order, e.g. "email: is required; password: is invalid".
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		for _, msg := range e[f] {
			parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
		}
	}
	return strings.Join(parts, "; ")
}
