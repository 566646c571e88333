package listing

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports malformed or missing write/search input with a
// message per offending field. The request carrying it is rejected outright.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func missingFieldsError(fields []string) *ValidationError {
	err := &ValidationError{Fields: make(map[string]string, len(fields))}
	for _, f := range fields {
		err.Fields[f] = "is required"
	}
	return err
}
