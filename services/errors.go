package services

import "fmt"

// ValidationError rejects a create/update request before any persistence
// attempt. Handlers map it to a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(`field "%s" %s`, e.Field, e.Message)
}

func validationErrorf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
