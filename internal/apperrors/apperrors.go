// Package apperrors defines the application error taxonomy shared by the
// service and handler layers: validation failures and business-rule
// violations map to 400, lookup misses to 404, everything else to 500.
package apperrors

import "fmt"

// ValidationError reports a missing or malformed request field
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidation creates a ValidationError with a formatted message
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup miss for a named resource
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFound creates a NotFoundError for the given resource name
func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// BusinessRuleError reports a request that is well-formed but violates a
// business precondition (e.g. triggering a call about a product the customer
// never bought)
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string {
	return e.Msg
}

// NewBusinessRule creates a BusinessRuleError with a formatted message
func NewBusinessRule(format string, args ...interface{}) *BusinessRuleError {
	return &BusinessRuleError{Msg: fmt.Sprintf(format, args...)}
}
