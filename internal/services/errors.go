package services

import (
	"errors"
	"fmt"
	"strings"

	"farmgate/internal/domain"
	"farmgate/internal/validate"
)

var ErrBadCreds = errors.New("invalid username or password")

// ValidationError aggregates field-path violations for a rejected payload.
type ValidationError struct {
	Fields []validate.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// InvalidStatusError means the requested status is outside the enum.
type InvalidStatusError struct {
	Status domain.OrderStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// InvalidTransitionError means the status is known but the edge is illegal.
type InvalidTransitionError struct {
	From, To domain.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
