package service

import (
	"errors"
	"strings"

	"github.com/tnqbao/gau-resource-registry/entity"
)

// ErrIdentifierConflict is returned when a surrogate-id URN and an
// external identifier are both supplied but refer to different records.
var ErrIdentifierConflict = errors.New("urn and objectUrn do not match")

// ConstraintViolationError covers field validation failures and
// storage-level uniqueness conflicts.
type ConstraintViolationError struct {
	Violations []entity.FieldViolation
}

func (e *ConstraintViolationError) Error() string {
	if len(e.Violations) == 0 {
		return "constraint violation"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return "constraint violation: " + strings.Join(parts, "; ")
}

func uniquenessViolation(field string) *ConstraintViolationError {
	return &ConstraintViolationError{
		Violations: []entity.FieldViolation{{Field: field, Message: "already exists in this scope"}},
	}
}
