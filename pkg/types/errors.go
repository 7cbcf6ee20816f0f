package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Object operation errors. Test with errors.Is; the returned errors wrap
// these sentinels with context.
var (
	// ErrInvalidArgument reports a required reference (attribute, value,
	// configuration, target, category, name) that is absent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConstraintViolation reports a category or data type mismatch
	// detected before a value is attached.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrIllegalState reports that a single-match lookup found more than one
	// value or relation for the same identifier.
	ErrIllegalState = errors.New("illegal state")
)

// Catalog errors.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)

// Constraint violation reasons.
const (
	ReasonCategoryMismatch = "category mismatch"
	ReasonTypeMismatch     = "type mismatch"
)

// ConstraintViolationError carries the diagnostics of a rejected value.
// It matches ErrConstraintViolation under errors.Is.
type ConstraintViolationError struct {
	Reason            string
	Attribute         AttributeIdentifier
	ObjectCategory    CategoryIdentifier
	AttributeCategory CategoryIdentifier
	Expected          DataType
	Actual            DataType
	Value             string
}

func (e *ConstraintViolationError) Error() string {
	if e.Reason == ReasonCategoryMismatch {
		return fmt.Sprintf("%s: object category %s doesn't match attribute %s category %s",
			e.Reason, e.ObjectCategory, e.Attribute, e.AttributeCategory)
	}
	return fmt.Sprintf("%s: attribute %s expects %s, got %s %s",
		e.Reason, e.Attribute, e.Expected, e.Actual, e.Value)
}

func (e *ConstraintViolationError) Unwrap() error {
	return ErrConstraintViolation
}

// invalidArgument wraps ErrInvalidArgument naming the missing argument.
func invalidArgument(name string) error {
	return errors.Wrapf(ErrInvalidArgument, "%s is required", name)
}
