package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/attestia/vcschema/constraint"
)

// ErrNoSchemas is returned when a Validator is constructed without any
// schemas.
var ErrNoSchemas = errors.New("validation: at least one schema is required")

// SchemaNotFoundError reports a schema id missing from the registry,
// whether looked up directly or through a $ref.
type SchemaNotFoundError struct {
	ID string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("validation: schema %q not found", e.ID)
}

// DuplicateSchemaError reports two registered schemas sharing an id.
type DuplicateSchemaError struct {
	ID string
}

func (e *DuplicateSchemaError) Error() string {
	return fmt.Sprintf("validation: duplicate schema id %q", e.ID)
}

// CyclicReferenceError reports a $ref chain that revisits a schema.
type CyclicReferenceError struct {
	Stack []string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("validation: cyclic schema reference: %s", strings.Join(e.Stack, " -> "))
}

// ValidationError carries every retained constraint violation for one
// failed Validate call, together with the object snapshot as it stood
// after the cleanup, coercion and nullify passes. It is never mutated
// after construction.
type ValidationError struct {
	SchemaID   string
	Object     map[string]any
	Violations []constraint.Violation

	// Partial records that cleanup or coercion did not fully complete
	// and the constraint check ran over a partially processed object.
	Partial bool
}

func newValidationError(schemaID string, object map[string]any, violations []constraint.Violation, partial bool) *ValidationError {
	return &ValidationError{
		SchemaID:   schemaID,
		Object:     object,
		Violations: violations,
		Partial:    partial,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%q validation failed", e.SchemaID)
}

// MarshalJSON emits the wire shape consumed by callers:
// code, object, message, schemaId and the violation list.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	violations := e.Violations
	if violations == nil {
		violations = []constraint.Violation{}
	}
	return json.Marshal(map[string]any{
		"code":             "ValidationError",
		"object":           e.Object,
		"message":          e.Error(),
		"schemaId":         e.SchemaID,
		"validationErrors": violations,
	})
}
