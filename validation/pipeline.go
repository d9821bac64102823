package validation

import (
	"errors"
	"strconv"

	"github.com/attestia/vcschema/constraint"
	"github.com/attestia/vcschema/internal/jsonutil"
	"github.com/attestia/vcschema/schema"
)

// Option configures one Validate call.
type Option func(*options)

type options struct {
	nullifyEmptyValues bool
	cleanupNulls       bool
}

// WithNullifyEmptyValues retries a failed check after turning
// empty-string values that failed only format or enum constraints on
// non-required properties into explicit nulls.
func WithNullifyEmptyValues() Option {
	return func(o *options) { o.nullifyEmptyValues = true }
}

// WithCleanupNulls strips null-valued keys from the copied input, at
// any depth, before the schema passes run.
func WithCleanupNulls() Option {
	return func(o *options) { o.cleanupNulls = true }
}

// formatCodes are the violation codes the nullify pass may absorb.
var formatCodes = map[string]bool{
	constraint.CodePattern:       true,
	constraint.CodeEnumMismatch:  true,
	constraint.CodeInvalidFormat: true,
}

// prepared records how far the cleanup and coercion passes got before
// the constraint check ran.
type prepared struct {
	complete bool
	err      error
}

// Validate checks object against the named schema and returns a
// schema-conformant copy. The input is never mutated. The pipeline:
// deep copy, optional null cleanup, undeclared-attribute cleanup,
// declared-attribute coercion, constraint check, optional
// nullify-and-recheck. Failures surface as a *ValidationError; unknown
// schema ids as a *SchemaNotFoundError.
func (v *Validator) Validate(object map[string]any, schemaID string, opts ...Option) (map[string]any, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s, err := v.lookup(schemaID)
	if err != nil {
		return nil, err
	}
	working, err := jsonutil.DeepCopyMap(object)
	if err != nil {
		return nil, err
	}
	if o.cleanupNulls {
		cleanupNulls(working)
	}
	prep := v.prepare(working, s)
	if prep.err != nil {
		return nil, prep.err
	}
	violations, err := v.engine.Check(working, schemaID)
	if err != nil {
		return nil, err
	}
	if len(violations) == 0 {
		return working, nil
	}
	if o.nullifyEmptyValues {
		violations = v.nullifyEmptyValues(working, s, violations)
		if len(violations) == 0 {
			return working, nil
		}
	}
	return nil, newValidationError(schemaID, working, violations, !prep.complete)
}

// Normalize deep-copies object and coerces its declared attributes to
// their schema types, applying defaults for absent keys. No attributes
// are stripped and no constraints are enforced.
func (v *Validator) Normalize(object map[string]any, schemaID string) (map[string]any, error) {
	s, err := v.lookup(schemaID)
	if err != nil {
		return nil, err
	}
	working, err := jsonutil.DeepCopyMap(object)
	if err != nil {
		return nil, err
	}
	if err := v.normalizeAttributes(working, s); err != nil && isFatal(err) {
		return nil, err
	}
	return working, nil
}

// prepare runs the cleanup and coercion passes behind a local failure
// boundary: anything short of a registry failure leaves a partially
// processed object for the constraint check to report on.
func (v *Validator) prepare(object map[string]any, s *schema.Schema) prepared {
	if err := v.cleanupAttributes(object, s); err != nil {
		if isFatal(err) {
			return prepared{err: err}
		}
		return prepared{}
	}
	if err := v.normalizeAttributes(object, s); err != nil {
		if isFatal(err) {
			return prepared{err: err}
		}
		return prepared{}
	}
	return prepared{complete: true}
}

func isFatal(err error) bool {
	var notFound *SchemaNotFoundError
	var cyclic *CyclicReferenceError
	return errors.As(err, &notFound) || errors.As(err, &cyclic)
}

// cleanupNulls removes object keys holding explicit nulls, recursing
// through nested objects and objects inside arrays. Null primitives
// inside arrays stay where they are.
func cleanupNulls(object map[string]any) {
	for key, value := range object {
		switch v := value.(type) {
		case nil:
			delete(object, key)
		case map[string]any:
			cleanupNulls(v)
		case []any:
			for _, element := range v {
				if child, ok := element.(map[string]any); ok {
					cleanupNulls(child)
				}
			}
		}
	}
}

// cleanupAttributes drops every key not declared by the governing bag,
// at every object occurrence the walker reaches.
func (v *Validator) cleanupAttributes(object map[string]any, s *schema.Schema) error {
	return v.walk(object, s, objectVisitor{
		enterObject: func(bag schema.Bag, obj map[string]any) error {
			for key := range obj {
				if _, declared := bag[key]; !declared {
					delete(obj, key)
				}
			}
			return nil
		},
	})
}

// normalizeAttributes coerces loosely typed values to their declared
// types and fills defaults for absent keys. Values that resist coercion
// are left alone for the constraint check to report.
func (v *Validator) normalizeAttributes(object map[string]any, s *schema.Schema) error {
	return v.walk(object, s, objectVisitor{
		property: func(name string, prop *schema.Property, obj map[string]any) error {
			value, present := obj[name]
			if !present {
				if prop.Default != nil {
					obj[name] = jsonutil.DeepCopyValue(prop.Default)
				}
				return nil
			}
			if value == nil {
				return nil
			}
			switch prop.Kind() {
			case schema.KindNumber:
				if str, ok := value.(string); ok {
					if f, err := strconv.ParseFloat(str, 64); err == nil {
						obj[name] = f
					}
				}
			case schema.KindInteger:
				if str, ok := value.(string); ok {
					if n, err := strconv.ParseInt(str, 10, 64); err == nil {
						obj[name] = float64(n)
					}
				}
			case schema.KindBoolean:
				if b, ok := coerceBool(value); ok {
					obj[name] = b
				}
			}
			return nil
		},
	})
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	case float64:
		switch v {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

// nullifyEmptyValues absorbs format and enum violations raised by empty
// strings on non-required properties, writing an explicit null in their
// place. Everything else is retained.
func (v *Validator) nullifyEmptyValues(object map[string]any, s *schema.Schema, violations []constraint.Violation) []constraint.Violation {
	var kept []constraint.Violation
	for _, violation := range violations {
		if !formatCodes[violation.Code] {
			kept = append(kept, violation)
			continue
		}
		prop := v.propertyAt(s, violation.Path)
		if prop == nil || prop.XRequired {
			kept = append(kept, violation)
			continue
		}
		value, found := pathGet(object, violation.Path)
		str, isString := value.(string)
		if !found || !isString || str != "" {
			kept = append(kept, violation)
			continue
		}
		pathSet(object, violation.Path, nil)
	}
	return kept
}
