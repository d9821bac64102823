package validation

import (
	"fmt"

	"github.com/attestia/vcschema/constraint"
	"github.com/attestia/vcschema/schema"
)

// Validator owns a registry of schemas and runs the validate and
// normalize pipelines against it. The registry is built once at
// construction and read-only afterward, so a Validator may be shared
// across goroutines.
type Validator struct {
	schemas map[string]*schema.Schema
	engine  *constraint.Engine
}

// New builds a Validator over the given schemas. It rejects an empty
// list, duplicate schema ids, structurally invalid compiled schemas
// (aggregated into one error) and cyclic reference graphs.
func New(schemas []*schema.Schema) (*Validator, error) {
	if len(schemas) == 0 {
		return nil, ErrNoSchemas
	}
	v := &Validator{schemas: make(map[string]*schema.Schema, len(schemas))}
	compiled := make([]map[string]any, 0, len(schemas))
	for _, s := range schemas {
		if s == nil {
			return nil, fmt.Errorf("validation: schema list contains a nil schema")
		}
		if _, dup := v.schemas[s.ID()]; dup {
			return nil, &DuplicateSchemaError{ID: s.ID()}
		}
		v.schemas[s.ID()] = s
		compiled = append(compiled, s.CompiledSchema())
	}
	engine, err := constraint.NewEngine(compiled)
	if err != nil {
		return nil, err
	}
	v.engine = engine
	// Resolving every schema's reference closure up front surfaces
	// cyclic graphs at construction instead of mid-traversal.
	for _, s := range schemas {
		if _, err := v.ReferenceIDs(s.ID()); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Schema returns the registered schema for id.
func (v *Validator) Schema(id string) (*schema.Schema, error) {
	return v.lookup(id)
}

// Schemas returns a copy of the id-to-schema registry.
func (v *Validator) Schemas() map[string]*schema.Schema {
	out := make(map[string]*schema.Schema, len(v.schemas))
	for id, s := range v.schemas {
		out[id] = s
	}
	return out
}

func (v *Validator) lookup(id string) (*schema.Schema, error) {
	s, ok := v.schemas[id]
	if !ok {
		return nil, &SchemaNotFoundError{ID: id}
	}
	return s, nil
}
