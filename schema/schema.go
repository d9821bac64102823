package schema

import (
	"fmt"
)

// Schema is a named, normalized description of an object's or enum's
// allowed shape. Construction normalizes a private copy of the declared
// properties, so the caller's bag is never touched and the schema never
// changes after New returns.
type Schema struct {
	id       string
	props    Bag
	required []string
	enum     []any
	enumType string
}

// Source is an introspection snapshot of a schema. It shares nothing
// with the schema it was taken from.
type Source struct {
	ID         string
	Type       string
	Properties Bag
	Required   []string
	Enum       []any
}

// New builds an object schema from a raw properties bag. The bag is
// deep-copied, type-inferred and shape-defaulted, and per-property
// required flags are promoted to the schema-level required list.
func New(id string, props Bag) (*Schema, error) {
	if id == "" {
		return nil, fmt.Errorf("schema: id cannot be empty")
	}
	bag := props.Clone()
	if bag == nil {
		bag = Bag{}
	}
	if err := checkDescriptors(id, bag, ""); err != nil {
		return nil, err
	}
	normalizeBag(bag)
	required := promoteRequired(bag)
	return &Schema{id: id, props: bag, required: required}, nil
}

// NewEnum builds an enum schema. The value type defaults to string.
func NewEnum(id string, values []any, valueType string) (*Schema, error) {
	if id == "" {
		return nil, fmt.Errorf("schema: id cannot be empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("schema %q: enum requires at least one value", id)
	}
	if valueType == "" {
		valueType = TypeString
	}
	if valueType != TypeString && valueType != TypeNumber {
		return nil, fmt.Errorf("schema %q: enum value type must be string or number, got %q", id, valueType)
	}
	return &Schema{id: id, enum: cloneSlice(values), enumType: valueType}, nil
}

// ID returns the schema's identifier.
func (s *Schema) ID() string { return s.id }

// IsEnum reports whether the schema describes an enum rather than an
// object shape.
func (s *Schema) IsEnum() bool { return s.enum != nil }

// Properties returns the normalized bag. Callers must not mutate it;
// use Source for a private copy.
func (s *Schema) Properties() Bag { return s.props }

// Required returns a copy of the schema-level required list.
func (s *Schema) Required() []string { return cloneStrings(s.required) }

// Property returns the named top-level property, or nil.
func (s *Schema) Property(name string) *Property {
	return s.props[name]
}

// Source returns a fresh snapshot of the schema's normalized source for
// introspection and cloning.
func (s *Schema) Source() Source {
	if s.IsEnum() {
		return Source{ID: s.id, Type: s.enumType, Enum: cloneSlice(s.enum)}
	}
	return Source{
		ID:         s.id,
		Type:       TypeObject,
		Properties: s.props.Clone(),
		Required:   cloneStrings(s.required),
	}
}

// CompiledSchema returns the representation handed to the constraint
// engine: a plain map carrying id, type, properties and the required
// list (present only when at least one property is required), or the
// enum form for enum schemas.
func (s *Schema) CompiledSchema() map[string]any {
	if s.IsEnum() {
		return map[string]any{
			"id":   s.id,
			"enum": cloneSlice(s.enum),
			"type": s.enumType,
		}
	}
	out := map[string]any{
		"id":         s.id,
		"type":       TypeObject,
		"properties": compiledBag(s.props),
	}
	if len(s.required) > 0 {
		out["required"] = cloneStrings(s.required)
	}
	return out
}

func compiledBag(bag Bag) map[string]any {
	out := make(map[string]any, len(bag))
	for name, p := range bag {
		out[name] = compiledProperty(p)
	}
	return out
}

func compiledProperty(p *Property) map[string]any {
	out := map[string]any{}
	if p.Ref != "" {
		out["$ref"] = p.Ref
		if p.XRequired {
			out["x-required"] = true
		}
		if p.Default != nil {
			out["default"] = cloneValue(p.Default)
		}
		return out
	}
	if len(p.Enum) > 0 {
		out["enum"] = cloneSlice(p.Enum)
		if p.Type != "" {
			out["type"] = p.Type
		}
		if p.XRequired {
			out["x-required"] = true
		}
		return out
	}
	if p.Type != "" {
		out["type"] = p.Type
	}
	if p.Format != "" {
		out["format"] = p.Format
	}
	if p.Pattern != "" {
		out["pattern"] = p.Pattern
	}
	if p.MinLength != nil {
		out["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		out["maxLength"] = *p.MaxLength
	}
	if p.Minimum != nil {
		out["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		out["maximum"] = *p.Maximum
	}
	if p.Default != nil {
		out["default"] = cloneValue(p.Default)
	}
	if p.XRequired {
		out["x-required"] = true
	}
	if p.Type == TypeObject {
		out["properties"] = compiledBag(p.Properties)
		if len(p.RequiredNames) > 0 {
			out["required"] = cloneStrings(p.RequiredNames)
		}
	}
	if p.Type == TypeArray && p.Items != nil {
		out["items"] = compiledProperty(p.Items)
	}
	return out
}
