package schema

import (
	"fmt"
)

// WrapOptions controls the envelope property produced by Wrap.
type WrapOptions struct {
	Required bool
	Default  any
}

// Clone returns an identical schema under a new identifier.
func (s *Schema) Clone(id string) (*Schema, error) {
	if id == "" {
		return nil, fmt.Errorf("schema: id cannot be empty")
	}
	if s.IsEnum() {
		return NewEnum(id, s.enum, s.enumType)
	}
	return &Schema{id: id, props: s.props.Clone(), required: cloneStrings(s.required)}, nil
}

// Pure returns a schema with every required and default marker stripped,
// recursively through nested objects and array items. Partial-update
// schemas are derived from create schemas this way.
func (s *Schema) Pure(id string) (*Schema, error) {
	if s.IsEnum() {
		return nil, fmt.Errorf("schema %q: cannot derive a pure schema from an enum", s.id)
	}
	bag := s.props.Clone()
	purifyBag(bag)
	return New(id, bag)
}

// Only returns a schema keeping just the named top-level properties.
// Filtering is not recursive; nested shapes come along unchanged.
func (s *Schema) Only(id string, names ...string) (*Schema, error) {
	if s.IsEnum() {
		return nil, fmt.Errorf("schema %q: cannot select properties of an enum", s.id)
	}
	bag := Bag{}
	for _, name := range names {
		if p, ok := s.props[name]; ok {
			bag[name] = p.Clone()
		}
	}
	return New(id, bag)
}

// Extend returns a schema with props shallow-merged over the existing
// bag; an incoming property replaces a same-named one wholesale.
func (s *Schema) Extend(id string, props Bag) (*Schema, error) {
	if s.IsEnum() {
		return nil, fmt.Errorf("schema %q: cannot extend an enum", s.id)
	}
	bag := s.props.Clone()
	for name, p := range props {
		bag[name] = p.Clone()
	}
	return New(id, bag)
}

// Wrap returns a schema with a single object property carrying the
// receiver's properties, nesting the existing shape under an envelope
// key. A nil opts wraps as a required envelope.
func (s *Schema) Wrap(id, name string, opts *WrapOptions) (*Schema, error) {
	if s.IsEnum() {
		return nil, fmt.Errorf("schema %q: cannot wrap an enum", s.id)
	}
	if name == "" {
		return nil, fmt.Errorf("schema %q: wrap requires a property name", s.id)
	}
	if opts == nil {
		opts = &WrapOptions{Required: true}
	}
	envelope := &Property{
		Type:          TypeObject,
		Properties:    s.props.Clone(),
		RequiredNames: cloneStrings(s.required),
		Required:      opts.Required,
		Default:       cloneValue(opts.Default),
	}
	return New(id, Bag{name: envelope})
}

func purifyBag(bag Bag) {
	for _, p := range bag {
		p.Required = false
		p.RequiredNames = nil
		p.XRequired = false
		p.Default = nil
		if p.Properties != nil {
			purifyBag(p.Properties)
		}
		if p.Items != nil {
			p.Items.Required = false
			p.Items.RequiredNames = nil
			p.Items.XRequired = false
			p.Items.Default = nil
			if p.Items.Properties != nil {
				purifyBag(p.Items.Properties)
			}
		}
	}
}
