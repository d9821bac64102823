package schema

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Property type names accepted by the declaration format.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Kind identifies the shape of a property descriptor. It is derived
// structurally: a $ref makes a reference, an enum list makes an enum,
// otherwise the declared (or inferred) type decides.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindObject
	KindArray
	KindEnum
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return TypeString
	case KindNumber:
		return TypeNumber
	case KindInteger:
		return TypeInteger
	case KindBoolean:
		return TypeBoolean
	case KindObject:
		return TypeObject
	case KindArray:
		return TypeArray
	case KindEnum:
		return "enum"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Property describes one declared property of an object schema.
//
// A single struct covers every shape; Kind reports which variant a
// descriptor is. The authoring format allows a per-property boolean
// Required flag, which normalization consumes into the schema-level
// required list (and into RequiredNames for nested object properties),
// marking promoted properties with XRequired.
type Property struct {
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	Ref    string `json:"$ref,omitempty"`
	Enum   []any  `json:"enum,omitempty"`

	// Required is the authoring flag, consumed by promotion.
	// RequiredNames is the promoted list carried by object properties.
	Required      bool     `json:"-"`
	RequiredNames []string `json:"-"`
	XRequired     bool     `json:"x-required,omitempty"`

	Default any `json:"default,omitempty"`

	Pattern   string   `json:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`

	Properties Bag       `json:"properties,omitempty"`
	Items      *Property `json:"items,omitempty"`
}

// Bag maps property names to their descriptors. Insertion order carries
// no meaning; traversals sort names for deterministic output.
type Bag map[string]*Property

// Kind reports the property's shape.
func (p *Property) Kind() Kind {
	switch {
	case p.Ref != "":
		return KindReference
	case len(p.Enum) > 0:
		return KindEnum
	}
	switch p.Type {
	case TypeNumber:
		return KindNumber
	case TypeInteger:
		return KindInteger
	case TypeBoolean:
		return KindBoolean
	case TypeObject:
		return KindObject
	case TypeArray:
		return KindArray
	default:
		return KindString
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	out := *p
	out.Enum = cloneSlice(p.Enum)
	out.RequiredNames = cloneStrings(p.RequiredNames)
	out.Default = cloneValue(p.Default)
	out.MinLength = cloneInt(p.MinLength)
	out.MaxLength = cloneInt(p.MaxLength)
	out.Minimum = cloneFloat(p.Minimum)
	out.Maximum = cloneFloat(p.Maximum)
	out.Properties = p.Properties.Clone()
	out.Items = p.Items.Clone()
	return &out
}

// Clone returns a deep copy of the bag.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	out := make(Bag, len(b))
	for name, p := range b {
		out[name] = p.Clone()
	}
	return out
}

// Names returns the bag's property names in sorted order.
func (b Bag) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// propertyJSON mirrors Property for JSON round-trips; "required" is
// declared as raw so both the authoring boolean and the promoted array
// decode into the right field.
type propertyJSON struct {
	Type       string          `json:"type,omitempty"`
	Format     string          `json:"format,omitempty"`
	Ref        string          `json:"$ref,omitempty"`
	Enum       []any           `json:"enum,omitempty"`
	Required   json.RawMessage `json:"required,omitempty"`
	XRequired  bool            `json:"x-required,omitempty"`
	Default    any             `json:"default,omitempty"`
	Pattern    string          `json:"pattern,omitempty"`
	MinLength  *int            `json:"minLength,omitempty"`
	MaxLength  *int            `json:"maxLength,omitempty"`
	Minimum    *float64        `json:"minimum,omitempty"`
	Maximum    *float64        `json:"maximum,omitempty"`
	Properties Bag             `json:"properties,omitempty"`
	Items      *Property       `json:"items,omitempty"`
}

// MarshalJSON emits the promoted required array when present, the
// authoring boolean otherwise.
func (p Property) MarshalJSON() ([]byte, error) {
	raw := propertyJSON{
		Type:       p.Type,
		Format:     p.Format,
		Ref:        p.Ref,
		Enum:       p.Enum,
		XRequired:  p.XRequired,
		Default:    p.Default,
		Pattern:    p.Pattern,
		MinLength:  p.MinLength,
		MaxLength:  p.MaxLength,
		Minimum:    p.Minimum,
		Maximum:    p.Maximum,
		Properties: p.Properties,
		Items:      p.Items,
	}
	switch {
	case len(p.RequiredNames) > 0:
		names, err := json.Marshal(p.RequiredNames)
		if err != nil {
			return nil, err
		}
		raw.Required = names
	case p.Required:
		raw.Required = json.RawMessage("true")
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts "required" as either the authoring boolean or a
// promoted name list.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw propertyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Property{
		Type:       raw.Type,
		Format:     raw.Format,
		Ref:        raw.Ref,
		Enum:       raw.Enum,
		XRequired:  raw.XRequired,
		Default:    raw.Default,
		Pattern:    raw.Pattern,
		MinLength:  raw.MinLength,
		MaxLength:  raw.MaxLength,
		Minimum:    raw.Minimum,
		Maximum:    raw.Maximum,
		Properties: raw.Properties,
		Items:      raw.Items,
	}
	if len(raw.Required) == 0 {
		return nil
	}
	var flag bool
	if err := json.Unmarshal(raw.Required, &flag); err == nil {
		p.Required = flag
		return nil
	}
	var names []string
	if err := json.Unmarshal(raw.Required, &names); err == nil {
		p.RequiredNames = names
		return nil
	}
	return fmt.Errorf("schema: property %q has malformed required declaration", string(raw.Required))
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneStrings(v []string) []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v...)
}

func cloneSlice(v []any) []any {
	if v == nil {
		return nil
	}
	out := make([]any, len(v))
	for i, el := range v {
		out[i] = cloneValue(el)
	}
	return out
}

// cloneValue deep-copies the JSON-shaped values that appear in defaults
// and enum lists.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, el := range val {
			out[k] = cloneValue(el)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = cloneValue(el)
		}
		return out
	default:
		return v
	}
}
