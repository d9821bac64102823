package schema

import (
	"fmt"
)

// checkDescriptors rejects nil property descriptors anywhere in the
// declared shape before normalization dereferences them. A JSON null
// entry in a declaration decodes to a nil descriptor, so this guards
// untrusted file input as well as hand-built bags.
func checkDescriptors(id string, bag Bag, parent string) error {
	for _, name := range bag.Names() {
		qualified := name
		if parent != "" {
			qualified = parent + "." + name
		}
		p := bag[name]
		if p == nil {
			return fmt.Errorf("schema %q: property %q has no descriptor", id, qualified)
		}
		if p.Properties != nil {
			if err := checkDescriptors(id, p.Properties, qualified); err != nil {
				return err
			}
		}
		if p.Items != nil && p.Items.Properties != nil {
			if err := checkDescriptors(id, p.Items.Properties, qualified+"[]"); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeBag applies type inference and shape defaults to every
// property in the bag. Callers pass a private clone, so mutation never
// reaches the declaring code.
func normalizeBag(bag Bag) {
	for _, p := range bag {
		normalizeProperty(p)
	}
}

// normalizeProperty fills in the inferred type and the structural
// defaults for one descriptor. References are opaque at this layer and
// enums are leaves. Array items get one level of normalization per
// invocation: inline object items are typed and recursed into, but an
// array-of-arrays keeps its inner items untouched (known limitation of
// the declaration format).
func normalizeProperty(p *Property) {
	if p.Ref != "" {
		return
	}
	if len(p.Enum) > 0 {
		if p.Type == "" {
			p.Type = TypeString
		}
		return
	}
	if p.Type == "" {
		switch {
		case p.Properties != nil:
			p.Type = TypeObject
		case p.Items != nil:
			p.Type = TypeArray
		default:
			p.Type = TypeString
		}
	}
	switch p.Type {
	case TypeObject:
		if p.Properties == nil {
			p.Properties = Bag{}
		}
		normalizeBag(p.Properties)
	case TypeArray:
		if p.Items == nil {
			p.Items = &Property{Type: TypeString}
		}
		if p.Items.Properties != nil {
			p.Items.Type = TypeObject
			normalizeBag(p.Items.Properties)
		}
	}
}

// promoteRequired converts per-property required flags into a
// schema-level name list, marking each promoted property with
// x-required so required-ness survives the compiled representation.
// The boolean is consumed whatever its value. Properties already
// carrying x-required stay in the list, which makes a second promotion
// over normalized output a no-op.
func promoteRequired(bag Bag) []string {
	var required []string
	for _, name := range bag.Names() {
		p := bag[name]
		if p.Required {
			p.XRequired = true
		}
		p.Required = false
		if p.XRequired {
			required = append(required, name)
		}

		switch p.Kind() {
		case KindObject:
			p.RequiredNames = mergeNames(p.RequiredNames, promoteRequired(p.Properties))
		case KindArray:
			if p.Items != nil && p.Items.Properties != nil {
				p.Items.RequiredNames = mergeNames(p.Items.RequiredNames, promoteRequired(p.Items.Properties))
			}
		}
	}
	return required
}

func mergeNames(existing, promoted []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, name := range existing {
		seen[name] = true
	}
	for _, name := range promoted {
		if !seen[name] {
			existing = append(existing, name)
			seen[name] = true
		}
	}
	return existing
}
