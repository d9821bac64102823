package validation

import (
	"github.com/attestia/vcschema/schema"
)

// ReferenceIDs returns the transitive, de-duplicated list of schema ids
// the named schema depends on through $ref, in first-discovered order
// (each id followed by its own transitive references). Unknown ids fail
// with a *SchemaNotFoundError, revisited ones with a
// *CyclicReferenceError.
func (v *Validator) ReferenceIDs(schemaID string) ([]string, error) {
	s, err := v.lookup(schemaID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := []string{}
	if err := v.collectRefs(s, []string{s.ID()}, seen, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (v *Validator) collectRefs(s *schema.Schema, stack []string, seen map[string]bool, out *[]string) error {
	if s.IsEnum() {
		return nil
	}
	return v.collectBagRefs(s.Properties(), stack, seen, out)
}

func (v *Validator) collectBagRefs(bag schema.Bag, stack []string, seen map[string]bool, out *[]string) error {
	for _, name := range bag.Names() {
		p := bag[name]
		switch p.Kind() {
		case schema.KindReference:
			if err := v.collectRef(p.Ref, stack, seen, out); err != nil {
				return err
			}
		case schema.KindObject:
			if err := v.collectBagRefs(p.Properties, stack, seen, out); err != nil {
				return err
			}
		case schema.KindArray:
			if p.Items == nil {
				continue
			}
			if p.Items.Ref != "" {
				if err := v.collectRef(p.Items.Ref, stack, seen, out); err != nil {
					return err
				}
			} else if p.Items.Properties != nil {
				if err := v.collectBagRefs(p.Items.Properties, stack, seen, out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (v *Validator) collectRef(id string, stack []string, seen map[string]bool, out *[]string) error {
	for _, ancestor := range stack {
		if ancestor == id {
			return &CyclicReferenceError{Stack: append(append([]string{}, stack...), id)}
		}
	}
	target, err := v.lookup(id)
	if err != nil {
		return err
	}
	if seen[id] {
		return nil
	}
	seen[id] = true
	*out = append(*out, id)
	return v.collectRefs(target, append(stack, id), seen, out)
}
