package validation

import (
	"fmt"

	"github.com/attestia/vcschema/schema"
)

// shapeError reports a declared container property whose value has the
// wrong shape, e.g. a string where an object belongs. It is
// recoverable: the pipeline hands the partially processed object to the
// constraint check, which reports the mismatch as a violation.
type shapeError struct {
	name     string
	expected string
}

func (e *shapeError) Error() string {
	return fmt.Sprintf("validation: property %q is declared as %s but holds another shape", e.name, e.expected)
}

// objectVisitor receives callbacks from walk. enterObject fires once
// per object occurrence with its governing bag; property fires for
// every declared property of that occurrence, whether or not the object
// carries the key.
type objectVisitor struct {
	enterObject func(bag schema.Bag, object map[string]any) error
	property    func(name string, prop *schema.Property, object map[string]any) error
}

// walk traverses object under the declared shape of s, resolving
// references through the registry. Recursion only follows values that
// are plain objects (directly, through a reference, or as array
// elements), so depth is bounded by the data. A declared container
// holding a value of the wrong shape stops the traversal with a
// recoverable *shapeError; null values and non-object array elements
// are simply skipped. Both the cleanup and the coercion passes run
// through this one traversal, which keeps their recursion semantics
// identical.
func (v *Validator) walk(object map[string]any, s *schema.Schema, visitor objectVisitor) error {
	if s.IsEnum() {
		return nil
	}
	return v.walkBag(object, s.Properties(), visitor)
}

func (v *Validator) walkBag(object map[string]any, bag schema.Bag, visitor objectVisitor) error {
	if visitor.enterObject != nil {
		if err := visitor.enterObject(bag, object); err != nil {
			return err
		}
	}
	for _, name := range bag.Names() {
		prop := bag[name]
		if visitor.property != nil {
			if err := visitor.property(name, prop, object); err != nil {
				return err
			}
		}
		value, present := object[name]
		if !present || value == nil {
			continue
		}
		switch prop.Kind() {
		case schema.KindReference:
			target, err := v.lookup(prop.Ref)
			if err != nil {
				return err
			}
			if target.IsEnum() {
				continue
			}
			child, ok := value.(map[string]any)
			if !ok {
				return &shapeError{name: name, expected: "an object"}
			}
			if err := v.walkBag(child, target.Properties(), visitor); err != nil {
				return err
			}
		case schema.KindObject:
			child, ok := value.(map[string]any)
			if !ok {
				return &shapeError{name: name, expected: "an object"}
			}
			if err := v.walkBag(child, prop.Properties, visitor); err != nil {
				return err
			}
		case schema.KindArray:
			elements, ok := value.([]any)
			if !ok {
				return &shapeError{name: name, expected: "an array"}
			}
			if prop.Items == nil {
				continue
			}
			itemBag, err := v.itemBag(prop.Items)
			if err != nil {
				return err
			}
			if itemBag == nil {
				continue
			}
			for _, element := range elements {
				child, isObject := element.(map[string]any)
				if !isObject {
					continue
				}
				if err := v.walkBag(child, itemBag, visitor); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// itemBag resolves the bag governing an array's object elements, or nil
// when the items are not object-shaped.
func (v *Validator) itemBag(items *schema.Property) (schema.Bag, error) {
	if items.Ref != "" {
		target, err := v.lookup(items.Ref)
		if err != nil {
			return nil, err
		}
		if target.IsEnum() {
			return nil, nil
		}
		return target.Properties(), nil
	}
	if items.Properties != nil {
		return items.Properties, nil
	}
	return nil, nil
}
