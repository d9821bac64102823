package validation

import (
	"strconv"
	"strings"

	"github.com/attestia/vcschema/schema"
)

// pathToken is one step of a violation path: either a property name or
// an array index.
type pathToken struct {
	key     string
	index   int
	isIndex bool
}

// splitPath parses the engine's dotted paths, e.g. "address.city" or
// "contacts[1].phone".
func splitPath(path string) []pathToken {
	var tokens []pathToken
	for _, part := range strings.Split(path, ".") {
		rest := part
		if open := strings.IndexByte(rest, '['); open >= 0 {
			if open > 0 {
				tokens = append(tokens, pathToken{key: rest[:open]})
			}
			rest = rest[open:]
			for strings.HasPrefix(rest, "[") {
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					break
				}
				index, err := strconv.Atoi(rest[1:end])
				if err != nil {
					break
				}
				tokens = append(tokens, pathToken{index: index, isIndex: true})
				rest = rest[end+1:]
			}
			continue
		}
		tokens = append(tokens, pathToken{key: part})
	}
	return tokens
}

// pathGet reads the value at path inside object.
func pathGet(object map[string]any, path string) (any, bool) {
	var current any = object
	for _, token := range splitPath(path) {
		if token.isIndex {
			list, ok := current.([]any)
			if !ok || token.index < 0 || token.index >= len(list) {
				return nil, false
			}
			current = list[token.index]
			continue
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[token.key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// pathSet writes value at path inside object, when the path resolves.
func pathSet(object map[string]any, path string, value any) bool {
	tokens := splitPath(path)
	if len(tokens) == 0 {
		return false
	}
	var current any = object
	for _, token := range tokens[:len(tokens)-1] {
		if token.isIndex {
			list, ok := current.([]any)
			if !ok || token.index < 0 || token.index >= len(list) {
				return false
			}
			current = list[token.index]
			continue
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current, ok = obj[token.key]
		if !ok {
			return false
		}
	}
	last := tokens[len(tokens)-1]
	if last.isIndex {
		list, ok := current.([]any)
		if !ok || last.index < 0 || last.index >= len(list) {
			return false
		}
		list[last.index] = value
		return true
	}
	obj, ok := current.(map[string]any)
	if !ok {
		return false
	}
	obj[last.key] = value
	return true
}

// propertyAt resolves a violation path to the declared property it
// points at, following references through the registry. Returns nil
// when the path leaves the declared shape.
func (v *Validator) propertyAt(s *schema.Schema, path string) *schema.Property {
	if s.IsEnum() {
		return nil
	}
	bag := s.Properties()
	var current *schema.Property
	for _, token := range splitPath(path) {
		if token.isIndex {
			if current == nil || current.Items == nil {
				return nil
			}
			current = current.Items
		} else {
			if bag == nil {
				return nil
			}
			current = bag[token.key]
			if current == nil {
				return nil
			}
		}
		bag = nil
		if current.Ref != "" {
			if target, err := v.lookup(current.Ref); err == nil && !target.IsEnum() {
				bag = target.Properties()
			}
		} else if current.Properties != nil {
			bag = current.Properties
		}
	}
	return current
}
