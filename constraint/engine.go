package constraint

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// patternCacheSize bounds the compiled-regexp cache shared by all
// checks run through one engine.
const patternCacheSize = 128

var knownTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"integer": true,
	"boolean": true,
	"object":  true,
	"array":   true,
}

// Engine checks concrete objects against compiled schema documents.
// It understands only the compiled map form: id, type, properties,
// required, enum, $ref, format, pattern and the length/range bounds.
// The set handed to NewEngine is immutable afterward, so one engine is
// safe to share across goroutines.
type Engine struct {
	schemas  map[string]map[string]any
	patterns *lru.Cache[string, *regexp.Regexp]
}

// NewEngine builds an engine over a set of compiled schemas, checking
// the whole set for structural validity first. All structural problems
// are aggregated into a single error.
func NewEngine(schemas []map[string]any) (*Engine, error) {
	cache, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		schemas:  make(map[string]map[string]any, len(schemas)),
		patterns: cache,
	}
	var problems []string
	for i, sch := range schemas {
		id, _ := sch["id"].(string)
		if id == "" {
			problems = append(problems, fmt.Sprintf("schema #%d has no id", i))
			continue
		}
		e.schemas[id] = sch
	}
	for _, id := range e.ids() {
		problems = append(problems, e.checkSchema(id, e.schemas[id])...)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("constraint: invalid schema set: %s", strings.Join(problems, "; "))
	}
	return e, nil
}

// Check validates object against the named schema and returns every
// violation found. A nil slice means the object conforms.
func (e *Engine) Check(object map[string]any, schemaID string) ([]Violation, error) {
	sch, ok := e.schemas[schemaID]
	if !ok {
		return nil, fmt.Errorf("constraint: schema %q not registered", schemaID)
	}
	var violations []Violation
	e.checkObject("", object, sch, &violations)
	return violations, nil
}

func (e *Engine) ids() []string {
	ids := make([]string, 0, len(e.schemas))
	for id := range e.schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// checkSchema validates one compiled schema document structurally.
func (e *Engine) checkSchema(path string, sch map[string]any) []string {
	var problems []string
	if enum, ok := sch["enum"]; ok {
		values, isList := enum.([]any)
		if !isList || len(values) == 0 {
			problems = append(problems, fmt.Sprintf("%s: enum must be a non-empty list", path))
		}
		return problems
	}
	props, ok := sch["properties"].(map[string]any)
	if !ok {
		return append(problems, fmt.Sprintf("%s: object schema needs a properties map", path))
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop, isMap := props[name].(map[string]any)
		if !isMap {
			problems = append(problems, fmt.Sprintf("%s.%s: property must be a map", path, name))
			continue
		}
		problems = append(problems, e.checkProperty(path+"."+name, prop)...)
	}
	if required, ok := sch["required"]; ok {
		if _, isList := required.([]string); !isList {
			if _, isAnyList := required.([]any); !isAnyList {
				problems = append(problems, fmt.Sprintf("%s: required must be a name list", path))
			}
		}
	}
	return problems
}

func (e *Engine) checkProperty(path string, prop map[string]any) []string {
	var problems []string
	if ref, ok := prop["$ref"].(string); ok {
		if _, known := e.schemas[ref]; !known {
			problems = append(problems, fmt.Sprintf("%s: unresolved $ref %q", path, ref))
		}
		return problems
	}
	if enum, ok := prop["enum"]; ok {
		values, isList := enum.([]any)
		if !isList || len(values) == 0 {
			problems = append(problems, fmt.Sprintf("%s: enum must be a non-empty list", path))
		}
		return problems
	}
	typ, _ := prop["type"].(string)
	if typ != "" && !knownTypes[typ] {
		problems = append(problems, fmt.Sprintf("%s: unknown type %q", path, typ))
	}
	if pattern, ok := prop["pattern"].(string); ok {
		if _, err := e.pattern(pattern); err != nil {
			problems = append(problems, fmt.Sprintf("%s: bad pattern: %v", path, err))
		}
	}
	if nested, ok := prop["properties"].(map[string]any); ok {
		problems = append(problems, e.checkSchema(path, map[string]any{"properties": nested})...)
	}
	if items, ok := prop["items"].(map[string]any); ok {
		problems = append(problems, e.checkProperty(path+"[]", items)...)
	}
	return problems
}

// checkObject reports missing required properties and checks every
// present declared property.
func (e *Engine) checkObject(path string, object map[string]any, sch map[string]any, violations *[]Violation) {
	for _, name := range requiredNames(sch) {
		if _, present := object[name]; !present {
			*violations = append(*violations, Violation{
				Path:    joinPath(path, name),
				Code:    CodeRequiredMissing,
				Params:  []any{name},
				Message: fmt.Sprintf("missing required property %q", name),
			})
		}
	}
	props, _ := sch["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value, present := object[name]
		if !present || value == nil {
			continue
		}
		prop, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		e.checkValue(joinPath(path, name), value, prop, violations)
	}
}

func (e *Engine) checkValue(path string, value any, prop map[string]any, violations *[]Violation) {
	if ref, ok := prop["$ref"].(string); ok {
		target := e.schemas[ref]
		if enum, isEnum := target["enum"].([]any); isEnum {
			e.checkEnum(path, value, enum, violations)
			return
		}
		child, isMap := value.(map[string]any)
		if !isMap {
			*violations = append(*violations, typeViolation(path, "object", value))
			return
		}
		e.checkObject(path, child, target, violations)
		return
	}
	if enum, ok := prop["enum"].([]any); ok {
		e.checkEnum(path, value, enum, violations)
		return
	}

	typ, _ := prop["type"].(string)
	if typ != "" && !typeMatches(value, typ) {
		*violations = append(*violations, typeViolation(path, typ, value))
		return
	}

	switch v := value.(type) {
	case string:
		e.checkString(path, v, prop, violations)
	case float64:
		e.checkNumber(path, v, prop, violations)
	case int:
		e.checkNumber(path, float64(v), prop, violations)
	case int64:
		e.checkNumber(path, float64(v), prop, violations)
	case map[string]any:
		if nested, ok := prop["properties"].(map[string]any); ok {
			child := map[string]any{"properties": nested}
			if required, has := prop["required"]; has {
				child["required"] = required
			}
			e.checkObject(path, v, child, violations)
		}
	case []any:
		if items, ok := prop["items"].(map[string]any); ok {
			for i, element := range v {
				if element == nil {
					continue
				}
				e.checkValue(fmt.Sprintf("%s[%d]", path, i), element, items, violations)
			}
		}
	}
}

func (e *Engine) checkEnum(path string, value any, enum []any, violations *[]Violation) {
	for _, allowed := range enum {
		if valueEqual(value, allowed) {
			return
		}
	}
	*violations = append(*violations, Violation{
		Path:    path,
		Code:    CodeEnumMismatch,
		Params:  []any{value},
		Message: fmt.Sprintf("value is not one of the allowed enum values: %v", enum),
	})
}

func (e *Engine) checkString(path, value string, prop map[string]any, violations *[]Violation) {
	if min, ok := intBound(prop["minLength"]); ok && len(value) < min {
		*violations = append(*violations, Violation{
			Path:    path,
			Code:    CodeMinLength,
			Params:  []any{len(value), min},
			Message: fmt.Sprintf("string length %d is less than minimum %d", len(value), min),
		})
	}
	if max, ok := intBound(prop["maxLength"]); ok && len(value) > max {
		*violations = append(*violations, Violation{
			Path:    path,
			Code:    CodeMaxLength,
			Params:  []any{len(value), max},
			Message: fmt.Sprintf("string length %d exceeds maximum %d", len(value), max),
		})
	}
	if pattern, ok := prop["pattern"].(string); ok {
		re, err := e.pattern(pattern)
		if err == nil && !re.MatchString(value) {
			*violations = append(*violations, Violation{
				Path:    path,
				Code:    CodePattern,
				Params:  []any{pattern},
				Message: fmt.Sprintf("value does not match pattern %q", pattern),
			})
		}
	}
	if format, ok := prop["format"].(string); ok {
		if problem := checkFormat(value, format); problem != "" {
			*violations = append(*violations, Violation{
				Path:    path,
				Code:    CodeInvalidFormat,
				Params:  []any{format, value},
				Message: problem,
			})
		}
	}
}

func (e *Engine) checkNumber(path string, value float64, prop map[string]any, violations *[]Violation) {
	if min, ok := floatBound(prop["minimum"]); ok && value < min {
		*violations = append(*violations, Violation{
			Path:    path,
			Code:    CodeMinimum,
			Params:  []any{value, min},
			Message: fmt.Sprintf("value %v is less than minimum %v", value, min),
		})
	}
	if max, ok := floatBound(prop["maximum"]); ok && value > max {
		*violations = append(*violations, Violation{
			Path:    path,
			Code:    CodeMaximum,
			Params:  []any{value, max},
			Message: fmt.Sprintf("value %v exceeds maximum %v", value, max),
		})
	}
}

// pattern compiles through the bounded cache.
func (e *Engine) pattern(expr string) (*regexp.Regexp, error) {
	if re, ok := e.patterns.Get(expr); ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.patterns.Add(expr, re)
	return re, nil
}

func typeViolation(path, expected string, value any) Violation {
	return Violation{
		Path:    path,
		Code:    CodeInvalidType,
		Params:  []any{expected, typeName(value)},
		Message: fmt.Sprintf("expected type %s, got %s", expected, typeName(value)),
	}
}

func typeMatches(value any, typ string) bool {
	switch typ {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		return isNumber(value)
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, int, int64:
		return true
	}
	return false
}

func typeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// valueEqual compares enum candidates, treating numerically equal ints
// and floats as the same value.
func valueEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func intBound(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

func floatBound(v any) (float64, bool) {
	return toFloat(v)
}

func requiredNames(sch map[string]any) []string {
	switch required := sch["required"].(type) {
	case []string:
		return required
	case []any:
		names := make([]string, 0, len(required))
		for _, name := range required {
			if s, ok := name.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
