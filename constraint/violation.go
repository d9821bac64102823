package constraint

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Violation codes reported by the engine.
const (
	CodeInvalidType     = "INVALID_TYPE"
	CodeRequiredMissing = "OBJECT_MISSING_REQUIRED_PROPERTY"
	CodeEnumMismatch    = "ENUM_MISMATCH"
	CodePattern         = "PATTERN"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeMinLength       = "MIN_LENGTH"
	CodeMaxLength       = "MAX_LENGTH"
	CodeMinimum         = "MINIMUM"
	CodeMaximum         = "MAXIMUM"
)

// Violation is one constraint failure at a concrete location in the
// checked object. Path is dotted, with [i] suffixes for array elements.
type Violation struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Params  []any  `json:"params"`
	Message string `json:"message"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s at %q: %s", v.Code, v.Path, v.Message)
}

// MarshalJSON keeps params non-null for violations built without any.
func (v Violation) MarshalJSON() ([]byte, error) {
	type alias Violation
	out := alias(v)
	if out.Params == nil {
		out.Params = []any{}
	}
	return json.Marshal(out)
}
