package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine([]map[string]any{
		{
			"id":   "Profile",
			"type": "object",
			"properties": map[string]any{
				"name":    map[string]any{"type": "string", "minLength": 2, "maxLength": 10, "x-required": true},
				"age":     map[string]any{"type": "number", "minimum": float64(0), "maximum": float64(150)},
				"gender":  map[string]any{"enum": []any{"M", "F", "Other"}},
				"email":   map[string]any{"type": "string", "format": "email"},
				"website": map[string]any{"type": "string", "format": "url"},
				"zip":     map[string]any{"type": "string", "pattern": `^\d{5}$`},
				"address": map[string]any{"$ref": "Address"},
				"rank":    map[string]any{"$ref": "Rank"},
				"tags":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"pet": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"species": map[string]any{"type": "string"},
					},
					"required": []string{"species"},
				},
			},
			"required": []string{"name"},
		},
		{
			"id":   "Address",
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{"type": "string"},
			},
			"required": []string{"city"},
		},
		{
			"id":   "Rank",
			"enum": []any{float64(1), float64(2), float64(3)},
			"type": "number",
		},
	})
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	t.Run("NewEngine aggregates every structural problem", func(t *testing.T) {
		_, err := NewEngine([]map[string]any{
			{
				"id":   "Broken",
				"type": "object",
				"properties": map[string]any{
					"a": map[string]any{"type": "whatever"},
					"b": map[string]any{"$ref": "Nowhere"},
					"c": map[string]any{"pattern": "("},
					"d": map[string]any{"enum": []any{}},
				},
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown type "whatever"`)
		assert.Contains(t, err.Error(), `unresolved $ref "Nowhere"`)
		assert.Contains(t, err.Error(), "bad pattern")
		assert.Contains(t, err.Error(), "enum must be a non-empty list")
	})

	t.Run("NewEngine rejects schemas without an id", func(t *testing.T) {
		_, err := NewEngine([]map[string]any{{"type": "object", "properties": map[string]any{}}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no id")
	})
}

func TestCheck(t *testing.T) {
	t.Run("a conforming object yields no violations", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{
			"name":   "Olha",
			"age":    float64(33),
			"gender": "F",
			"email":  "olha@example.com",
			"zip":    "01001",
			"address": map[string]any{
				"city": "Kyiv",
			},
		}, "Profile")

		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("Check fails for an unregistered schema id", func(t *testing.T) {
		e := newProfileEngine(t)

		_, err := e.Check(map[string]any{}, "Nope")

		assert.Error(t, err)
	})

	t.Run("missing required properties are reported", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"age": float64(1)}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeRequiredMissing, violations[0].Code)
		assert.Equal(t, "name", violations[0].Path)
	})

	t.Run("type mismatches short-circuit further checks", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"name": "Olha", "age": "old"}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeInvalidType, violations[0].Code)
		assert.Equal(t, "age", violations[0].Path)
		assert.Equal(t, []any{"number", "string"}, violations[0].Params)
	})

	t.Run("integer accepts integral floats only", func(t *testing.T) {
		e, err := NewEngine([]map[string]any{{
			"id":   "Count",
			"type": "object",
			"properties": map[string]any{
				"n": map[string]any{"type": "integer"},
			},
		}})
		require.NoError(t, err)

		violations, err := e.Check(map[string]any{"n": float64(3)}, "Count")
		require.NoError(t, err)
		assert.Empty(t, violations)

		violations, err = e.Check(map[string]any{"n": 3.5}, "Count")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeInvalidType, violations[0].Code)
	})

	t.Run("string bounds pattern and format are checked", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{
			"name":    "O",
			"email":   "not-an-email",
			"website": "example.com",
			"zip":     "abc",
		}, "Profile")

		require.NoError(t, err)
		codes := map[string]string{}
		for _, v := range violations {
			codes[v.Path] = v.Code
		}
		assert.Equal(t, CodeMinLength, codes["name"])
		assert.Equal(t, CodeInvalidFormat, codes["email"])
		assert.Equal(t, CodeInvalidFormat, codes["website"])
		assert.Equal(t, CodePattern, codes["zip"])
	})

	t.Run("number bounds are checked", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"name": "Olha", "age": float64(200)}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeMaximum, violations[0].Code)
	})

	t.Run("enum mismatches are reported with the value", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"name": "Olha", "gender": "X"}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeEnumMismatch, violations[0].Code)
		assert.Equal(t, "gender", violations[0].Path)
		assert.Equal(t, []any{"X"}, violations[0].Params)
	})

	t.Run("referenced schemas are checked with dotted paths", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{
			"name":    "Olha",
			"address": map[string]any{},
		}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeRequiredMissing, violations[0].Code)
		assert.Equal(t, "address.city", violations[0].Path)
	})

	t.Run("a primitive where a referenced object belongs is a type error", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"name": "Olha", "address": "Kyiv"}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeInvalidType, violations[0].Code)
		assert.Equal(t, "address", violations[0].Path)
	})

	t.Run("nested object required lists apply", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{
			"name": "Olha",
			"pet":  map[string]any{},
		}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "pet.species", violations[0].Path)
	})

	t.Run("array elements are checked with indexed paths", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{
			"name": "Olha",
			"tags": []any{"ok", float64(5)},
		}, "Profile")

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeInvalidType, violations[0].Code)
		assert.Equal(t, "tags[1]", violations[0].Path)
	})

	t.Run("numeric enum references compare across int and float", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"name": "Olha", "rank": 2}, "Profile")
		require.NoError(t, err)
		assert.Empty(t, violations)

		violations, err = e.Check(map[string]any{"name": "Olha", "rank": 9}, "Profile")
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeEnumMismatch, violations[0].Code)
		assert.Equal(t, "rank", violations[0].Path)
	})

	t.Run("null values are skipped", func(t *testing.T) {
		e := newProfileEngine(t)

		violations, err := e.Check(map[string]any{"name": "Olha", "gender": nil}, "Profile")

		require.NoError(t, err)
		assert.Empty(t, violations)
	})
}
