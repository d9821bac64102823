package schema

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	t.Run("$ref wins over everything", func(t *testing.T) {
		p := &Property{Ref: "Address", Type: TypeObject, Enum: []any{"x"}}
		assert.Equal(t, KindReference, p.Kind())
	})

	t.Run("enum wins over type", func(t *testing.T) {
		p := &Property{Enum: []any{"a"}, Type: TypeNumber}
		assert.Equal(t, KindEnum, p.Kind())
	})

	t.Run("bare descriptors are strings", func(t *testing.T) {
		assert.Equal(t, KindString, (&Property{}).Kind())
	})
}

func TestPropertyJSON(t *testing.T) {
	t.Run("authoring boolean required decodes", func(t *testing.T) {
		var p Property
		require.NoError(t, json.Unmarshal([]byte(`{"type":"string","required":true}`), &p))

		assert.True(t, p.Required)
		assert.Empty(t, p.RequiredNames)
	})

	t.Run("promoted required list decodes", func(t *testing.T) {
		var p Property
		require.NoError(t, json.Unmarshal([]byte(`{"type":"object","required":["name"]}`), &p))

		assert.False(t, p.Required)
		assert.Equal(t, []string{"name"}, p.RequiredNames)
	})

	t.Run("malformed required is rejected", func(t *testing.T) {
		var p Property
		err := json.Unmarshal([]byte(`{"required":42}`), &p)

		assert.Error(t, err)
	})

	t.Run("promoted properties round-trip", func(t *testing.T) {
		s, err := New("Profile", Bag{
			"address": {Properties: Bag{"city": {Required: true}}},
		})
		require.NoError(t, err)

		data, err := json.Marshal(s.Property("address"))
		require.NoError(t, err)

		var back Property
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, []string{"city"}, back.RequiredNames)
		assert.True(t, back.Properties["city"].XRequired)
	})
}
