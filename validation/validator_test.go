package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestia/vcschema/schema"
)

func mustSchema(t *testing.T, id string, bag schema.Bag) *schema.Schema {
	t.Helper()
	s, err := schema.New(id, bag)
	require.NoError(t, err)
	return s
}

func mustEnum(t *testing.T, id string, values ...any) *schema.Schema {
	t.Helper()
	s, err := schema.NewEnum(id, values, "")
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Run("New rejects an empty schema list", func(t *testing.T) {
		_, err := New(nil)

		assert.ErrorIs(t, err, ErrNoSchemas)
	})

	t.Run("New rejects duplicate schema ids before any validation", func(t *testing.T) {
		a := mustSchema(t, "Example", schema.Bag{"x": {}})
		b := mustSchema(t, "Example", schema.Bag{"y": {}})

		_, err := New([]*schema.Schema{a, b})

		var dup *DuplicateSchemaError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "Example", dup.ID)
	})

	t.Run("New rejects a dangling reference", func(t *testing.T) {
		s := mustSchema(t, "Profile", schema.Bag{"address": {Ref: "Address"}})

		_, err := New([]*schema.Schema{s})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `unresolved $ref "Address"`)
	})

	t.Run("New rejects cyclic reference graphs", func(t *testing.T) {
		a := mustSchema(t, "A", schema.Bag{"b": {Ref: "B"}})
		b := mustSchema(t, "B", schema.Bag{"a": {Ref: "A"}})

		_, err := New([]*schema.Schema{a, b})

		var cyclic *CyclicReferenceError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, []string{"A", "B", "A"}, cyclic.Stack)
	})

	t.Run("New rejects self-referential schemas", func(t *testing.T) {
		s := mustSchema(t, "Node", schema.Bag{"next": {Ref: "Node"}})

		_, err := New([]*schema.Schema{s})

		var cyclic *CyclicReferenceError
		assert.ErrorAs(t, err, &cyclic)
	})

	t.Run("Schemas exposes a copy of the registry", func(t *testing.T) {
		s := mustSchema(t, "Profile", schema.Bag{"name": {}})
		v, err := New([]*schema.Schema{s})
		require.NoError(t, err)

		registry := v.Schemas()
		assert.Len(t, registry, 1)
		delete(registry, "Profile")

		_, err = v.Schema("Profile")
		assert.NoError(t, err)
	})

	t.Run("Schema fails for unknown ids", func(t *testing.T) {
		s := mustSchema(t, "Profile", schema.Bag{"name": {}})
		v, err := New([]*schema.Schema{s})
		require.NoError(t, err)

		_, err = v.Schema("Nope")

		var notFound *SchemaNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestReferenceIDs(t *testing.T) {
	registry := func(t *testing.T) *Validator {
		t.Helper()
		person := mustSchema(t, "Person", schema.Bag{
			"address":  {Ref: "Address"},
			"employer": {Ref: "Company"},
			"pets":     {Items: &schema.Property{Ref: "Pet"}},
			"meta": {Properties: schema.Bag{
				"rank": {Ref: "Rank"},
			}},
		})
		address := mustSchema(t, "Address", schema.Bag{
			"country": {Ref: "Country"},
		})
		company := mustSchema(t, "Company", schema.Bag{
			"address": {Ref: "Address"},
		})
		country := mustSchema(t, "Country", schema.Bag{"code": {}})
		pet := mustSchema(t, "Pet", schema.Bag{"species": {}})
		rank := mustEnum(t, "Rank", "junior", "senior")
		v, err := New([]*schema.Schema{person, address, company, country, pet, rank})
		require.NoError(t, err)
		return v
	}

	t.Run("references are transitive and de-duplicated", func(t *testing.T) {
		v := registry(t)

		ids, err := v.ReferenceIDs("Person")
		require.NoError(t, err)

		assert.Equal(t, []string{"Address", "Country", "Company", "Rank", "Pet"}, ids)
	})

	t.Run("a schema without references yields an empty list", func(t *testing.T) {
		v := registry(t)

		ids, err := v.ReferenceIDs("Country")
		require.NoError(t, err)

		assert.Empty(t, ids)
	})

	t.Run("enum schemas have no references", func(t *testing.T) {
		v := registry(t)

		ids, err := v.ReferenceIDs("Rank")
		require.NoError(t, err)

		assert.Empty(t, ids)
	})

	t.Run("unknown ids fail", func(t *testing.T) {
		v := registry(t)

		_, err := v.ReferenceIDs("Nope")

		var notFound *SchemaNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
