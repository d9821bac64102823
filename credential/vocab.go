package credential

import (
	"github.com/attestia/vcschema/schema"
)

// Vocabulary prefixes used by derived context terms.
const (
	xsdPrefix    = "xsd:"
	schemaOrgURL = "https://schema.org/"
)

// Term maps a property's declared type and format to a JSON-LD
// vocabulary term. Formats win over raw types because they carry more
// meaning.
func Term(propertyType, format string) string {
	switch format {
	case "date":
		return xsdPrefix + "date"
	case "date-time":
		return xsdPrefix + "dateTime"
	case "url", "uri":
		return schemaOrgURL + "URL"
	case "email":
		return schemaOrgURL + "email"
	}
	switch propertyType {
	case schema.TypeNumber:
		return xsdPrefix + "double"
	case schema.TypeInteger:
		return xsdPrefix + "integer"
	case schema.TypeBoolean:
		return xsdPrefix + "boolean"
	default:
		return xsdPrefix + "string"
	}
}

// DeriveContext builds a JSON-LD @context block typing the schema's
// top-level properties. References and nested shapes are semantically
// opaque here and map to plain ids.
func DeriveContext(s *schema.Schema) map[string]any {
	if s == nil || s.IsEnum() {
		return nil
	}
	bag := s.Properties()
	context := make(map[string]any, len(bag)+1)
	context["xsd"] = "http://www.w3.org/2001/XMLSchema#"
	for _, name := range bag.Names() {
		p := bag[name]
		switch p.Kind() {
		case schema.KindReference, schema.KindObject, schema.KindArray:
			context[name] = map[string]any{"@id": schemaOrgURL + name}
		default:
			context[name] = map[string]any{
				"@id":   schemaOrgURL + name,
				"@type": Term(p.Type, p.Format),
			}
		}
	}
	return context
}
