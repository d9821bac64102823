// Package constraint checks concrete objects against compiled schema
// documents and reports violations with stable codes and dotted paths.
//
// The engine is deliberately a black box to the rest of the module: it
// consumes only the compiled map form produced by
// schema.CompiledSchema (id, type, properties, required, enum, $ref and
// the scalar keywords) and knows nothing about the authoring format or
// the x-required marker. References are resolved against the schema set
// handed to NewEngine, which also rejects structurally invalid sets up
// front.
package constraint
