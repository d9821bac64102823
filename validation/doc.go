// Package validation turns untrusted input objects into
// schema-conformant output or a structured ValidationError.
//
// A Validator is built once over a set of schemas, which it
// cross-validates as a whole (duplicate ids, structural problems,
// cyclic references all fail construction). Validate then runs an
// ordered pipeline over a deep copy of the input: optional null
// cleanup, removal of undeclared attributes, coercion of declared
// attributes to their schema types, the constraint check, and an
// optional recovery pass that nullifies empty-string values failing
// only format or enum constraints on non-required properties.
//
//	v, err := validation.New([]*schema.Schema{profile, address})
//	out, err := v.Validate(input, "Profile",
//		validation.WithNullifyEmptyValues(),
//		validation.WithCleanupNulls())
//
// Normalize applies the copy and coercion steps only, and
// ReferenceIDs reports a schema's transitive $ref dependencies. All
// calls are synchronous and never mutate the caller's data, so one
// Validator is safe for concurrent use.
package validation
