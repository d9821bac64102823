// Package schema models named object and enum schemas for credential
// data and normalizes raw property declarations into them.
//
// A declaration is a bag of property descriptors. Normalization infers
// missing types (properties imply object, items imply array, anything
// else is a string), fills structural defaults, and promotes
// per-property required flags into a schema-level required list while
// marking each promoted property with x-required so required-ness
// survives the compiled representation handed to the constraint engine.
//
// Schemas are immutable once built. Derived schemas come from the
// algebra operations:
//
//	base, _ := schema.New("Profile", bag)
//	patch, _ := base.Pure("ProfilePatch")       // strip required/default
//	slim, _ := base.Only("ProfileName", "name") // keep a subset
//	more, _ := base.Extend("ProfileV2", extra)  // shallow-merge properties
//	env, _ := base.Wrap("ProfileEnvelope", "profile", nil)
//
// Every operation returns a new independent Schema; none mutates its
// receiver.
package schema
