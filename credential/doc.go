// Package credential wraps validated objects in unsigned
// verifiable-credential envelopes and derives JSON-LD context blocks
// from schema property types. Signing and transport are out of scope.
package credential
