package credential

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/attestia/vcschema/internal/jsonutil"
	"github.com/attestia/vcschema/schema"
)

// BaseContext is the W3C verifiable credentials context every envelope
// carries first.
const BaseContext = "https://www.w3.org/2018/credentials/v1"

// Credential is an unsigned verifiable-credential envelope around a
// validated subject object. Proof generation is someone else's job.
type Credential struct {
	Context           []any          `json:"@context"`
	ID                string         `json:"id"`
	Type              []string       `json:"type"`
	Issuer            string         `json:"issuer,omitempty"`
	IssuanceDate      string         `json:"issuanceDate"`
	CredentialSubject map[string]any `json:"credentialSubject"`
}

// Issuer builds credential envelopes for one issuing party. The zero
// value issues anonymously with wall-clock timestamps.
type Issuer struct {
	// ID names the issuing party, usually a DID or URL.
	ID string
	// Now overrides the issuance clock in tests.
	Now func() time.Time
}

// Issue wraps subject, already validated against s, in a credential
// envelope. The schema id becomes the credential's secondary type and
// its top-level properties drive the derived @context block.
func (i Issuer) Issue(subject map[string]any, s *schema.Schema) (*Credential, error) {
	if s == nil {
		return nil, fmt.Errorf("credential: schema is required")
	}
	if s.IsEnum() {
		return nil, fmt.Errorf("credential: schema %q is an enum, not an object shape", s.ID())
	}
	now := time.Now
	if i.Now != nil {
		now = i.Now
	}
	context := []any{BaseContext}
	if derived := DeriveContext(s); len(derived) > 0 {
		context = append(context, derived)
	}
	return &Credential{
		Context:           context,
		ID:                "urn:uuid:" + uuid.New().String(),
		Type:              []string{"VerifiableCredential", s.ID()},
		Issuer:            i.ID,
		IssuanceDate:      now().UTC().Format(time.RFC3339),
		CredentialSubject: jsonutil.DeepCopyValue(subject).(map[string]any),
	}, nil
}
