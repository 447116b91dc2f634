/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"fmt"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
)

// DisclosurePolicy states whether a key family's credentials support
// selective disclosure.
type DisclosurePolicy int

const (
	// DisclosureForbidden families only issue plain credentials.
	DisclosureForbidden DisclosurePolicy = iota
	// DisclosureOptional families pick the plain or selective-disclosure
	// suite based on the issuance request.
	DisclosureOptional
	// DisclosureRequired families only issue selective-disclosure
	// credentials.
	DisclosureRequired
)

// IssuanceRequest selects the kind of proof an issuance produces. Using
// distinct request types instead of optional fields keeps illegal
// combinations unrepresentable.
type IssuanceRequest interface {
	isIssuanceRequest()
}

// PlainIssuance requests an ordinary, fully-disclosed proof.
type PlainIssuance struct{}

func (PlainIssuance) isIssuanceRequest() {}

// DisclosureIssuance requests a selective-disclosure proof whose later
// derivations always include the fields addressed by MandatoryPointers.
type DisclosureIssuance struct {
	MandatoryPointers []string
}

func (DisclosureIssuance) isIssuanceRequest() {}

// Family describes how one key algorithm family signs. Immutable after
// registration.
type Family struct {
	KeyType pubkey.KeyType
	Policy  DisclosurePolicy

	// NewPlainSigner binds a plain signing suite to the key. Nil when the
	// family has no plain suite.
	NewPlainSigner func(key *didkey.KeyPair) (Signer, error)
	// NewDisclosureSigner binds a selective-disclosure signing suite to the
	// key. Nil when the family has no selective-disclosure suite.
	NewDisclosureSigner func(key *didkey.KeyPair, mandatoryPointers []string) (Signer, error)
}

// Registry holds two independent lookup tables: key families for signing
// dispatch and named cryptosuites for verification and derivation dispatch.
// The tables stay separate because verification starts from an untrusted
// document that only declares a cryptosuite name, not a key family.
//
// A Registry is populated at startup and read-only afterwards; it must not
// be mutated concurrently with use.
type Registry struct {
	families  map[pubkey.KeyType]*Family
	verifiers map[string]Verifier
	derivers  map[string]Deriver
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		families:  map[pubkey.KeyType]*Family{},
		verifiers: map[string]Verifier{},
		derivers:  map[string]Deriver{},
	}
}

// RegisterFamily adds a key family to the signing dispatch table.
func (r *Registry) RegisterFamily(f *Family) {
	r.families[f.KeyType] = f
}

// RegisterVerifier adds a verifier for the given cryptosuite name.
func (r *Registry) RegisterVerifier(cryptosuite string, v Verifier) {
	r.verifiers[cryptosuite] = v
}

// RegisterDeriver adds a deriver for the given cryptosuite name. Only
// originally issued selective-disclosure suites belong here: derived proofs
// declare a different cryptosuite name with no deriver entry, so a derived
// credential cannot be derived from again.
func (r *Registry) RegisterDeriver(cryptosuite string, d Deriver) {
	r.derivers[cryptosuite] = d
}

// PolicyFor reports the disclosure policy of a key family, and whether the
// family is registered at all.
func (r *Registry) PolicyFor(keyType pubkey.KeyType) (DisclosurePolicy, bool) {
	family, ok := r.families[keyType]
	if !ok {
		return DisclosureForbidden, false
	}

	return family.Policy, true
}

// SignerFor resolves the signing suite for the key's algorithm family,
// enforcing the family's disclosure policy against the issuance request.
func (r *Registry) SignerFor(key *didkey.KeyPair, req IssuanceRequest) (Signer, error) {
	keyType, err := key.KeyType()
	if err != nil {
		return nil, err
	}

	family, ok := r.families[keyType]
	if !ok {
		return nil, fmt.Errorf("no signing suite for key family %s: %w", keyType, didkey.ErrUnsupportedKeyType)
	}

	switch request := req.(type) {
	case PlainIssuance:
		if family.Policy == DisclosureRequired {
			return nil, fmt.Errorf("key family %s: %w", keyType, ErrSelectiveDisclosureRequired)
		}

		return family.NewPlainSigner(key)
	case DisclosureIssuance:
		if family.Policy == DisclosureForbidden {
			return nil, fmt.Errorf("key family %s: %w", keyType, ErrSelectiveDisclosureUnsupported)
		}

		return family.NewDisclosureSigner(key, request.MandatoryPointers)
	default:
		return nil, fmt.Errorf("unknown issuance request type %T", req)
	}
}

// VerifierFor resolves the verifier registered under a proof's declared
// cryptosuite name. Unknown names fail closed.
func (r *Registry) VerifierFor(cryptosuite string) (Verifier, error) {
	v, ok := r.verifiers[cryptosuite]
	if !ok {
		return nil, fmt.Errorf("%q: %w", cryptosuite, ErrUnsupportedCryptosuite)
	}

	return v, nil
}

// DeriverFor resolves the deriver registered under a proof's declared
// cryptosuite name. Plain and already-derived cryptosuites have no deriver
// and fail with ErrUnsupportedCryptosuite.
func (r *Registry) DeriverFor(cryptosuite string) (Deriver, error) {
	d, ok := r.derivers[cryptosuite]
	if !ok {
		return nil, fmt.Errorf("%q: %w", cryptosuite, ErrUnsupportedCryptosuite)
	}

	return d, nil
}
