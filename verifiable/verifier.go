/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"github.com/piprate/json-gold/ld"
	"github.com/samber/lo"
	docjsonld "github.com/trustbloc/did-go/doc/ld/validator"

	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
	jsonutil "github.com/trustbloc/vc-kit/util/json"
)

// ProofResult is the verification outcome of a single proof.
type ProofResult struct {
	Verified bool `json:"verified"`
	// VerificationMethod is the resolved key the proof was checked against.
	// Nil when the verification method could not be resolved at all.
	VerificationMethod *didkey.KeyPair `json:"verificationMethod,omitempty"`
	// Error names the reason a proof did not verify. A failed proof is a
	// statement about the input, not a fault, so it lives here instead of
	// in the operation's error return.
	Error string `json:"error,omitempty"`
}

// VerificationResult is the verification outcome of one proof-carrying
// document. Verified is true iff the document has at least one proof and
// every proof verified.
type VerificationResult struct {
	Verified bool          `json:"verified"`
	Results  []ProofResult `json:"results"`
}

// PresentationVerificationResult is the two-layer verification outcome of a
// presentation: the envelope proofs and every embedded credential are
// always all checked, and Verified is the conjunction.
type PresentationVerificationResult struct {
	Verified           bool                  `json:"verified"`
	CredentialResults  []*VerificationResult `json:"credentialResults"`
	PresentationResult *VerificationResult   `json:"presentationResult"`
}

// Verifier verifies credentials and presentations.
type Verifier struct {
	suites         *suite.Registry
	documentLoader ld.DocumentLoader
}

// NewVerifier creates a Verifier dispatching through the given registry.
// The document loader backs strict JSON-LD validation of every verified
// document: a term the document's contexts do not map would silently drop
// out of canonicalization, so it is rejected before any proof is checked.
func NewVerifier(suites *suite.Registry, documentLoader ld.DocumentLoader) *Verifier {
	return &Verifier{suites: suites, documentLoader: documentLoader}
}

type verifyOptions struct {
	verificationMethod     interface{}
	credentialVerification interface{}
	presentationHeader     []byte
}

// VerifyOpt configures a verification call.
type VerifyOpt func(*verifyOptions)

// WithVerificationMethod pins verification to the given key material (a
// did:key URI, a key object map, or a KeyPair) instead of the verification
// method each proof declares.
func WithVerificationMethod(vm interface{}) VerifyOpt {
	return func(o *verifyOptions) {
		o.verificationMethod = vm
	}
}

// WithCredentialVerificationMethod pins the verification of every
// credential embedded in a presentation to the given key material. It is
// independent of WithVerificationMethod, which pins the presentation's own
// envelope proof.
func WithCredentialVerificationMethod(vm interface{}) VerifyOpt {
	return func(o *verifyOptions) {
		o.credentialVerification = vm
	}
}

// WithExpectedPresentationHeader requires derived proofs to be bound to
// exactly this presentation header.
func WithExpectedPresentationHeader(header []byte) VerifyOpt {
	return func(o *verifyOptions) {
		o.presentationHeader = header
	}
}

// VerifyCredential checks every proof on the credential. Signature
// mismatches, unresolvable keys and unknown cryptosuites are reported in
// the result, not as errors: they are statements about the credential.
func (v *Verifier) VerifyCredential(vc *Credential, opts ...VerifyOpt) (*VerificationResult, error) {
	o := &verifyOptions{}
	for _, opt := range opts {
		opt(o)
	}

	docMap, err := vc.ToRawMap()
	if err != nil {
		return nil, err
	}

	delete(docMap, jsonFldProof)

	return v.verifyProofSet(docMap, vc.Proofs, models.AssertionMethod, o), nil
}

// VerifyPresentation checks the presentation envelope proofs and every
// embedded credential. Both layers are always evaluated in full; a failure
// in one never short-circuits the other.
func (v *Verifier) VerifyPresentation(vp *Presentation, opts ...VerifyOpt) (*PresentationVerificationResult, error) {
	o := &verifyOptions{}
	for _, opt := range opts {
		opt(o)
	}

	credentials, err := vp.Credentials()
	if err != nil {
		return nil, err
	}

	credResults := make([]*VerificationResult, 0, len(credentials))

	for _, vc := range credentials {
		credOpts := []VerifyOpt{}
		if o.presentationHeader != nil {
			credOpts = append(credOpts, WithExpectedPresentationHeader(o.presentationHeader))
		}

		if o.credentialVerification != nil {
			credOpts = append(credOpts, WithVerificationMethod(o.credentialVerification))
		}

		credResult, err := v.VerifyCredential(vc, credOpts...)
		if err != nil {
			return nil, err
		}

		credResults = append(credResults, credResult)
	}

	envelope, err := vp.ToRawMap()
	if err != nil {
		return nil, err
	}

	// The envelope proof covers the presentation without its embedded
	// credentials; each credential is protected by its own proofs.
	delete(envelope, jsonFldProof)
	delete(envelope, jsonFldCredential)

	presResult := v.verifyProofSet(envelope, vp.Proofs, models.Authentication, o)

	verified := presResult.Verified &&
		lo.EveryBy(credResults, func(r *VerificationResult) bool { return r.Verified })

	return &PresentationVerificationResult{
		Verified:           verified,
		CredentialResults:  credResults,
		PresentationResult: presResult,
	}, nil
}

func (v *Verifier) verifyProofSet(
	docMap map[string]interface{},
	proofSource func() ([]*models.Proof, error),
	purpose string,
	o *verifyOptions,
) *VerificationResult {
	if err := v.validateJSONLD(docMap); err != nil {
		return &VerificationResult{Results: []ProofResult{{Error: err.Error()}}}
	}

	proofs, err := proofSource()
	if err != nil {
		return &VerificationResult{Results: []ProofResult{{Error: err.Error()}}}
	}

	if len(proofs) == 0 {
		return &VerificationResult{}
	}

	results := make([]ProofResult, 0, len(proofs))
	for _, proof := range proofs {
		results = append(results, v.verifyProof(docMap, proof, purpose, o))
	}

	return &VerificationResult{
		Verified: lo.EveryBy(results, func(r ProofResult) bool { return r.Verified }),
		Results:  results,
	}
}

// validateJSONLD rejects documents whose structure survives JSON-LD
// compaction differently than it arrived, which is what happens when a
// field is not mapped by the document's contexts. Without this check such
// a field would be dropped from canonicalization and the proof would still
// verify. ValidateJSONLDMap rewrites the contexts of its input, so it gets
// a shallow copy.
func (v *Verifier) validateJSONLD(docMap map[string]interface{}) error {
	return docjsonld.ValidateJSONLDMap(jsonutil.ShallowCopyObj(docMap),
		docjsonld.WithDocumentLoader(v.documentLoader),
		docjsonld.WithStrictValidation(true),
	)
}

func (v *Verifier) verifyProof(
	docMap map[string]interface{},
	proof *models.Proof,
	purpose string,
	o *verifyOptions,
) ProofResult {
	suiteVerifier, err := v.suites.VerifierFor(proof.CryptoSuite)
	if err != nil {
		return ProofResult{Error: err.Error()}
	}

	vmSource := o.verificationMethod
	if vmSource == nil {
		vmSource = proof.VerificationMethod
	}

	key, err := didkey.ResolveKeyMaterial(vmSource)
	if err != nil {
		return ProofResult{Error: err.Error()}
	}

	pub, err := key.PublicKey()
	if err != nil {
		return ProofResult{VerificationMethod: key, Error: err.Error()}
	}

	if proof.ProofPurpose != purpose {
		return ProofResult{
			VerificationMethod: key,
			Error:              "proof purpose " + proof.ProofPurpose + ", expected " + purpose,
		}
	}

	proofOpts := &models.ProofOptions{
		VerificationMethodID:       key.ID,
		PublicKey:                  pub,
		Purpose:                    purpose,
		ExpectedPresentationHeader: o.presentationHeader,
	}

	if err := suiteVerifier.VerifyProof(docMap, proof, proofOpts); err != nil {
		return ProofResult{VerificationMethod: key, Error: err.Error()}
	}

	return ProofResult{Verified: true, VerificationMethod: key}
}
