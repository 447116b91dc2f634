/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

// Holder derives selective disclosures from credentials it holds and signs
// presentations enveloping them.
type Holder struct {
	suites *suite.Registry
	now    func() time.Time
}

// HolderOpt configures a Holder.
type HolderOpt func(*Holder)

// WithHolderClock overrides the proof timestamp source.
func WithHolderClock(now func() time.Time) HolderOpt {
	return func(h *Holder) {
		h.now = now
	}
}

// NewHolder creates a Holder dispatching through the given registry.
func NewHolder(suites *suite.Registry, opts ...HolderOpt) *Holder {
	holder := &Holder{suites: suites, now: time.Now}

	for _, opt := range opts {
		opt(holder)
	}

	return holder
}

// DeriveOpt configures a Derive call.
type DeriveOpt func(*models.DeriveOptions)

// WithPresentationHeader binds the derived proof to the given header, when
// the credential's cryptosuite supports header binding.
func WithPresentationHeader(header []byte) DeriveOpt {
	return func(o *models.DeriveOptions) {
		o.PresentationHeader = header
	}
}

// Derive produces a disclosed credential revealing the fields addressed by
// the given selective pointers plus the mandatory pointers fixed at
// issuance. The deriver is dispatched on the cryptosuite name of the
// credential's proof, so plain and already-derived credentials fail with
// ErrUnsupportedCryptosuite. Derivation needs no private key.
func (h *Holder) Derive(vc *Credential, selectivePointers []string, opts ...DeriveOpt) (*Credential, error) {
	deriveOpts := &models.DeriveOptions{SelectivePointers: selectivePointers}
	for _, opt := range opts {
		opt(deriveOpts)
	}

	proofs, err := vc.Proofs()
	if err != nil {
		return nil, err
	}

	if len(proofs) == 0 {
		return nil, fmt.Errorf("credential has no proof: %w", ErrInvalidDocument)
	}

	if len(proofs) > 1 {
		return nil, fmt.Errorf("credential has %d proofs, selective disclosure needs exactly one: %w",
			len(proofs), ErrInvalidDocument)
	}

	deriver, err := h.suites.DeriverFor(proofs[0].CryptoSuite)
	if err != nil {
		return nil, err
	}

	docMap, err := vc.ToRawMap()
	if err != nil {
		return nil, err
	}

	delete(docMap, jsonFldProof)

	disclosed, derivedProof, err := deriver.DeriveProof(docMap, proofs[0], deriveOpts)
	if err != nil {
		return nil, err
	}

	proofMap, err := derivedProof.ToMap()
	if err != nil {
		return nil, err
	}

	disclosed[jsonFldProof] = proofMap

	return &Credential{docMap: disclosed}, nil
}

type presentOptions struct {
	challenge string
	domain    string
}

// PresentOpt configures a SignPresentation call.
type PresentOpt func(*presentOptions)

// WithChallenge sets the envelope proof challenge instead of generating a
// random one.
func WithChallenge(challenge string) PresentOpt {
	return func(o *presentOptions) {
		o.challenge = challenge
	}
}

// WithDomain sets the envelope proof domain.
func WithDomain(domain string) PresentOpt {
	return func(o *presentOptions) {
		o.domain = domain
	}
}

// SignPresentation adds an authentication proof over the presentation
// envelope with the holder's key. The proof covers the presentation without
// its embedded credentials, whose own proofs keep protecting them. When no
// challenge is given a random 32-character alphanumeric one is generated.
func (h *Holder) SignPresentation(vp *Presentation, key *didkey.KeyPair, opts ...PresentOpt) (*Presentation, error) {
	o := &presentOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.challenge == "" {
		challenge, err := generateChallenge()
		if err != nil {
			return nil, err
		}

		o.challenge = challenge
	}

	signer, err := h.signerForHolderKey(key)
	if err != nil {
		return nil, err
	}

	docMap, err := vp.ToRawMap()
	if err != nil {
		return nil, err
	}

	delete(docMap, jsonFldProof)

	envelope, err := copyDoc(docMap)
	if err != nil {
		return nil, err
	}

	delete(envelope, jsonFldCredential)

	proof, err := signer.CreateProof(envelope, &models.ProofOptions{
		VerificationMethodID: key.ID,
		Purpose:              models.Authentication,
		Created:              h.now(),
		Challenge:            o.challenge,
		Domain:               o.domain,
	})
	if err != nil {
		return nil, err
	}

	proofMap, err := proof.ToMap()
	if err != nil {
		return nil, err
	}

	docMap[jsonFldProof] = proofMap

	return &Presentation{docMap: docMap}, nil
}

// signerForHolderKey picks the plain suite of the key's family, falling
// back to the selective-disclosure suite with no mandatory pointers for
// families that cannot sign plainly. A bbs-2023 envelope proof with every
// statement revealed verifies like any other base proof.
func (h *Holder) signerForHolderKey(key *didkey.KeyPair) (suite.Signer, error) {
	keyType, err := key.KeyType()
	if err != nil {
		return nil, err
	}

	var req suite.IssuanceRequest = suite.PlainIssuance{}

	if policy, ok := h.suites.PolicyFor(keyType); ok && policy == suite.DisclosureRequired {
		req = suite.DisclosureIssuance{}
	}

	return h.suites.SignerFor(key, req)
}

const (
	challengeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	challengeLength   = 32
)

func generateChallenge() (string, error) {
	out := make([]byte, 0, challengeLength)
	buf := make([]byte, challengeLength)

	// Bytes at or above the largest multiple of the alphabet size are
	// rejected, otherwise the leading characters would be over-represented.
	maxAccepted := byte(256 - 256%len(challengeAlphabet))

	for len(out) < challengeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		for _, b := range buf {
			if b >= maxAccepted {
				continue
			}

			out = append(out, challengeAlphabet[int(b)%len(challengeAlphabet)])

			if len(out) == challengeLength {
				break
			}
		}
	}

	return string(out), nil
}
