/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"time"

	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

// Issuer signs credentials. Issuance is pure: the input credential is left
// untouched and a new signed credential is returned.
type Issuer struct {
	suites *suite.Registry
	now    func() time.Time
}

// IssuerOpt configures an Issuer.
type IssuerOpt func(*Issuer)

// WithClock overrides the proof timestamp source.
func WithClock(now func() time.Time) IssuerOpt {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an Issuer dispatching through the given registry.
func NewIssuer(suites *suite.Registry, opts ...IssuerOpt) *Issuer {
	issuer := &Issuer{suites: suites, now: time.Now}

	for _, opt := range opts {
		opt(issuer)
	}

	return issuer
}

// Issue signs the credential with the given key, producing the proof kind
// the issuance request asks for. The signing suite is selected from the
// key's algorithm family; a request the family's disclosure policy does not
// allow fails before any signing happens. The issuer field of the returned
// credential is the key's controller DID.
func (i *Issuer) Issue(vc *Credential, key *didkey.KeyPair, req suite.IssuanceRequest) (*Credential, error) {
	signer, err := i.suites.SignerFor(key, req)
	if err != nil {
		return nil, err
	}

	docMap, err := vc.ToRawMap()
	if err != nil {
		return nil, err
	}

	delete(docMap, jsonFldProof)
	docMap[jsonFldIssuer] = key.Controller

	proofOpts := &models.ProofOptions{
		VerificationMethodID: key.ID,
		Purpose:              models.AssertionMethod,
		Created:              i.now(),
	}

	if disclosure, ok := req.(suite.DisclosureIssuance); ok {
		proofOpts.MandatoryPointers = disclosure.MandatoryPointers
	}

	proof, err := signer.CreateProof(docMap, proofOpts)
	if err != nil {
		return nil, err
	}

	proofMap, err := proof.ToMap()
	if err != nil {
		return nil, err
	}

	docMap[jsonFldProof] = proofMap

	return &Credential{docMap: docMap}, nil
}
