/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package eddsa2022

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/multiformats/go-multibase"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/crypto-ext/verifiers/ed25519"
	"github.com/trustbloc/vc-kit/internal/canonical"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

const (
	// SuiteType "eddsa-rdfc-2022" is the data integrity cryptosuite identifier
	// for eddsa signatures with RDF canonicalization as per this spec:
	// https://w3c.github.io/vc-di-eddsa/#eddsa-rdfc-2022
	SuiteType = "eddsa-rdfc-2022"
)

// A Signer is able to sign messages.
type Signer interface {
	// Sign will sign msg using a private key internal to the Signer.
	Sign(msg []byte) ([]byte, error)
}

// A Verifier is able to verify messages.
type Verifier interface {
	// Verify will verify a signature for the given msg using the given
	// public key, returning nil iff the signature is valid.
	Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error
}

// Suite implements the eddsa-rdfc-2022 data integrity cryptosuite.
type Suite struct {
	ldLoader ld.DocumentLoader
	signer   Signer
	verifier Verifier
}

// NewSigner constructs a signing Suite bound to the given signer.
func NewSigner(ldLoader ld.DocumentLoader, signer Signer) *Suite {
	return &Suite{ldLoader: ldLoader, signer: signer}
}

// NewVerifier constructs a verification Suite.
func NewVerifier(ldLoader ld.DocumentLoader) *Suite {
	return &Suite{ldLoader: ldLoader, verifier: ed25519.New()}
}

// Type returns the suite's cryptosuite identifier.
func (s *Suite) Type() string {
	return SuiteType
}

// CreateProof implements the eddsa-rdfc-2022 cryptosuite for Add Proof.
func (s *Suite) CreateProof(doc map[string]interface{}, opts *models.ProofOptions) (*models.Proof, error) {
	p := &models.Proof{
		Type:               models.DataIntegrityProof,
		CryptoSuite:        SuiteType,
		ProofPurpose:       opts.Purpose,
		VerificationMethod: opts.VerificationMethodID,
		Created:            opts.Created.Format(models.DateTimeFormat),
		Challenge:          opts.Challenge,
		Domain:             opts.Domain,
	}

	docHash, err := hashVerifyData(doc, p, s.ldLoader)
	if err != nil {
		return nil, err
	}

	sig, err := s.signer.Sign(docHash)
	if err != nil {
		return nil, err
	}

	p.ProofValue, err = multibase.Encode(multibase.Base58BTC, sig)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// VerifyProof implements the eddsa-rdfc-2022 cryptosuite for Verify Proof.
func (s *Suite) VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error {
	if proof.Type != models.DataIntegrityProof || proof.CryptoSuite != SuiteType {
		return suite.ErrProofTransformation
	}

	docHash, err := hashVerifyData(doc, proof, s.ldLoader)
	if err != nil {
		return err
	}

	_, signature, err := multibase.Decode(proof.ProofValue)
	if err != nil {
		return fmt.Errorf("decoding proofValue: %w", err)
	}

	if err := s.verifier.Verify(signature, docHash, opts.PublicKey); err != nil {
		return fmt.Errorf("failed to verify eddsa-rdfc-2022 DI proof: %w", err)
	}

	return nil
}

func hashVerifyData(doc map[string]interface{}, p *models.Proof, loader ld.DocumentLoader) ([]byte, error) {
	canonDoc, err := canonical.Canonicalize(doc, loader)
	if err != nil {
		return nil, err
	}

	confData, err := proofConfig(doc["@context"], p)
	if err != nil {
		return nil, err
	}

	canonConf, err := canonical.Canonicalize(confData, loader)
	if err != nil {
		return nil, err
	}

	return hashData(canonDoc, canonConf, sha256.New()), nil
}

func hashData(transformedDoc, confData []byte, h hash.Hash) []byte {
	h.Write(transformedDoc)
	docHash := h.Sum(nil)

	h.Reset()
	h.Write(confData)

	return h.Sum(docHash)
}

func proofConfig(docCtx interface{}, p *models.Proof) (map[string]interface{}, error) {
	conf, err := p.ToMap()
	if err != nil {
		return nil, err
	}

	delete(conf, "proofValue")
	conf["@context"] = docCtx

	return conf, nil
}
