/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa2019

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/multiformats/go-multibase"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/crypto-ext/verifiers/ecdsa"
	"github.com/trustbloc/vc-kit/internal/canonical"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

const (
	// SuiteType "ecdsa-rdfc-2019" is the data integrity cryptosuite identifier
	// for ecdsa signatures with RDF canonicalization as per this spec:
	// https://www.w3.org/TR/vc-di-ecdsa/#ecdsa-rdfc-2019
	SuiteType = "ecdsa-rdfc-2019"
)

// A Signer is able to sign messages.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
}

// A Verifier is able to verify messages.
type Verifier interface {
	Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error
}

// Suite implements the ecdsa-rdfc-2019 data integrity cryptosuite for the
// NIST P-256, P-384 and P-521 curves.
type Suite struct {
	ldLoader ld.DocumentLoader
	signer   Signer
	keyType  pubkey.KeyType
}

// NewSigner constructs a signing Suite bound to the given signer. The key
// type selects the message digest, matching the curve of the signing key.
func NewSigner(ldLoader ld.DocumentLoader, signer Signer, keyType pubkey.KeyType) *Suite {
	return &Suite{ldLoader: ldLoader, signer: signer, keyType: keyType}
}

// NewVerifier constructs a verification Suite. The verifier and digest are
// selected per proof from the verification key's curve.
func NewVerifier(ldLoader ld.DocumentLoader) *Suite {
	return &Suite{ldLoader: ldLoader}
}

// Type returns the suite's cryptosuite identifier.
func (s *Suite) Type() string {
	return SuiteType
}

// CreateProof implements the ecdsa-rdfc-2019 cryptosuite for Add Proof.
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

	h, err := digestForKeyType(s.keyType)
	if err != nil {
		return nil, err
	}

	docHash, err := hashVerifyData(doc, p, s.ldLoader, h)
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

// VerifyProof implements the ecdsa-rdfc-2019 cryptosuite for Verify Proof.
func (s *Suite) VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error {
	if proof.Type != models.DataIntegrityProof || proof.CryptoSuite != SuiteType {
		return suite.ErrProofTransformation
	}

	verifier, err := verifierForKeyType(opts.PublicKey.Type)
	if err != nil {
		return err
	}

	h, err := digestForKeyType(opts.PublicKey.Type)
	if err != nil {
		return err
	}

	docHash, err := hashVerifyData(doc, proof, s.ldLoader, h)
	if err != nil {
		return err
	}

	_, signature, err := multibase.Decode(proof.ProofValue)
	if err != nil {
		return fmt.Errorf("decoding proofValue: %w", err)
	}

	if err := verifier.Verify(signature, docHash, opts.PublicKey); err != nil {
		return fmt.Errorf("failed to verify ecdsa-rdfc-2019 DI proof: %w", err)
	}

	return nil
}

func digestForKeyType(keyType pubkey.KeyType) (hash.Hash, error) {
	switch keyType {
	case pubkey.ECDSAP256:
		return sha256.New(), nil
	case pubkey.ECDSAP384:
		return sha512.New384(), nil
	case pubkey.ECDSAP521:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unsupported ECDSA key type %q", keyType)
	}
}

func verifierForKeyType(keyType pubkey.KeyType) (Verifier, error) {
	switch keyType {
	case pubkey.ECDSAP256:
		return ecdsa.NewES256(), nil
	case pubkey.ECDSAP384:
		return ecdsa.NewES384(), nil
	case pubkey.ECDSAP521:
		return ecdsa.NewES521(), nil
	default:
		return nil, fmt.Errorf("unsupported ECDSA key type %q", keyType)
	}
}

func hashVerifyData(doc map[string]interface{}, p *models.Proof, loader ld.DocumentLoader, h hash.Hash) ([]byte, error) {
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

	return hashData(canonDoc, canonConf, h), nil
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
