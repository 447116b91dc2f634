/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs2023 implements the bbs-2023 data integrity cryptosuite and its
// derived counterpart bbs-proof-2023. A bbs-2023 base proof signs every
// canonical statement of the credential individually, which is what later
// lets a holder derive a bbs-proof-2023 proof revealing only a subset of
// them.
package bbs2023

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/crypto-ext/verifiers/bbs"
	"github.com/trustbloc/vc-kit/internal/canonical"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

const (
	// SuiteType "bbs-2023" identifies base proofs created at issuance.
	SuiteType = "bbs-2023"

	// ProofSuiteType "bbs-proof-2023" identifies derived proofs created by a
	// holder from a bbs-2023 base proof.
	ProofSuiteType = "bbs-proof-2023"
)

// A Signer is able to sign an ordered list of messages.
type Signer interface {
	Sign(messages [][]byte) ([]byte, error)
}

// A Verifier is able to verify a BBS signature over an ordered message list.
type Verifier interface {
	Verify(signature []byte, messages [][]byte, pubKey *pubkey.PublicKey) error
}

// Suite implements the bbs-2023 cryptosuite for base proofs.
type Suite struct {
	ldLoader ld.DocumentLoader
	signer   Signer
	verifier Verifier
}

// NewSigner constructs a signing Suite bound to the given signer.
func NewSigner(ldLoader ld.DocumentLoader, signer Signer) *Suite {
	return &Suite{ldLoader: ldLoader, signer: signer}
}

// NewVerifier constructs a Suite verifying bbs-2023 base proofs.
func NewVerifier(ldLoader ld.DocumentLoader) *Suite {
	return &Suite{ldLoader: ldLoader, verifier: bbs.NewBBSG2SignatureVerifier()}
}

// Type returns the suite's cryptosuite identifier.
func (s *Suite) Type() string {
	return SuiteType
}

// CreateProof implements the bbs-2023 cryptosuite for Add Proof. The
// mandatory pointers fixed at issuance are recorded in the proof so every
// derived disclosure is forced to carry them.
func (s *Suite) CreateProof(doc map[string]interface{}, opts *models.ProofOptions) (*models.Proof, error) {
	p := &models.Proof{
		Type:               models.DataIntegrityProof,
		CryptoSuite:        SuiteType,
		ProofPurpose:       opts.Purpose,
		VerificationMethod: opts.VerificationMethodID,
		Created:            opts.Created.Format(models.DateTimeFormat),
		Challenge:          opts.Challenge,
		Domain:             opts.Domain,
		MandatoryPointers:  opts.MandatoryPointers,
	}

	messages, err := signatureMessages(doc, p, s.ldLoader)
	if err != nil {
		return nil, err
	}

	sig, err := s.signer.Sign(messages)
	if err != nil {
		return nil, err
	}

	p.ProofValue, err = multibase.Encode(multibase.Base58BTC, sig)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// VerifyProof implements the bbs-2023 cryptosuite for Verify Proof of a base
// proof, with every statement revealed.
func (s *Suite) VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error {
	if proof.Type != models.DataIntegrityProof || proof.CryptoSuite != SuiteType {
		return suite.ErrProofTransformation
	}

	messages, err := signatureMessages(doc, proof, s.ldLoader)
	if err != nil {
		return err
	}

	_, signature, err := multibase.Decode(proof.ProofValue)
	if err != nil {
		return fmt.Errorf("decoding proofValue: %w", err)
	}

	if err := s.verifier.Verify(signature, messages, opts.PublicKey); err != nil {
		return fmt.Errorf("failed to verify bbs-2023 DI proof: %w", err)
	}

	return nil
}

// signatureMessages assembles the ordered message list a bbs-2023 proof
// signs: the canonical statements of the proof configuration followed by the
// canonical statements of the document.
func signatureMessages(doc map[string]interface{}, p *models.Proof, loader ld.DocumentLoader) ([][]byte, error) {
	docStatements, err := documentStatements(doc, loader)
	if err != nil {
		return nil, err
	}

	confStatements, err := configStatements(doc["@context"], p, loader)
	if err != nil {
		return nil, err
	}

	return canonical.StatementBytes(append(confStatements, docStatements...)), nil
}

func documentStatements(doc map[string]interface{}, loader ld.DocumentLoader) ([]string, error) {
	canonDoc, err := canonical.Canonicalize(doc, loader)
	if err != nil {
		return nil, err
	}

	return canonical.Statements(canonDoc), nil
}

func configStatements(docCtx interface{}, p *models.Proof, loader ld.DocumentLoader) ([]string, error) {
	conf, err := p.ToMap()
	if err != nil {
		return nil, err
	}

	delete(conf, "proofValue")
	delete(conf, "nonce")
	conf["@context"] = docCtx

	canonConf, err := canonical.Canonicalize(conf, loader)
	if err != nil {
		return nil, err
	}

	return canonical.Statements(canonConf), nil
}
