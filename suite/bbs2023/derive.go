/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs2023

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/piprate/json-gold/ld"
	"github.com/samber/lo"
	"github.com/trustbloc/bbs-signature-go/bbs12381g2pub"

	"github.com/trustbloc/vc-kit/crypto-ext/verifiers/bbs"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/internal/canonical"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

// Deriver derives a bbs-proof-2023 proof from a credential carrying a
// bbs-2023 base proof, revealing the statements selected by the mandatory
// and selective pointers and no others.
type Deriver struct {
	ldLoader ld.DocumentLoader
}

// NewDeriver constructs a Deriver.
func NewDeriver(ldLoader ld.DocumentLoader) *Deriver {
	return &Deriver{ldLoader: ldLoader}
}

// DeriveProof returns the disclosed subset of doc together with a
// bbs-proof-2023 proof over it. The given doc must not contain the proof;
// p is the bbs-2023 base proof detached from it.
func (d *Deriver) DeriveProof(
	doc map[string]interface{},
	p *models.Proof,
	opts *models.DeriveOptions,
) (map[string]interface{}, *models.Proof, error) {
	if p.Type != models.DataIntegrityProof || p.CryptoSuite != SuiteType {
		return nil, nil, suite.ErrProofTransformation
	}

	docStatements, err := documentStatements(doc, d.ldLoader)
	if err != nil {
		return nil, nil, err
	}

	transformed := canonical.TransformBlankNodes(docStatements)

	skolemized, err := canonical.FromStatements(transformed, doc["@context"], d.ldLoader)
	if err != nil {
		return nil, nil, err
	}

	pointers := lo.Uniq(append(append([]string{}, p.MandatoryPointers...), opts.SelectivePointers...))

	disclosed, err := canonical.SelectPointers(skolemized, pointers)
	if err != nil {
		return nil, nil, err
	}

	disclosedStatements, err := documentStatements(disclosed, d.ldLoader)
	if err != nil {
		return nil, nil, err
	}

	confStatements, err := configStatements(doc["@context"], p, d.ldLoader)
	if err != nil {
		return nil, nil, err
	}

	revealIndexes, err := buildRevealIndexes(confStatements, transformed, disclosedStatements)
	if err != nil {
		return nil, nil, err
	}

	messages := canonical.StatementBytes(append(confStatements, docStatements...))

	_, signature, err := multibase.Decode(p.ProofValue)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding proofValue: %w", err)
	}

	key, err := didkey.ResolveKeyMaterial(p.VerificationMethod)
	if err != nil {
		return nil, nil, err
	}

	pub, err := key.PublicKey()
	if err != nil {
		return nil, nil, err
	}

	proofBytes, err := bbs12381g2pub.New().DeriveProof(
		messages, signature, opts.PresentationHeader, pub.Bytes, revealIndexes)
	if err != nil {
		return nil, nil, fmt.Errorf("deriving BBS proof: %w", err)
	}

	derived := &models.Proof{
		Type:               models.DataIntegrityProof,
		CryptoSuite:        ProofSuiteType,
		ProofPurpose:       p.ProofPurpose,
		VerificationMethod: p.VerificationMethod,
		Created:            p.Created,
		MandatoryPointers:  p.MandatoryPointers,
	}

	if len(opts.PresentationHeader) > 0 {
		derived.Nonce = base64.StdEncoding.EncodeToString(opts.PresentationHeader)
	}

	derived.ProofValue, err = multibase.Encode(multibase.Base58BTC, proofBytes)
	if err != nil {
		return nil, nil, err
	}

	return disclosed, derived, nil
}

// buildRevealIndexes maps the disclosed statements back to their positions
// in the signed message list. Every proof configuration statement is
// revealed, then each disclosed document statement at the index its original
// holds after the configuration block.
func buildRevealIndexes(confStatements, transformed, disclosedStatements []string) ([]int, error) {
	indexes := make([]int, 0, len(confStatements)+len(disclosedStatements))

	for i := range confStatements {
		indexes = append(indexes, i)
	}

	positions := make(map[string]int, len(transformed))
	for i, statement := range transformed {
		positions[statement] = i
	}

	for _, statement := range disclosedStatements {
		pos, ok := positions[statement]
		if !ok {
			return nil, fmt.Errorf("disclosed statement not present in source document: %q", statement)
		}

		indexes = append(indexes, len(confStatements)+pos)
	}

	return indexes, nil
}

// ProofVerifier verifies bbs-proof-2023 derived proofs over disclosed
// credentials.
type ProofVerifier struct {
	ldLoader ld.DocumentLoader
	verifier *bbs.G2SignatureProofVerifier
}

// NewProofVerifier constructs a ProofVerifier.
func NewProofVerifier(ldLoader ld.DocumentLoader) *ProofVerifier {
	return &ProofVerifier{ldLoader: ldLoader, verifier: bbs.NewBBSG2SignatureProofVerifier()}
}

// VerifyProof implements Verify Proof for the bbs-proof-2023 cryptosuite.
// The revealed messages are the base proof configuration statements followed
// by the disclosed document statements with their canonical blank node
// labels restored.
func (v *ProofVerifier) VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error {
	if proof.Type != models.DataIntegrityProof || proof.CryptoSuite != ProofSuiteType {
		return suite.ErrProofTransformation
	}

	docStatements, err := documentStatements(doc, v.ldLoader)
	if err != nil {
		return err
	}

	restored := canonical.RestoreBlankNodes(docStatements)

	baseProof := *proof
	baseProof.CryptoSuite = SuiteType
	baseProof.Nonce = ""

	confStatements, err := configStatements(doc["@context"], &baseProof, v.ldLoader)
	if err != nil {
		return err
	}

	revealed := canonical.StatementBytes(append(confStatements, restored...))

	var nonce []byte

	if proof.Nonce != "" {
		nonce, err = base64.StdEncoding.DecodeString(proof.Nonce)
		if err != nil {
			return fmt.Errorf("decoding proof nonce: %w", err)
		}
	}

	if opts.ExpectedPresentationHeader != nil && !bytes.Equal(nonce, opts.ExpectedPresentationHeader) {
		return fmt.Errorf("proof is not bound to the expected presentation header")
	}

	_, proofBytes, err := multibase.Decode(proof.ProofValue)
	if err != nil {
		return fmt.Errorf("decoding proofValue: %w", err)
	}

	if err := v.verifier.Verify(proofBytes, revealed, nonce, opts.PublicKey); err != nil {
		return fmt.Errorf("failed to verify bbs-proof-2023 DI proof: %w", err)
	}

	return nil
}
