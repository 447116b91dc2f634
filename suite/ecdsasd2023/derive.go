/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsasd2023

import (
	"fmt"

	"github.com/piprate/json-gold/ld"
	"github.com/samber/lo"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	ecdsaverifier "github.com/trustbloc/vc-kit/crypto-ext/verifiers/ecdsa"
	"github.com/trustbloc/vc-kit/internal/canonical"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

// Deriver derives an ecdsa-sd-proof-2023 proof from a credential carrying an
// ecdsa-sd-2023 base proof.
type Deriver struct {
	ldLoader ld.DocumentLoader
}

// NewDeriver constructs a Deriver.
func NewDeriver(ldLoader ld.DocumentLoader) *Deriver {
	return &Deriver{ldLoader: ldLoader}
}

// DeriveProof returns the disclosed subset of doc together with an
// ecdsa-sd-proof-2023 proof over it. The given doc must not contain the
// proof; p is the ecdsa-sd-2023 base proof detached from it.
//
// ECDSA statement signatures are fixed at issuance, so unlike bbs-2023 this
// suite has nothing to bind a presentation header into; passing one is an
// error rather than a silent no-op.
func (d *Deriver) DeriveProof(
	doc map[string]interface{},
	p *models.Proof,
	opts *models.DeriveOptions,
) (map[string]interface{}, *models.Proof, error) {
	if p.Type != models.DataIntegrityProof || p.CryptoSuite != SuiteType {
		return nil, nil, suite.ErrProofTransformation
	}

	if len(opts.PresentationHeader) > 0 {
		return nil, nil, fmt.Errorf("ecdsa-sd-2023 proofs cannot bind a presentation header")
	}

	pv, err := decodeProofValue(p.ProofValue)
	if err != nil {
		return nil, nil, err
	}

	allStatements, err := documentStatements(doc, d.ldLoader)
	if err != nil {
		return nil, nil, err
	}

	mandatory, err := mandatoryStatementSet(doc, p.MandatoryPointers, d.ldLoader)
	if err != nil {
		return nil, nil, err
	}

	signatureByStatement := map[string][]byte{}
	idx := 0

	for _, statement := range allStatements {
		if _, ok := mandatory[statement]; ok {
			continue
		}

		if idx >= len(pv.Signatures) {
			return nil, nil, fmt.Errorf("proof value is missing statement signatures")
		}

		signatureByStatement[statement] = pv.Signatures[idx]
		idx++
	}

	skolemized, err := canonical.Skolemize(doc, d.ldLoader)
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

	derivedPV := &proofValue{
		BaseSignature: pv.BaseSignature,
		PublicKey:     pv.PublicKey,
	}

	for _, statement := range canonical.RestoreBlankNodes(disclosedStatements) {
		if _, ok := mandatory[statement]; ok {
			continue
		}

		sig, ok := signatureByStatement[statement]
		if !ok {
			return nil, nil, fmt.Errorf("disclosed statement not present in source document: %q", statement)
		}

		derivedPV.Signatures = append(derivedPV.Signatures, sig)
	}

	derived := &models.Proof{
		Type:               models.DataIntegrityProof,
		CryptoSuite:        ProofSuiteType,
		ProofPurpose:       p.ProofPurpose,
		VerificationMethod: p.VerificationMethod,
		Created:            p.Created,
		MandatoryPointers:  p.MandatoryPointers,
	}

	derived.ProofValue, err = encodeProofValue(derivedPV)
	if err != nil {
		return nil, nil, err
	}

	return disclosed, derived, nil
}

// ProofVerifier verifies ecdsa-sd-proof-2023 derived proofs over disclosed
// credentials.
type ProofVerifier struct {
	ldLoader ld.DocumentLoader
}

// NewProofVerifier constructs a ProofVerifier.
func NewProofVerifier(ldLoader ld.DocumentLoader) *ProofVerifier {
	return &ProofVerifier{ldLoader: ldLoader}
}

// VerifyProof implements Verify Proof for the ecdsa-sd-proof-2023
// cryptosuite. The issuer's base signature is checked against the proof
// configuration of the underlying base proof and the mandatory statements,
// then every revealed non-mandatory statement is checked against the
// ephemeral key embedded in the proof value.
func (v *ProofVerifier) VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error {
	if proof.Type != models.DataIntegrityProof || proof.CryptoSuite != ProofSuiteType {
		return suite.ErrProofTransformation
	}

	pv, err := decodeProofValue(proof.ProofValue)
	if err != nil {
		return err
	}

	mandatory, err := mandatoryStatementSet(doc, proof.MandatoryPointers, v.ldLoader)
	if err != nil {
		return err
	}

	baseProof := *proof
	baseProof.CryptoSuite = SuiteType

	confHash, err := configHash(doc["@context"], &baseProof, v.ldLoader)
	if err != nil {
		return err
	}

	verifier := ecdsaverifier.NewES256()

	err = verifier.Verify(pv.BaseSignature, baseSignatureInput(confHash, pv.PublicKey, mandatory), opts.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to verify ecdsa-sd-proof-2023 base signature: %w", err)
	}

	docStatements, err := documentStatements(doc, v.ldLoader)
	if err != nil {
		return err
	}

	ephPub := &pubkey.PublicKey{Type: pubkey.ECDSAP256, Bytes: pv.PublicKey}
	idx := 0

	for _, statement := range canonical.RestoreBlankNodes(docStatements) {
		if _, ok := mandatory[statement]; ok {
			continue
		}

		if idx >= len(pv.Signatures) {
			return fmt.Errorf("proof value is missing statement signatures")
		}

		if err := verifier.Verify(pv.Signatures[idx], []byte(statement), ephPub); err != nil {
			return fmt.Errorf("failed to verify ecdsa-sd-proof-2023 statement signature: %w", err)
		}

		idx++
	}

	if idx != len(pv.Signatures) {
		return fmt.Errorf("proof value has %d statement signatures, disclosed document needs %d",
			len(pv.Signatures), idx)
	}

	return nil
}
