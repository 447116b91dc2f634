/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecdsasd2023 implements the ecdsa-sd-2023 selective disclosure
// cryptosuite and its derived counterpart ecdsa-sd-proof-2023, both over the
// NIST P-256 curve.
//
// A base proof carries three things inside its CBOR proofValue: an issuer
// signature binding the proof configuration, an ephemeral public key and the
// hash of the mandatory statements together; the ephemeral public key
// itself; and one ephemeral signature per non-mandatory statement. Deriving
// a disclosure keeps the issuer signature and ephemeral key and drops the
// signatures of statements that are not revealed.
package ecdsasd2023

import (
	stdecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/multiformats/go-multibase"
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	ecdsasigner "github.com/trustbloc/vc-kit/crypto-ext/signers/ecdsa"
	ecdsaverifier "github.com/trustbloc/vc-kit/crypto-ext/verifiers/ecdsa"
	"github.com/trustbloc/vc-kit/internal/canonical"
	"github.com/trustbloc/vc-kit/models"
	"github.com/trustbloc/vc-kit/suite"
)

const (
	// SuiteType "ecdsa-sd-2023" identifies base proofs created at issuance.
	SuiteType = "ecdsa-sd-2023"

	// ProofSuiteType "ecdsa-sd-proof-2023" identifies derived proofs created
	// by a holder from an ecdsa-sd-2023 base proof.
	ProofSuiteType = "ecdsa-sd-proof-2023"
)

// A Signer is able to sign messages.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
}

// proofValue is the CBOR payload carried in the proofValue field of both
// base and derived proofs. For a base proof Signatures holds one entry per
// non-mandatory statement in canonical order; for a derived proof it holds
// entries for the revealed non-mandatory statements only.
type proofValue struct {
	BaseSignature []byte   `cbor:"baseSignature"`
	PublicKey     []byte   `cbor:"publicKey"`
	Signatures    [][]byte `cbor:"signatures"`
}

func encodeProofValue(pv *proofValue) (string, error) {
	raw, err := cbor.Marshal(pv)
	if err != nil {
		return "", err
	}

	return multibase.Encode(multibase.Base64url, raw)
}

func decodeProofValue(encoded string) (*proofValue, error) {
	_, raw, err := multibase.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding proofValue: %w", err)
	}

	pv := &proofValue{}
	if err := cbor.Unmarshal(raw, pv); err != nil {
		return nil, fmt.Errorf("decoding proofValue: %w", err)
	}

	return pv, nil
}

// Suite implements the ecdsa-sd-2023 cryptosuite for base proofs.
type Suite struct {
	ldLoader ld.DocumentLoader
	signer   Signer
}

// NewSigner constructs a signing Suite bound to the given P-256 signer.
func NewSigner(ldLoader ld.DocumentLoader, signer Signer) *Suite {
	return &Suite{ldLoader: ldLoader, signer: signer}
}

// NewVerifier constructs a Suite verifying ecdsa-sd-2023 base proofs.
func NewVerifier(ldLoader ld.DocumentLoader) *Suite {
	return &Suite{ldLoader: ldLoader}
}

// Type returns the suite's cryptosuite identifier.
func (s *Suite) Type() string {
	return SuiteType
}

// CreateProof implements the ecdsa-sd-2023 cryptosuite for Add Proof.
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

	allStatements, err := documentStatements(doc, s.ldLoader)
	if err != nil {
		return nil, err
	}

	mandatory, err := mandatoryStatementSet(doc, p.MandatoryPointers, s.ldLoader)
	if err != nil {
		return nil, err
	}

	ephKey, err := stdecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	ephPub := elliptic.MarshalCompressed(elliptic.P256(), ephKey.PublicKey.X, ephKey.PublicKey.Y)

	ephSecret := make([]byte, 32)
	ephKey.D.FillBytes(ephSecret)

	ephSigner, err := ecdsasigner.New(pubkey.ECDSAP256, ephSecret)
	if err != nil {
		return nil, err
	}

	confHash, err := configHash(doc["@context"], p, s.ldLoader)
	if err != nil {
		return nil, err
	}

	pv := &proofValue{PublicKey: ephPub}

	pv.BaseSignature, err = s.signer.Sign(baseSignatureInput(confHash, ephPub, mandatory))
	if err != nil {
		return nil, err
	}

	for _, statement := range allStatements {
		if _, ok := mandatory[statement]; ok {
			continue
		}

		sig, err := ephSigner.Sign([]byte(statement))
		if err != nil {
			return nil, err
		}

		pv.Signatures = append(pv.Signatures, sig)
	}

	p.ProofValue, err = encodeProofValue(pv)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// VerifyProof implements the ecdsa-sd-2023 cryptosuite for Verify Proof of a
// base proof, with the full document present.
func (s *Suite) VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error {
	if proof.Type != models.DataIntegrityProof || proof.CryptoSuite != SuiteType {
		return suite.ErrProofTransformation
	}

	pv, err := decodeProofValue(proof.ProofValue)
	if err != nil {
		return err
	}

	allStatements, err := documentStatements(doc, s.ldLoader)
	if err != nil {
		return err
	}

	mandatory, err := mandatoryStatementSet(doc, proof.MandatoryPointers, s.ldLoader)
	if err != nil {
		return err
	}

	confHash, err := configHash(doc["@context"], proof, s.ldLoader)
	if err != nil {
		return err
	}

	verifier := ecdsaverifier.NewES256()

	err = verifier.Verify(pv.BaseSignature, baseSignatureInput(confHash, pv.PublicKey, mandatory), opts.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to verify ecdsa-sd-2023 base signature: %w", err)
	}

	ephPub := &pubkey.PublicKey{Type: pubkey.ECDSAP256, Bytes: pv.PublicKey}

	var nonMandatory []string

	for _, statement := range allStatements {
		if _, ok := mandatory[statement]; !ok {
			nonMandatory = append(nonMandatory, statement)
		}
	}

	if len(nonMandatory) != len(pv.Signatures) {
		return fmt.Errorf("proof has %d statement signatures, document has %d non-mandatory statements",
			len(pv.Signatures), len(nonMandatory))
	}

	for i, statement := range nonMandatory {
		if err := verifier.Verify(pv.Signatures[i], []byte(statement), ephPub); err != nil {
			return fmt.Errorf("failed to verify ecdsa-sd-2023 statement signature: %w", err)
		}
	}

	return nil
}

func documentStatements(doc map[string]interface{}, loader ld.DocumentLoader) ([]string, error) {
	canonDoc, err := canonical.Canonicalize(doc, loader)
	if err != nil {
		return nil, err
	}

	return canonical.Statements(canonDoc), nil
}

// mandatoryStatementSet selects the mandatory pointers out of the document
// and returns the resulting canonical statements, keyed with their original
// blank node labels restored. An empty pointer list yields an empty set.
func mandatoryStatementSet(doc map[string]interface{}, pointers []string, loader ld.DocumentLoader) (map[string]struct{}, error) {
	set := map[string]struct{}{}

	if len(pointers) == 0 {
		return set, nil
	}

	skolemized, err := canonical.Skolemize(doc, loader)
	if err != nil {
		return nil, err
	}

	selected, err := canonical.SelectPointers(skolemized, pointers)
	if err != nil {
		return nil, err
	}

	statements, err := documentStatements(selected, loader)
	if err != nil {
		return nil, err
	}

	for _, statement := range canonical.RestoreBlankNodes(statements) {
		set[statement] = struct{}{}
	}

	return set, nil
}

func configHash(docCtx interface{}, p *models.Proof, loader ld.DocumentLoader) ([]byte, error) {
	conf, err := p.ToMap()
	if err != nil {
		return nil, err
	}

	delete(conf, "proofValue")
	conf["@context"] = docCtx

	canonConf, err := canonical.Canonicalize(conf, loader)
	if err != nil {
		return nil, err
	}

	confHash := sha256.Sum256(canonConf)

	return confHash[:], nil
}

// baseSignatureInput binds the proof configuration, the ephemeral key and
// the mandatory statements into the payload the issuer key signs. Mandatory
// statements are hashed in lexicographic order so the payload is computable
// from a disclosed subset as well as from the full document.
func baseSignatureInput(confHash, ephPub []byte, mandatory map[string]struct{}) []byte {
	statements := make([]string, 0, len(mandatory))
	for statement := range mandatory {
		statements = append(statements, statement)
	}

	sort.Strings(statements)

	h := sha256.New()
	for _, statement := range statements {
		h.Write([]byte(statement))
		h.Write([]byte("\n"))
	}

	mandHash := h.Sum(nil)

	input := make([]byte, 0, len(confHash)+len(ephPub)+len(mandHash))
	input = append(input, confHash...)
	input = append(input, ephPub...)
	input = append(input, mandHash...)

	return input
}
