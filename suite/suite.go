/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package suite defines the cryptosuite contracts and the registry that
// routes between them: signing dispatch keyed by a key's algorithm family,
// verification and derivation dispatch keyed by a proof's self-declared
// cryptosuite name.
package suite

import (
	"errors"

	"github.com/trustbloc/vc-kit/models"
)

var (
	// ErrUnsupportedCryptosuite is returned when a proof's declared
	// cryptosuite name has no registered verifier or deriver. Verification
	// fails closed: an unknown name is never handed to a default verifier.
	ErrUnsupportedCryptosuite = errors.New("unsupported cryptosuite")
	// ErrSelectiveDisclosureRequired is returned when a key family that only
	// signs selective-disclosure credentials is asked for a plain issuance.
	ErrSelectiveDisclosureRequired = errors.New("key family requires selective disclosure issuance")
	// ErrSelectiveDisclosureUnsupported is returned when selective
	// disclosure options are supplied for a key family that cannot honor
	// them.
	ErrSelectiveDisclosureUnsupported = errors.New("key family does not support selective disclosure")
	// ErrProofTransformation is returned by a cryptosuite when the proof
	// options do not match the suite.
	ErrProofTransformation = errors.New("proof transformation options mismatch cryptosuite")
)

// A Signer creates proofs over JSON-LD documents.
type Signer interface {
	// CreateProof creates a proof over the given document, which must not
	// already contain one.
	CreateProof(doc map[string]interface{}, opts *models.ProofOptions) (*models.Proof, error)

	// Type returns the cryptosuite name stamped into created proofs.
	Type() string
}

// A Verifier checks proofs over JSON-LD documents. A verification failure is
// reported as an error by the suite; the engines above translate it into a
// result, never a fault.
type Verifier interface {
	// VerifyProof verifies the proof over the given document, which must not
	// contain the proof being checked.
	VerifyProof(doc map[string]interface{}, proof *models.Proof, opts *models.ProofOptions) error
}

// A Deriver consumes an originally issued selective-disclosure proof and
// produces a disclosed document with a new, smaller proof. Derivation is
// distinct from verification: it needs the full original signature, and its
// output proof is registered under a different cryptosuite name, which is
// what makes derivation one-shot.
type Deriver interface {
	// DeriveProof returns the disclosed subset of doc together with the
	// derived proof over that subset.
	DeriveProof(doc map[string]interface{}, proof *models.Proof,
		opts *models.DeriveOptions) (map[string]interface{}, *models.Proof, error)
}
