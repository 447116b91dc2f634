/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package models holds the Data Integrity proof model shared by the
// cryptosuites and the credential engines.
package models

import (
	"time"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	jsonutil "github.com/trustbloc/vc-kit/util/json"
)

const (
	// DataIntegrityProof is the proof type of every proof this module
	// produces or verifies.
	DataIntegrityProof = "DataIntegrityProof"
	// DateTimeFormat is the datetime format of the proof created field.
	DateTimeFormat = time.RFC3339

	// AssertionMethod is the proof purpose of credential proofs.
	AssertionMethod = "assertionMethod"
	// Authentication is the proof purpose of presentation proofs.
	Authentication = "authentication"
)

// Proof is a Data Integrity proof.
type Proof struct {
	Type               string   `json:"type"`
	CryptoSuite        string   `json:"cryptosuite"`
	ProofPurpose       string   `json:"proofPurpose"`
	VerificationMethod string   `json:"verificationMethod"`
	Created            string   `json:"created,omitempty"`
	Challenge          string   `json:"challenge,omitempty"`
	Domain             string   `json:"domain,omitempty"`
	Nonce              string   `json:"nonce,omitempty"`
	MandatoryPointers  []string `json:"mandatoryPointers,omitempty"`
	ProofValue         string   `json:"proofValue"`
}

// ToMap converts the proof into a JSON object map suitable for embedding
// into a JSON-LD document.
func (p *Proof) ToMap() (map[string]interface{}, error) {
	return jsonutil.ToMap(p)
}

// ProofFromMap parses a JSON object map into a Proof.
func ProofFromMap(m map[string]interface{}) (*Proof, error) {
	p := &Proof{}

	if err := jsonutil.FromMap(m, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ProofOptions contains parameters for creating and verifying proofs.
type ProofOptions struct {
	// VerificationMethodID is the did:key URI naming the key the proof is
	// created with, or the identity verification is pinned to.
	VerificationMethodID string
	// PublicKey is the resolved key material for VerificationMethodID.
	PublicKey *pubkey.PublicKey
	// Purpose is the proof purpose: AssertionMethod or Authentication.
	Purpose string
	// Created is the proof creation time. Zero means time.Now at signing.
	Created time.Time
	// Challenge binds a presentation proof to a caller-provided nonce.
	Challenge string
	// Domain restricts where the proof is intended to be used.
	Domain string
	// MandatoryPointers are the JSON pointers every later disclosure of a
	// selective-disclosure credential must include.
	MandatoryPointers []string
	// ExpectedPresentationHeader, when set during verification of a derived
	// proof, requires the proof to be bound to exactly this header.
	ExpectedPresentationHeader []byte
}

// DeriveOptions contains parameters for deriving a disclosed credential from
// an originally issued selective-disclosure credential.
type DeriveOptions struct {
	// SelectivePointers are the JSON pointers revealed in addition to the
	// mandatory ones fixed at issuance time.
	SelectivePointers []string
	// PresentationHeader, when set, is cryptographically bound into the
	// derived proof so it is only presentable in the context that produced
	// the header.
	PresentationHeader []byte
}
