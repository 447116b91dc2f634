/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs

import (
	"bytes"
	"fmt"

	"github.com/trustbloc/bbs-signature-go/bbs12381g2pub"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

// G2SignatureVerifier is a signature verifier that verifies a BBS+ signature
// taking BLS12-381 G2 public key bytes as input. The message is the list of
// signed statements, one per statement.
type G2SignatureVerifier struct {
}

// NewBBSG2SignatureVerifier creates a new G2SignatureVerifier.
func NewBBSG2SignatureVerifier() *G2SignatureVerifier {
	return &G2SignatureVerifier{}
}

// SupportedKeyType checks if verifier supports given key.
func (sv *G2SignatureVerifier) SupportedKeyType(keyType pubkey.KeyType) bool {
	return keyType == pubkey.BLS12381G2
}

// Verify verifies the signature over the given messages.
func (sv *G2SignatureVerifier) Verify(signature []byte, messages [][]byte, pubKey *pubkey.PublicKey) error {
	if !sv.SupportedKeyType(pubKey.Type) {
		return fmt.Errorf("unsupported key type %s", pubKey.Type)
	}

	return bbs12381g2pub.New().Verify(messages, signature, pubKey.Bytes)
}

// G2SignatureProofVerifier is a signature verifier that verifies a BBS+
// signature proof derived from a BBS+ signature, revealing only a subset of
// the originally signed statements.
type G2SignatureProofVerifier struct {
}

// NewBBSG2SignatureProofVerifier creates a new G2SignatureProofVerifier.
func NewBBSG2SignatureProofVerifier() *G2SignatureProofVerifier {
	return &G2SignatureProofVerifier{}
}

// SupportedKeyType checks if verifier supports given key.
func (v *G2SignatureProofVerifier) SupportedKeyType(keyType pubkey.KeyType) bool {
	return keyType == pubkey.BLS12381G2
}

// Verify verifies the signature proof over the revealed messages.
func (v *G2SignatureProofVerifier) Verify(proof []byte, revealedMessages [][]byte, nonce []byte,
	pubKey *pubkey.PublicKey) error {
	if !v.SupportedKeyType(pubKey.Type) {
		return fmt.Errorf("unsupported key type %s", pubKey.Type)
	}

	return bbs12381g2pub.New().VerifyProof(revealedMessages, bytes.Clone(proof), nonce, pubKey.Bytes)
}
