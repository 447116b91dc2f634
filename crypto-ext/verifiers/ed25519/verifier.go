/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ed25519

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

// Verifier verifies an Ed25519 signature taking Ed25519 public key bytes as input.
type Verifier struct {
}

// New creates a new ed25519 Verifier.
func New() *Verifier {
	return &Verifier{}
}

// SupportedKeyType checks if verifier supports given key.
func (sv *Verifier) SupportedKeyType(keyType pubkey.KeyType) bool {
	return keyType == pubkey.ED25519
}

// Verify verifies the signature.
func (sv *Verifier) Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error {
	if !sv.SupportedKeyType(pubKey.Type) {
		return fmt.Errorf("unsupported key type %s", pubKey.Type)
	}

	// ed25519 panics if key size is wrong
	if len(pubKey.Bytes) != ed25519.PublicKeySize {
		return errors.New("ed25519: invalid key")
	}

	verified := ed25519.Verify(ed25519.PublicKey(pubKey.Bytes), msg, signature)
	if !verified {
		return errors.New("ed25519: invalid signature")
	}

	return nil
}
