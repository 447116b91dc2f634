/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ed25519

import (
	"crypto/ed25519"
	"errors"
)

// Signer signs messages with an Ed25519 private key.
type Signer struct {
	privKey ed25519.PrivateKey
}

// New creates a Signer from an Ed25519 seed.
func New(seed []byte) (*Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.New("ed25519: invalid seed size")
	}

	return &Signer{privKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign signs msg with the private key internal to the Signer.
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.privKey, msg), nil
}
