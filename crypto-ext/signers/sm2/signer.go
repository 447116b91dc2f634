/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm2

import (
	"crypto/rand"
	"fmt"

	gmsm2 "github.com/emmansun/gmsm/sm2"
)

// Signer signs messages with an SM2 private key using the default SM2 user
// ID, producing ASN.1 DER signatures.
type Signer struct {
	privKey *gmsm2.PrivateKey
}

// New creates a Signer from a raw SM2 private key scalar.
func New(secretKeyBytes []byte) (*Signer, error) {
	privKey, err := gmsm2.NewPrivateKey(secretKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("sm2: parse private key: %w", err)
	}

	return &Signer{privKey: privKey}, nil
}

// Sign signs msg with the private key internal to the Signer.
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	sig, err := s.privKey.Sign(rand.Reader, msg, gmsm2.DefaultSM2SignerOpts)
	if err != nil {
		return nil, fmt.Errorf("sm2: sign: %w", err)
	}

	return sig, nil
}
