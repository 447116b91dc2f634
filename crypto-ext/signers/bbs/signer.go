/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs

import (
	"errors"
	"fmt"

	"github.com/trustbloc/bbs-signature-go/bbs12381g2pub"
)

// Signer signs sets of statements with a BLS12-381 G2 private key, producing
// BBS+ signatures that selective disclosure proofs can later be derived from.
type Signer struct {
	privKeyBytes []byte
}

// New creates a Signer from marshalled BLS12-381 private key bytes.
func New(secretKeyBytes []byte) (*Signer, error) {
	if len(secretKeyBytes) == 0 {
		return nil, errors.New("bbs: empty private key")
	}

	return &Signer{privKeyBytes: secretKeyBytes}, nil
}

// Sign signs the given messages with the private key internal to the Signer.
func (s *Signer) Sign(messages [][]byte) ([]byte, error) {
	sig, err := bbs12381g2pub.New().Sign(messages, s.privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("bbs: sign: %w", err)
	}

	return sig, nil
}
