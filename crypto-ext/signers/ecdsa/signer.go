/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

type ellipticCurve struct {
	curve   elliptic.Curve
	keySize int
	hash    crypto.Hash
}

// Signer signs messages with an ECDSA private key, producing raw P1363
// (r||s) signatures.
type Signer struct {
	ec      ellipticCurve
	privKey *ecdsa.PrivateKey
}

// Sign signs msg with the private key internal to the Signer.
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	hasher := s.ec.hash.New()

	_, err := hasher.Write(msg)
	if err != nil {
		return nil, errors.New("ecdsa: hash error")
	}

	hash := hasher.Sum(nil)

	r, sv, err := ecdsa.Sign(rand.Reader, s.privKey, hash)
	if err != nil {
		return nil, fmt.Errorf("ecdsa: sign: %w", err)
	}

	sig := make([]byte, 2*s.ec.keySize)
	r.FillBytes(sig[:s.ec.keySize])
	sv.FillBytes(sig[s.ec.keySize:])

	return sig, nil
}

func newSigner(ec ellipticCurve, secretKeyBytes []byte) (*Signer, error) {
	if len(secretKeyBytes) != ec.keySize {
		return nil, errors.New("ecdsa: invalid private key size")
	}

	d := new(big.Int).SetBytes(secretKeyBytes)

	x, y := ec.curve.ScalarBaseMult(secretKeyBytes)

	return &Signer{
		ec: ec,
		privKey: &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: ec.curve, X: x, Y: y},
			D:         d,
		},
	}, nil
}

// New creates a Signer for the given ECDSA key type from a raw private key
// scalar.
func New(keyType pubkey.KeyType, secretKeyBytes []byte) (*Signer, error) {
	switch keyType {
	case pubkey.ECDSAP256:
		return newSigner(ellipticCurve{elliptic.P256(), 32, crypto.SHA256}, secretKeyBytes)
	case pubkey.ECDSAP384:
		return newSigner(ellipticCurve{elliptic.P384(), 48, crypto.SHA384}, secretKeyBytes)
	case pubkey.ECDSAP521:
		return newSigner(ellipticCurve{elliptic.P521(), 66, crypto.SHA512}, secretKeyBytes)
	default:
		return nil, fmt.Errorf("ecdsa: unsupported key type %s", keyType)
	}
}
