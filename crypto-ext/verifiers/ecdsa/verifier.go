/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

const (
	p256KeySize = 32
	p384KeySize = 48
	p521KeySize = 66
)

type ellipticCurve struct {
	curve   elliptic.Curve
	keySize int
	hash    crypto.Hash
}

// Verifier verifies elliptic curve signatures.
type Verifier struct {
	ec      ellipticCurve
	keyType pubkey.KeyType
}

// SupportedKeyType checks if verifier supports given key.
func (sv *Verifier) SupportedKeyType(keyType pubkey.KeyType) bool {
	return keyType == sv.keyType
}

func (sv *Verifier) parseKey(pubKey *pubkey.PublicKey) (*ecdsa.PublicKey, error) {
	if !sv.SupportedKeyType(pubKey.Type) {
		return nil, fmt.Errorf("unsupported key type %s", pubKey.Type)
	}

	x, y := elliptic.UnmarshalCompressed(sv.ec.curve, pubKey.Bytes)
	if x == nil {
		return nil, errors.New("ecdsa: invalid public key bytes")
	}

	return &ecdsa.PublicKey{
		Curve: sv.ec.curve,
		X:     x,
		Y:     y,
	}, nil
}

// Verify verifies the signature. Both raw P1363 (r||s) and ASN.1 DER
// signatures are accepted.
func (sv *Verifier) Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error {
	ecdsaPubKey, err := sv.parseKey(pubKey)
	if err != nil {
		return err
	}

	ec := sv.ec

	if len(signature) < 2*ec.keySize {
		return errors.New("ecdsa: invalid signature size")
	}

	hasher := ec.hash.New()

	_, err = hasher.Write(msg)
	if err != nil {
		return errors.New("ecdsa: hash error")
	}

	hash := hasher.Sum(nil)

	r := big.NewInt(0).SetBytes(signature[:ec.keySize])
	s := big.NewInt(0).SetBytes(signature[ec.keySize:])

	if len(signature) > 2*ec.keySize {
		var esig struct {
			R, S *big.Int
		}

		if _, err := asn1.Unmarshal(signature, &esig); err != nil {
			return err
		}

		r = esig.R
		s = esig.S
	}

	verified := ecdsa.Verify(ecdsaPubKey, hash, r, s)
	if !verified {
		return errors.New("ecdsa: invalid signature")
	}

	return nil
}

// NewES256 creates a new signature verifier that verifies an ECDSA P-256
// signature taking compressed public key bytes as input.
func NewES256() *Verifier {
	return &Verifier{
		ec: ellipticCurve{
			curve:   elliptic.P256(),
			keySize: p256KeySize,
			hash:    crypto.SHA256,
		},
		keyType: pubkey.ECDSAP256,
	}
}

// NewES384 creates a new signature verifier that verifies an ECDSA P-384
// signature taking compressed public key bytes as input.
func NewES384() *Verifier {
	return &Verifier{
		ec: ellipticCurve{
			curve:   elliptic.P384(),
			keySize: p384KeySize,
			hash:    crypto.SHA384,
		},
		keyType: pubkey.ECDSAP384,
	}
}

// NewES521 creates a new signature verifier that verifies an ECDSA P-521
// signature taking compressed public key bytes as input.
func NewES521() *Verifier {
	return &Verifier{
		ec: ellipticCurve{
			curve:   elliptic.P521(),
			keySize: p521KeySize,
			hash:    crypto.SHA512,
		},
		keyType: pubkey.ECDSAP521,
	}
}
