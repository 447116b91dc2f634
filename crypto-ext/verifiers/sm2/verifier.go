/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm2

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"fmt"

	gmsm2 "github.com/emmansun/gmsm/sm2"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

// Verifier verifies SM2 signatures with the default SM2 user ID, taking
// compressed public key bytes as input.
type Verifier struct {
}

// New creates a new SM2 Verifier.
func New() *Verifier {
	return &Verifier{}
}

// SupportedKeyType checks if verifier supports given key.
func (sv *Verifier) SupportedKeyType(keyType pubkey.KeyType) bool {
	return keyType == pubkey.SM2
}

// Verify verifies an ASN.1 DER encoded SM2 signature.
func (sv *Verifier) Verify(signature, msg []byte, pubKey *pubkey.PublicKey) error {
	if !sv.SupportedKeyType(pubKey.Type) {
		return fmt.Errorf("unsupported key type %s", pubKey.Type)
	}

	x, y := elliptic.UnmarshalCompressed(gmsm2.P256(), pubKey.Bytes)
	if x == nil {
		return errors.New("sm2: invalid public key bytes")
	}

	sm2PubKey := &ecdsa.PublicKey{
		Curve: gmsm2.P256(),
		X:     x,
		Y:     y,
	}

	if !gmsm2.VerifyASN1WithSM2(sm2PubKey, nil, msg, signature) {
		return errors.New("sm2: invalid signature")
	}

	return nil
}
