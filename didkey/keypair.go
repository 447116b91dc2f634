/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package didkey

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	gmsm2 "github.com/emmansun/gmsm/sm2"
	"github.com/multiformats/go-multibase"
	"github.com/trustbloc/bbs-signature-go/bbs12381g2pub"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

// KeyPair is a did:key key pair. ID and Controller are derived from the
// public key material: Controller is the did:key URI and ID appends the
// multibase value as a fragment. SecretKeyMultibase is only set on locally
// generated keys; verification never needs it.
type KeyPair struct {
	ID                 string `json:"id"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
	SecretKeyMultibase string `json:"secretKeyMultibase,omitempty"`
}

// Generate creates a new key pair of the given family.
func Generate(keyType pubkey.KeyType) (*KeyPair, error) {
	var (
		rawPub    []byte
		rawSecret []byte
		err       error
	)

	switch keyType {
	case pubkey.ED25519:
		var pub ed25519.PublicKey

		var priv ed25519.PrivateKey

		pub, priv, err = ed25519.GenerateKey(rand.Reader)
		if err == nil {
			rawPub = pub
			rawSecret = priv.Seed()
		}
	case pubkey.ECDSAP256:
		rawPub, rawSecret, err = generateEC(elliptic.P256(), 32)
	case pubkey.ECDSAP384:
		rawPub, rawSecret, err = generateEC(elliptic.P384(), 48)
	case pubkey.ECDSAP521:
		rawPub, rawSecret, err = generateEC(elliptic.P521(), 66)
	case pubkey.SM2:
		var privKey *gmsm2.PrivateKey

		privKey, err = gmsm2.GenerateKey(rand.Reader)
		if err == nil {
			rawPub = elliptic.MarshalCompressed(gmsm2.P256(), privKey.X, privKey.Y)
			rawSecret = make([]byte, 32)
			privKey.D.FillBytes(rawSecret)
		}
	case pubkey.BLS12381G2:
		var blsPub *bbs12381g2pub.PublicKey

		var blsPriv *bbs12381g2pub.PrivateKey

		blsPub, blsPriv, err = bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
		if err == nil {
			rawPub, err = blsPub.Marshal()
		}

		if err == nil {
			rawSecret, err = blsPriv.Marshal()
		}
	default:
		return nil, fmt.Errorf("generating key of type %s: %w", keyType, ErrUnsupportedKeyType)
	}

	if err != nil {
		return nil, fmt.Errorf("generating %s key: %w", keyType, err)
	}

	return newKeyPair(keyType, rawPub, rawSecret)
}

func generateEC(curve elliptic.Curve, keySize int) (rawPub, rawSecret []byte, err error) {
	privKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	rawPub = elliptic.MarshalCompressed(curve, privKey.X, privKey.Y)

	rawSecret = make([]byte, keySize)
	privKey.D.FillBytes(rawSecret)

	return rawPub, rawSecret, nil
}

func newKeyPair(keyType pubkey.KeyType, rawPub, rawSecret []byte) (*KeyPair, error) {
	pubMultibase, err := EncodePublicKeyMultibase(keyType, rawPub)
	if err != nil {
		return nil, err
	}

	secretMultibase, err := multibase.Encode(multibase.Base58BTC, rawSecret)
	if err != nil {
		return nil, fmt.Errorf("encoding secret key material: %w", err)
	}

	did := EncodeDID(pubMultibase)

	return &KeyPair{
		ID:                 did + "#" + pubMultibase,
		Controller:         did,
		PublicKeyMultibase: pubMultibase,
		SecretKeyMultibase: secretMultibase,
	}, nil
}

// PublicKey decodes the key pair's multibase public key material.
func (kp *KeyPair) PublicKey() (*pubkey.PublicKey, error) {
	return DecodePublicKeyMultibase(kp.PublicKeyMultibase)
}

// KeyType reports the key pair's algorithm family.
func (kp *KeyPair) KeyType() (pubkey.KeyType, error) {
	pub, err := kp.PublicKey()
	if err != nil {
		return "", err
	}

	return pub.Type, nil
}

// SecretKeyBytes decodes the key pair's multibase secret key material.
func (kp *KeyPair) SecretKeyBytes() ([]byte, error) {
	if kp.SecretKeyMultibase == "" {
		return nil, fmt.Errorf("key %s has no secret key material", kp.ID)
	}

	_, decoded, err := multibase.Decode(kp.SecretKeyMultibase)
	if err != nil {
		return nil, fmt.Errorf("decoding secret key material: %w", err)
	}

	return decoded, nil
}
