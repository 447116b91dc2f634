/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pubkey

// KeyType identifies the signature algorithm family of a public key.
type KeyType string

const (
	// ED25519 is an Ed25519 signing key.
	ED25519 = KeyType("Ed25519")
	// ECDSAP256 is an ECDSA key on the NIST P-256 curve.
	ECDSAP256 = KeyType("ECDSA-P256")
	// ECDSAP384 is an ECDSA key on the NIST P-384 curve.
	ECDSAP384 = KeyType("ECDSA-P384")
	// ECDSAP521 is an ECDSA key on the NIST P-521 curve.
	ECDSAP521 = KeyType("ECDSA-P521")
	// SM2 is an SM2 key on the SM2 P-256 curve.
	SM2 = KeyType("SM2")
	// BLS12381G2 is a BLS12-381 key in the G2 group, used for BBS+ signatures.
	BLS12381G2 = KeyType("BLS12381G2")
)

// PublicKey contains a result of public key resolution. Bytes hold the raw
// key material with the multicodec prefix stripped; elliptic curve points are
// in compressed form.
type PublicKey struct {
	Type  KeyType
	Bytes []byte
}
