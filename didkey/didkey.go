/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package didkey implements the did:key identifier codec: encoding public
// keys into did:key URIs and parsing them back, with the multicodec prefix
// of the multibase key material identifying the signature algorithm family.
package didkey

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

// DIDPrefix is the scheme and method prefix of every did:key URI.
const DIDPrefix = "did:key:"

// Multicodec values for the supported key families.
// Source: https://github.com/multiformats/multicodec/blob/master/table.csv.
const (
	ED25519PubKeyMultiCodec    = 0xed
	BLS12381g2PubKeyMultiCodec = 0xeb
	P256PubKeyMultiCodec       = 0x1200
	P384PubKeyMultiCodec       = 0x1201
	P521PubKeyMultiCodec       = 0x1202
	SM2PubKeyMultiCodec        = 0x1206
)

var (
	// ErrMalformedDID is returned when a DID string cannot be parsed as a
	// did:key URI.
	ErrMalformedDID = errors.New("malformed did:key URI")
	// ErrMismatchedKey is returned when a key object's publicKeyMultibase
	// conflicts with the multibase value embedded in its id.
	ErrMismatchedKey = errors.New("key id does not match publicKeyMultibase")
	// ErrUnsupportedKeyType is returned when a key's algorithm family is not
	// one of the supported families.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

var codecToKeyType = map[uint64]pubkey.KeyType{
	ED25519PubKeyMultiCodec:    pubkey.ED25519,
	BLS12381g2PubKeyMultiCodec: pubkey.BLS12381G2,
	P256PubKeyMultiCodec:       pubkey.ECDSAP256,
	P384PubKeyMultiCodec:       pubkey.ECDSAP384,
	P521PubKeyMultiCodec:       pubkey.ECDSAP521,
	SM2PubKeyMultiCodec:        pubkey.SM2,
}

var keyTypeToCodec = map[pubkey.KeyType]uint64{
	pubkey.ED25519:    ED25519PubKeyMultiCodec,
	pubkey.BLS12381G2: BLS12381g2PubKeyMultiCodec,
	pubkey.ECDSAP256:  P256PubKeyMultiCodec,
	pubkey.ECDSAP384:  P384PubKeyMultiCodec,
	pubkey.ECDSAP521:  P521PubKeyMultiCodec,
	pubkey.SM2:        SM2PubKeyMultiCodec,
}

// EncodePublicKeyMultibase encodes raw public key bytes into a multibase
// base58btc string with the multicodec prefix of the given key type.
func EncodePublicKeyMultibase(keyType pubkey.KeyType, rawKey []byte) (string, error) {
	code, ok := keyTypeToCodec[keyType]
	if !ok {
		return "", fmt.Errorf("encoding key of type %s: %w", keyType, ErrUnsupportedKeyType)
	}

	prefix := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(prefix, code)

	return multibase.Encode(multibase.Base58BTC, append(prefix[:n], rawKey...))
}

// DecodePublicKeyMultibase decodes a multibase public key string into the
// key family identified by its multicodec prefix and the raw key bytes.
func DecodePublicKeyMultibase(publicKeyMultibase string) (*pubkey.PublicKey, error) {
	_, decoded, err := multibase.Decode(publicKeyMultibase)
	if err != nil {
		return nil, fmt.Errorf("decoding multibase key material: %w", err)
	}

	code, n := binary.Uvarint(decoded)
	if n <= 0 {
		return nil, fmt.Errorf("reading multicodec prefix: %w", ErrMalformedDID)
	}

	keyType, ok := codecToKeyType[code]
	if !ok {
		return nil, fmt.Errorf("multicodec 0x%x: %w", code, ErrUnsupportedKeyType)
	}

	return &pubkey.PublicKey{
		Type:  keyType,
		Bytes: decoded[n:],
	}, nil
}

// EncodeDID builds a did:key URI from a multibase public key string.
func EncodeDID(publicKeyMultibase string) string {
	return DIDPrefix + publicKeyMultibase
}

// ParsedDID holds the parts of a parsed did:key URI.
type ParsedDID struct {
	// Authority is the URI with any fragment removed.
	Authority string
	// Fragment is the part after '#', without the separator. Empty when the
	// URI carries no fragment.
	Fragment string
	// PublicKeyMultibase is the method-specific identifier: the multibase
	// key material the authority encodes.
	PublicKeyMultibase string
}

// ParseDID splits a did:key URI into its authority, optional fragment and
// embedded multibase key material.
func ParseDID(did string) (*ParsedDID, error) {
	authority, fragment, _ := strings.Cut(did, "#")

	if !strings.HasPrefix(authority, DIDPrefix) {
		return nil, fmt.Errorf("parsing %q: %w", did, ErrMalformedDID)
	}

	publicKeyMultibase := strings.TrimPrefix(authority, DIDPrefix)
	if publicKeyMultibase == "" {
		return nil, fmt.Errorf("parsing %q: empty method-specific id: %w", did, ErrMalformedDID)
	}

	return &ParsedDID{
		Authority:          authority,
		Fragment:           fragment,
		PublicKeyMultibase: publicKeyMultibase,
	}, nil
}
