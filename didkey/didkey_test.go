/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package didkey

import (
	"strings"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
)

func TestGenerateAndParse(t *testing.T) {
	keyTypes := []pubkey.KeyType{
		pubkey.ED25519,
		pubkey.ECDSAP256,
		pubkey.ECDSAP384,
		pubkey.ECDSAP521,
		pubkey.SM2,
		pubkey.BLS12381G2,
	}

	for _, keyType := range keyTypes {
		t.Run(string(keyType), func(t *testing.T) {
			kp, err := Generate(keyType)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(kp.Controller, DIDPrefix))
			require.Equal(t, kp.Controller+"#"+kp.PublicKeyMultibase, kp.ID)
			require.NotEmpty(t, kp.SecretKeyMultibase)

			parsed, err := ParseDID(kp.ID)
			require.NoError(t, err)
			require.Equal(t, kp.Controller, parsed.Authority)
			require.Equal(t, kp.PublicKeyMultibase, parsed.PublicKeyMultibase)

			pub, err := DecodePublicKeyMultibase(kp.PublicKeyMultibase)
			require.NoError(t, err)
			require.Equal(t, keyType, pub.Type)

			reencoded, err := EncodePublicKeyMultibase(pub.Type, pub.Bytes)
			require.NoError(t, err)
			require.Equal(t, kp.PublicKeyMultibase, reencoded)

			gotType, err := kp.KeyType()
			require.NoError(t, err)
			require.Equal(t, keyType, gotType)

			secret, err := kp.SecretKeyBytes()
			require.NoError(t, err)
			require.NotEmpty(t, secret)
		})
	}
}

func TestParseDIDErrors(t *testing.T) {
	t.Run("wrong method", func(t *testing.T) {
		_, err := ParseDID("did:web:example.com")
		require.ErrorIs(t, err, ErrMalformedDID)
	})

	t.Run("not a did", func(t *testing.T) {
		_, err := ParseDID("urn:uuid:0f0f0f")
		require.ErrorIs(t, err, ErrMalformedDID)
	})

	t.Run("bad multibase key material", func(t *testing.T) {
		_, err := DecodePublicKeyMultibase("not-multibase")
		require.Error(t, err)
	})

	t.Run("unknown multicodec", func(t *testing.T) {
		encoded, err := multibase.Encode(multibase.Base58BTC, []byte{0x01, 0xaa, 0xbb})
		require.NoError(t, err)

		_, err = DecodePublicKeyMultibase(encoded)
		require.ErrorIs(t, err, ErrUnsupportedKeyType)
	})
}

func TestResolveKeyMaterial(t *testing.T) {
	kp, err := Generate(pubkey.ED25519)
	require.NoError(t, err)

	t.Run("from did URI", func(t *testing.T) {
		resolved, err := ResolveKeyMaterial(kp.ID)
		require.NoError(t, err)
		require.Equal(t, kp.ID, resolved.ID)
		require.Equal(t, kp.Controller, resolved.Controller)
		require.Empty(t, resolved.SecretKeyMultibase)
	})

	t.Run("from bare did", func(t *testing.T) {
		resolved, err := ResolveKeyMaterial(kp.Controller)
		require.NoError(t, err)
		require.Equal(t, kp.ID, resolved.ID)
	})

	t.Run("from key pair", func(t *testing.T) {
		resolved, err := ResolveKeyMaterial(kp)
		require.NoError(t, err)
		require.Equal(t, kp.ID, resolved.ID)
	})

	t.Run("from key object map", func(t *testing.T) {
		resolved, err := ResolveKeyMaterial(map[string]interface{}{
			"id":                 kp.ID,
			"controller":         kp.Controller,
			"publicKeyMultibase": kp.PublicKeyMultibase,
		})
		require.NoError(t, err)
		require.Equal(t, kp.ID, resolved.ID)
	})

	t.Run("mismatched key object", func(t *testing.T) {
		other, err := Generate(pubkey.ED25519)
		require.NoError(t, err)

		_, err = ResolveKeyMaterial(map[string]interface{}{
			"id":                 kp.ID,
			"controller":         kp.Controller,
			"publicKeyMultibase": other.PublicKeyMultibase,
		})
		require.ErrorIs(t, err, ErrMismatchedKey)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ResolveKeyMaterial(42)
		require.Error(t, err)
	})
}
