/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/crypto-ext/signers/ecdsa"
	ecdsaverifier "github.com/trustbloc/vc-kit/crypto-ext/verifiers/ecdsa"
)

func TestECDSAVerifiers(t *testing.T) {
	msg := []byte("test message")

	tests := []struct {
		verifier *ecdsaverifier.Verifier
		keyType  pubkey.KeyType
	}{
		{verifier: ecdsaverifier.NewES256(), keyType: pubkey.ECDSAP256},
		{verifier: ecdsaverifier.NewES384(), keyType: pubkey.ECDSAP384},
		{verifier: ecdsaverifier.NewES521(), keyType: pubkey.ECDSAP521},
	}

	for _, tc := range tests {
		t.Run(string(tc.keyType), func(t *testing.T) {
			kp, err := didkey.Generate(tc.keyType)
			require.NoError(t, err)

			secret, err := kp.SecretKeyBytes()
			require.NoError(t, err)

			signer, err := ecdsa.New(tc.keyType, secret)
			require.NoError(t, err)

			sig, err := signer.Sign(msg)
			require.NoError(t, err)

			pub, err := kp.PublicKey()
			require.NoError(t, err)

			require.NoError(t, tc.verifier.Verify(sig, msg, pub))

			t.Run("different message fails", func(t *testing.T) {
				require.Error(t, tc.verifier.Verify(sig, []byte("other message"), pub))
			})

			t.Run("different key fails", func(t *testing.T) {
				other, err := didkey.Generate(tc.keyType)
				require.NoError(t, err)

				otherPub, err := other.PublicKey()
				require.NoError(t, err)

				require.Error(t, tc.verifier.Verify(sig, msg, otherPub))
			})

			t.Run("wrong key type fails", func(t *testing.T) {
				require.Error(t, tc.verifier.Verify(sig, msg, &pubkey.PublicKey{
					Type:  pubkey.ED25519,
					Bytes: pub.Bytes,
				}))
			})

			t.Run("truncated signature fails", func(t *testing.T) {
				require.Error(t, tc.verifier.Verify(sig[:8], msg, pub))
			})
		})
	}
}
