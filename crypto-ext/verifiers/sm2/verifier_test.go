/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm2_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/crypto-ext/signers/sm2"
	sm2verifier "github.com/trustbloc/vc-kit/crypto-ext/verifiers/sm2"
)

func TestSM2Verifier(t *testing.T) {
	v := sm2verifier.New()
	msg := []byte("test message")

	kp, err := didkey.Generate(pubkey.SM2)
	require.NoError(t, err)

	secret, err := kp.SecretKeyBytes()
	require.NoError(t, err)

	signer, err := sm2.New(secret)
	require.NoError(t, err)

	sig, err := signer.Sign(msg)
	require.NoError(t, err)

	pub, err := kp.PublicKey()
	require.NoError(t, err)

	require.NoError(t, v.Verify(sig, msg, pub))

	t.Run("different message fails", func(t *testing.T) {
		require.Error(t, v.Verify(sig, []byte("other message"), pub))
	})

	t.Run("different key fails", func(t *testing.T) {
		other, err := didkey.Generate(pubkey.SM2)
		require.NoError(t, err)

		otherPub, err := other.PublicKey()
		require.NoError(t, err)

		require.Error(t, v.Verify(sig, msg, otherPub))
	})

	t.Run("wrong key type fails", func(t *testing.T) {
		require.Error(t, v.Verify(sig, msg, &pubkey.PublicKey{
			Type:  pubkey.ED25519,
			Bytes: pub.Bytes,
		}))
	})
}
