/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/bbs-signature-go/bbs12381g2pub"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/crypto-ext/signers/bbs"
	bbsverifier "github.com/trustbloc/vc-kit/crypto-ext/verifiers/bbs"
)

func TestBBSSignatureVerifier(t *testing.T) {
	messages := [][]byte{
		[]byte("message 1"),
		[]byte("message 2"),
		[]byte("message 3"),
	}

	kp, err := didkey.Generate(pubkey.BLS12381G2)
	require.NoError(t, err)

	secret, err := kp.SecretKeyBytes()
	require.NoError(t, err)

	signer, err := bbs.New(secret)
	require.NoError(t, err)

	sig, err := signer.Sign(messages)
	require.NoError(t, err)

	pub, err := kp.PublicKey()
	require.NoError(t, err)

	v := bbsverifier.NewBBSG2SignatureVerifier()
	require.NoError(t, v.Verify(sig, messages, pub))

	t.Run("modified message fails", func(t *testing.T) {
		tampered := [][]byte{messages[0], []byte("changed"), messages[2]}
		require.Error(t, v.Verify(sig, tampered, pub))
	})

	t.Run("wrong key type fails", func(t *testing.T) {
		require.Error(t, v.Verify(sig, messages, &pubkey.PublicKey{
			Type:  pubkey.ED25519,
			Bytes: pub.Bytes,
		}))
	})

	t.Run("derived proof verifies revealed subset", func(t *testing.T) {
		nonce := []byte("proof nonce")

		proof, err := bbs12381g2pub.New().DeriveProof(messages, sig, nonce, pub.Bytes, []int{0, 2})
		require.NoError(t, err)

		pv := bbsverifier.NewBBSG2SignatureProofVerifier()

		revealed := [][]byte{messages[0], messages[2]}
		require.NoError(t, pv.Verify(proof, revealed, nonce, pub))

		t.Run("wrong nonce fails", func(t *testing.T) {
			require.Error(t, pv.Verify(proof, revealed, []byte("other nonce"), pub))
		})
	})
}
