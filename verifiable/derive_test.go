/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/suite"
)

func TestSelectiveDisclosure(t *testing.T) {
	registry, loader := testStack(t)
	issuer := NewIssuer(registry)
	holder := NewHolder(registry)
	verifier := NewVerifier(registry, loader)

	cases := []struct {
		keyType      pubkey.KeyType
		baseSuite    string
		derivedSuite string
	}{
		{pubkey.BLS12381G2, "bbs-2023", "bbs-proof-2023"},
		{pubkey.ECDSAP256, "ecdsa-sd-2023", "ecdsa-sd-proof-2023"},
	}

	for _, tc := range cases {
		t.Run(tc.baseSuite, func(t *testing.T) {
			key, err := didkey.Generate(tc.keyType)
			require.NoError(t, err)

			base, err := issuer.Issue(degreeCredential(t), key, suite.DisclosureIssuance{
				MandatoryPointers: []string{"/credentialSubject/degreeType"},
			})
			require.NoError(t, err)

			baseProofs, err := base.Proofs()
			require.NoError(t, err)
			require.Equal(t, tc.baseSuite, baseProofs[0].CryptoSuite)
			require.Equal(t, []string{"/credentialSubject/degreeType"}, baseProofs[0].MandatoryPointers)

			t.Run("base proof verifies in full", func(t *testing.T) {
				result, err := verifier.VerifyCredential(base)
				require.NoError(t, err)
				require.True(t, result.Verified)
			})

			derived, err := holder.Derive(base, []string{"/credentialSubject/alumniOf"})
			require.NoError(t, err)

			t.Run("disclosure contains selected and mandatory fields only", func(t *testing.T) {
				raw, err := derived.MarshalJSON()
				require.NoError(t, err)

				doc := gjson.ParseBytes(raw)
				require.Equal(t, "BachelorDegree", doc.Get("credentialSubject.degreeType").String())
				require.Equal(t, "Example University", doc.Get("credentialSubject.alumniOf").String())
				require.False(t, doc.Get("credentialSubject.degreeName").Exists())
				require.False(t, doc.Get("credentialSubject.spouse").Exists())

				proofs, err := derived.Proofs()
				require.NoError(t, err)
				require.Equal(t, tc.derivedSuite, proofs[0].CryptoSuite)
			})

			t.Run("derived proof verifies", func(t *testing.T) {
				result, err := verifier.VerifyCredential(derived)
				require.NoError(t, err)
				require.True(t, result.Verified)
				require.Equal(t, key.ID, result.Results[0].VerificationMethod.ID)
			})

			t.Run("tampered disclosure fails", func(t *testing.T) {
				tampered := tamperCredential(t, derived, "credentialSubject.alumniOf", "Other University")

				result, err := verifier.VerifyCredential(tampered)
				require.NoError(t, err)
				require.False(t, result.Verified)
			})

			t.Run("derived credential cannot be derived again", func(t *testing.T) {
				_, err := holder.Derive(derived, []string{"/credentialSubject/alumniOf"})
				require.ErrorIs(t, err, suite.ErrUnsupportedCryptosuite)
			})
		})
	}
}

func TestDeriveRejectsPlainCredential(t *testing.T) {
	registry, _ := testStack(t)
	issuer := NewIssuer(registry)
	holder := NewHolder(registry)

	key, err := didkey.Generate(pubkey.ED25519)
	require.NoError(t, err)

	vc, err := issuer.Issue(degreeCredential(t), key, suite.PlainIssuance{})
	require.NoError(t, err)

	_, err = holder.Derive(vc, []string{"/credentialSubject/alumniOf"})
	require.ErrorIs(t, err, suite.ErrUnsupportedCryptosuite)
}

func TestPresentationHeaderBinding(t *testing.T) {
	registry, loader := testStack(t)
	issuer := NewIssuer(registry)
	holder := NewHolder(registry)
	verifier := NewVerifier(registry, loader)

	t.Run("bbs-2023 binds the header", func(t *testing.T) {
		key, err := didkey.Generate(pubkey.BLS12381G2)
		require.NoError(t, err)

		base, err := issuer.Issue(degreeCredential(t), key, suite.DisclosureIssuance{
			MandatoryPointers: []string{"/credentialSubject/degreeType"},
		})
		require.NoError(t, err)

		header := []byte("presentation exchange 17")

		derived, err := holder.Derive(base, []string{"/credentialSubject/alumniOf"},
			WithPresentationHeader(header))
		require.NoError(t, err)

		result, err := verifier.VerifyCredential(derived, WithExpectedPresentationHeader(header))
		require.NoError(t, err)
		require.True(t, result.Verified)

		result, err = verifier.VerifyCredential(derived, WithExpectedPresentationHeader([]byte("other")))
		require.NoError(t, err)
		require.False(t, result.Verified)
	})

	t.Run("ecdsa-sd-2023 rejects a header", func(t *testing.T) {
		key, err := didkey.Generate(pubkey.ECDSAP256)
		require.NoError(t, err)

		base, err := issuer.Issue(degreeCredential(t), key, suite.DisclosureIssuance{
			MandatoryPointers: []string{"/credentialSubject/degreeType"},
		})
		require.NoError(t, err)

		_, err = holder.Derive(base, []string{"/credentialSubject/alumniOf"},
			WithPresentationHeader([]byte("unbindable")))
		require.Error(t, err)
	})
}
