/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/suite"
)

func TestIssueAndVerify(t *testing.T) {
	registry, loader := testStack(t)
	issuer := NewIssuer(registry)
	verifier := NewVerifier(registry, loader)

	plainFamilies := []pubkey.KeyType{
		pubkey.ED25519,
		pubkey.ECDSAP256,
		pubkey.ECDSAP384,
		pubkey.ECDSAP521,
		pubkey.SM2,
	}

	for _, keyType := range plainFamilies {
		t.Run(string(keyType), func(t *testing.T) {
			key, err := didkey.Generate(keyType)
			require.NoError(t, err)

			vc, err := issuer.Issue(degreeCredential(t), key, suite.PlainIssuance{})
			require.NoError(t, err)
			require.Equal(t, key.Controller, vc.Issuer())

			t.Run("verifies", func(t *testing.T) {
				result, err := verifier.VerifyCredential(vc)
				require.NoError(t, err)
				require.True(t, result.Verified)
				require.Len(t, result.Results, 1)
				require.Equal(t, key.ID, result.Results[0].VerificationMethod.ID)
			})

			t.Run("tampered subject fails", func(t *testing.T) {
				tampered := tamperCredential(t, vc, "credentialSubject.degreeName", "Doctor of Philosophy")

				result, err := verifier.VerifyCredential(tampered)
				require.NoError(t, err)
				require.False(t, result.Verified)
				require.NotEmpty(t, result.Results[0].Error)
			})

			t.Run("tampered verification method fails", func(t *testing.T) {
				other, err := didkey.Generate(keyType)
				require.NoError(t, err)

				tampered := tamperCredential(t, vc, "proof.verificationMethod", other.ID)

				result, err := verifier.VerifyCredential(tampered)
				require.NoError(t, err)
				require.False(t, result.Verified)
			})

			t.Run("pinned to a different key fails", func(t *testing.T) {
				other, err := didkey.Generate(keyType)
				require.NoError(t, err)

				result, err := verifier.VerifyCredential(vc, WithVerificationMethod(other.ID))
				require.NoError(t, err)
				require.False(t, result.Verified)
			})
		})
	}
}

func TestIssuePolicyEnforcement(t *testing.T) {
	registry, _ := testStack(t)
	issuer := NewIssuer(registry)

	t.Run("BLS12381G2 refuses plain issuance", func(t *testing.T) {
		key, err := didkey.Generate(pubkey.BLS12381G2)
		require.NoError(t, err)

		_, err = issuer.Issue(degreeCredential(t), key, suite.PlainIssuance{})
		require.ErrorIs(t, err, suite.ErrSelectiveDisclosureRequired)
	})

	t.Run("Ed25519 refuses disclosure issuance", func(t *testing.T) {
		key, err := didkey.Generate(pubkey.ED25519)
		require.NoError(t, err)

		_, err = issuer.Issue(degreeCredential(t), key, suite.DisclosureIssuance{
			MandatoryPointers: []string{"/credentialSubject/degreeType"},
		})
		require.ErrorIs(t, err, suite.ErrSelectiveDisclosureUnsupported)
	})

	t.Run("P-256 issues either kind", func(t *testing.T) {
		key, err := didkey.Generate(pubkey.ECDSAP256)
		require.NoError(t, err)

		plain, err := issuer.Issue(degreeCredential(t), key, suite.PlainIssuance{})
		require.NoError(t, err)

		proofs, err := plain.Proofs()
		require.NoError(t, err)
		require.Equal(t, "ecdsa-rdfc-2019", proofs[0].CryptoSuite)

		sd, err := issuer.Issue(degreeCredential(t), key, suite.DisclosureIssuance{
			MandatoryPointers: []string{"/credentialSubject/degreeType"},
		})
		require.NoError(t, err)

		proofs, err = sd.Proofs()
		require.NoError(t, err)
		require.Equal(t, "ecdsa-sd-2023", proofs[0].CryptoSuite)
	})
}

func TestVerifyCredentialEdgeCases(t *testing.T) {
	registry, loader := testStack(t)
	verifier := NewVerifier(registry, loader)

	t.Run("no proof", func(t *testing.T) {
		result, err := verifier.VerifyCredential(degreeCredential(t))
		require.NoError(t, err)
		require.False(t, result.Verified)
		require.Empty(t, result.Results)
	})

	t.Run("unknown cryptosuite fails closed", func(t *testing.T) {
		issuer := NewIssuer(registry)

		key, err := didkey.Generate(pubkey.ED25519)
		require.NoError(t, err)

		vc, err := issuer.Issue(degreeCredential(t), key, suite.PlainIssuance{})
		require.NoError(t, err)

		tampered := tamperCredential(t, vc, "proof.cryptosuite", "quantum-rdfc-2099")

		result, err := verifier.VerifyCredential(tampered)
		require.NoError(t, err)
		require.False(t, result.Verified)
		require.Contains(t, result.Results[0].Error, "quantum-rdfc-2099")
	})

	t.Run("field the contexts do not map is rejected", func(t *testing.T) {
		issuer := NewIssuer(registry)

		key, err := didkey.Generate(pubkey.ED25519)
		require.NoError(t, err)

		vc, err := issuer.Issue(degreeCredential(t), key, suite.PlainIssuance{})
		require.NoError(t, err)

		tampered := tamperCredential(t, vc, "credentialSubject.smuggledClaim", "anything")

		result, err := verifier.VerifyCredential(tampered)
		require.NoError(t, err)
		require.False(t, result.Verified)
		require.Contains(t, result.Results[0].Error, "structure")
	})

	t.Run("issuance leaves the input untouched", func(t *testing.T) {
		issuer := NewIssuer(registry)

		key, err := didkey.Generate(pubkey.ED25519)
		require.NoError(t, err)

		unsigned := degreeCredential(t)

		_, err = issuer.Issue(unsigned, key, suite.PlainIssuance{})
		require.NoError(t, err)

		proofs, err := unsigned.Proofs()
		require.NoError(t, err)
		require.Empty(t, proofs)
		require.Equal(t, "did:example:placeholder", unsigned.Issuer())
	})
}
