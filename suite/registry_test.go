/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/models"
)

type stubSigner struct {
	name string
}

func (s *stubSigner) CreateProof(map[string]interface{}, *models.ProofOptions) (*models.Proof, error) {
	return &models.Proof{CryptoSuite: s.name}, nil
}

func (s *stubSigner) Type() string { return s.name }

type stubVerifier struct{}

func (stubVerifier) VerifyProof(map[string]interface{}, *models.Proof, *models.ProofOptions) error {
	return nil
}

type stubDeriver struct{}

func (stubDeriver) DeriveProof(map[string]interface{}, *models.Proof, *models.DeriveOptions) (
	map[string]interface{}, *models.Proof, error) {
	return nil, nil, nil
}

func testFamilyRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()

	r.RegisterFamily(&Family{
		KeyType: pubkey.ED25519,
		Policy:  DisclosureForbidden,
		NewPlainSigner: func(*didkey.KeyPair) (Signer, error) {
			return &stubSigner{name: "plain"}, nil
		},
	})

	r.RegisterFamily(&Family{
		KeyType: pubkey.ECDSAP256,
		Policy:  DisclosureOptional,
		NewPlainSigner: func(*didkey.KeyPair) (Signer, error) {
			return &stubSigner{name: "plain"}, nil
		},
		NewDisclosureSigner: func(*didkey.KeyPair, []string) (Signer, error) {
			return &stubSigner{name: "sd"}, nil
		},
	})

	r.RegisterFamily(&Family{
		KeyType: pubkey.BLS12381G2,
		Policy:  DisclosureRequired,
		NewDisclosureSigner: func(*didkey.KeyPair, []string) (Signer, error) {
			return &stubSigner{name: "sd"}, nil
		},
	})

	return r
}

func TestSignerFor(t *testing.T) {
	r := testFamilyRegistry(t)

	edKey, err := didkey.Generate(pubkey.ED25519)
	require.NoError(t, err)

	p256Key, err := didkey.Generate(pubkey.ECDSAP256)
	require.NoError(t, err)

	blsKey, err := didkey.Generate(pubkey.BLS12381G2)
	require.NoError(t, err)

	p384Key, err := didkey.Generate(pubkey.ECDSAP384)
	require.NoError(t, err)

	t.Run("forbidden family signs plain", func(t *testing.T) {
		signer, err := r.SignerFor(edKey, PlainIssuance{})
		require.NoError(t, err)
		require.Equal(t, "plain", signer.Type())
	})

	t.Run("forbidden family refuses disclosure", func(t *testing.T) {
		_, err := r.SignerFor(edKey, DisclosureIssuance{})
		require.ErrorIs(t, err, ErrSelectiveDisclosureUnsupported)
	})

	t.Run("optional family signs either way", func(t *testing.T) {
		signer, err := r.SignerFor(p256Key, PlainIssuance{})
		require.NoError(t, err)
		require.Equal(t, "plain", signer.Type())

		signer, err = r.SignerFor(p256Key, DisclosureIssuance{MandatoryPointers: []string{"/id"}})
		require.NoError(t, err)
		require.Equal(t, "sd", signer.Type())
	})

	t.Run("required family refuses plain", func(t *testing.T) {
		_, err := r.SignerFor(blsKey, PlainIssuance{})
		require.ErrorIs(t, err, ErrSelectiveDisclosureRequired)
	})

	t.Run("required family signs disclosure", func(t *testing.T) {
		signer, err := r.SignerFor(blsKey, DisclosureIssuance{})
		require.NoError(t, err)
		require.Equal(t, "sd", signer.Type())
	})

	t.Run("unregistered family fails", func(t *testing.T) {
		_, err := r.SignerFor(p384Key, PlainIssuance{})
		require.ErrorIs(t, err, didkey.ErrUnsupportedKeyType)
	})
}

func TestVerifierAndDeriverDispatch(t *testing.T) {
	r := NewRegistry()
	r.RegisterVerifier("stub-rdfc-2024", stubVerifier{})
	r.RegisterDeriver("stub-sd-2024", stubDeriver{})

	t.Run("registered lookups succeed", func(t *testing.T) {
		_, err := r.VerifierFor("stub-rdfc-2024")
		require.NoError(t, err)

		_, err = r.DeriverFor("stub-sd-2024")
		require.NoError(t, err)
	})

	t.Run("unknown names fail closed", func(t *testing.T) {
		_, err := r.VerifierFor("unknown-suite")
		require.ErrorIs(t, err, ErrUnsupportedCryptosuite)

		_, err = r.DeriverFor("stub-rdfc-2024")
		require.ErrorIs(t, err, ErrUnsupportedCryptosuite)
	})
}

func TestPolicyFor(t *testing.T) {
	r := testFamilyRegistry(t)

	policy, ok := r.PolicyFor(pubkey.BLS12381G2)
	require.True(t, ok)
	require.Equal(t, DisclosureRequired, policy)

	_, ok = r.PolicyFor(pubkey.SM2)
	require.False(t, ok)
}
