/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package defaults wires every supported key family and cryptosuite into a
// ready-to-use registry.
package defaults

import (
	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/vc-kit/crypto-ext/pubkey"
	bbssigner "github.com/trustbloc/vc-kit/crypto-ext/signers/bbs"
	ecdsasigner "github.com/trustbloc/vc-kit/crypto-ext/signers/ecdsa"
	ed25519signer "github.com/trustbloc/vc-kit/crypto-ext/signers/ed25519"
	sm2signer "github.com/trustbloc/vc-kit/crypto-ext/signers/sm2"
	"github.com/trustbloc/vc-kit/didkey"
	"github.com/trustbloc/vc-kit/suite"
	"github.com/trustbloc/vc-kit/suite/bbs2023"
	"github.com/trustbloc/vc-kit/suite/ecdsa2019"
	"github.com/trustbloc/vc-kit/suite/ecdsasd2023"
	"github.com/trustbloc/vc-kit/suite/eddsa2022"
	"github.com/trustbloc/vc-kit/suite/sm22023"
)

// NewRegistry returns a registry with all supported key families and
// cryptosuites registered:
//
//	Ed25519       eddsa-rdfc-2022                  plain only
//	ECDSA P-256   ecdsa-rdfc-2019 / ecdsa-sd-2023  plain or selective
//	ECDSA P-384   ecdsa-rdfc-2019                  plain only
//	ECDSA P-521   ecdsa-rdfc-2019                  plain only
//	SM2           sm2-rdfc-2023                    plain only
//	BLS12-381 G2  bbs-2023                         selective only
func NewRegistry(ldLoader ld.DocumentLoader) *suite.Registry {
	r := suite.NewRegistry()

	r.RegisterFamily(&suite.Family{
		KeyType: pubkey.ED25519,
		Policy:  suite.DisclosureForbidden,
		NewPlainSigner: func(key *didkey.KeyPair) (suite.Signer, error) {
			secret, err := key.SecretKeyBytes()
			if err != nil {
				return nil, err
			}

			signer, err := ed25519signer.New(secret)
			if err != nil {
				return nil, err
			}

			return eddsa2022.NewSigner(ldLoader, signer), nil
		},
	})

	r.RegisterFamily(&suite.Family{
		KeyType:        pubkey.ECDSAP256,
		Policy:         suite.DisclosureOptional,
		NewPlainSigner: ecdsaPlainSigner(ldLoader, pubkey.ECDSAP256),
		NewDisclosureSigner: func(key *didkey.KeyPair, _ []string) (suite.Signer, error) {
			secret, err := key.SecretKeyBytes()
			if err != nil {
				return nil, err
			}

			signer, err := ecdsasigner.New(pubkey.ECDSAP256, secret)
			if err != nil {
				return nil, err
			}

			return ecdsasd2023.NewSigner(ldLoader, signer), nil
		},
	})

	r.RegisterFamily(&suite.Family{
		KeyType:        pubkey.ECDSAP384,
		Policy:         suite.DisclosureForbidden,
		NewPlainSigner: ecdsaPlainSigner(ldLoader, pubkey.ECDSAP384),
	})

	r.RegisterFamily(&suite.Family{
		KeyType:        pubkey.ECDSAP521,
		Policy:         suite.DisclosureForbidden,
		NewPlainSigner: ecdsaPlainSigner(ldLoader, pubkey.ECDSAP521),
	})

	r.RegisterFamily(&suite.Family{
		KeyType: pubkey.SM2,
		Policy:  suite.DisclosureForbidden,
		NewPlainSigner: func(key *didkey.KeyPair) (suite.Signer, error) {
			secret, err := key.SecretKeyBytes()
			if err != nil {
				return nil, err
			}

			signer, err := sm2signer.New(secret)
			if err != nil {
				return nil, err
			}

			return sm22023.NewSigner(ldLoader, signer), nil
		},
	})

	r.RegisterFamily(&suite.Family{
		KeyType: pubkey.BLS12381G2,
		Policy:  suite.DisclosureRequired,
		NewDisclosureSigner: func(key *didkey.KeyPair, _ []string) (suite.Signer, error) {
			secret, err := key.SecretKeyBytes()
			if err != nil {
				return nil, err
			}

			signer, err := bbssigner.New(secret)
			if err != nil {
				return nil, err
			}

			return bbs2023.NewSigner(ldLoader, signer), nil
		},
	})

	r.RegisterVerifier(eddsa2022.SuiteType, eddsa2022.NewVerifier(ldLoader))
	r.RegisterVerifier(ecdsa2019.SuiteType, ecdsa2019.NewVerifier(ldLoader))
	r.RegisterVerifier(sm22023.SuiteType, sm22023.NewVerifier(ldLoader))
	r.RegisterVerifier(bbs2023.SuiteType, bbs2023.NewVerifier(ldLoader))
	r.RegisterVerifier(bbs2023.ProofSuiteType, bbs2023.NewProofVerifier(ldLoader))
	r.RegisterVerifier(ecdsasd2023.SuiteType, ecdsasd2023.NewVerifier(ldLoader))
	r.RegisterVerifier(ecdsasd2023.ProofSuiteType, ecdsasd2023.NewProofVerifier(ldLoader))

	r.RegisterDeriver(bbs2023.SuiteType, bbs2023.NewDeriver(ldLoader))
	r.RegisterDeriver(ecdsasd2023.SuiteType, ecdsasd2023.NewDeriver(ldLoader))

	return r
}

func ecdsaPlainSigner(ldLoader ld.DocumentLoader, keyType pubkey.KeyType) func(*didkey.KeyPair) (suite.Signer, error) {
	return func(key *didkey.KeyPair) (suite.Signer, error) {
		secret, err := key.SecretKeyBytes()
		if err != nil {
			return nil, err
		}

		signer, err := ecdsasigner.New(keyType, secret)
		if err != nil {
			return nil, err
		}

		return ecdsa2019.NewSigner(ldLoader, signer, keyType), nil
	}
}
