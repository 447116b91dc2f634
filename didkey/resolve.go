/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package didkey

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ResolveKeyMaterial accepts a did:key URI, a *KeyPair, or a key-shaped
// object (a map with id/controller/publicKeyMultibase fields) and returns a
// validated KeyPair. A bare URI yields a public-only key pair reconstructed
// from the embedded multibase material. A key object must have a
// publicKeyMultibase consistent with the multibase embedded in its id.
func ResolveKeyMaterial(didOrKey interface{}) (*KeyPair, error) {
	switch v := didOrKey.(type) {
	case string:
		parsed, err := ParseDID(v)
		if err != nil {
			return nil, err
		}

		return &KeyPair{
			ID:                 parsed.Authority + "#" + parsed.PublicKeyMultibase,
			Controller:         parsed.Authority,
			PublicKeyMultibase: parsed.PublicKeyMultibase,
		}, nil
	case *KeyPair:
		return validateKeyPair(v)
	case KeyPair:
		return validateKeyPair(&v)
	case map[string]interface{}:
		kp := &KeyPair{}

		if err := mapstructure.Decode(v, kp); err != nil {
			return nil, fmt.Errorf("decoding key object: %w", err)
		}

		return validateKeyPair(kp)
	default:
		return nil, fmt.Errorf("unsupported key material type %T", didOrKey)
	}
}

func validateKeyPair(kp *KeyPair) (*KeyPair, error) {
	if kp.PublicKeyMultibase == "" {
		return nil, fmt.Errorf("key object missing publicKeyMultibase: %w", ErrMalformedDID)
	}

	parsed, err := ParseDID(kp.ID)
	if err != nil {
		return nil, err
	}

	if parsed.PublicKeyMultibase != kp.PublicKeyMultibase {
		return nil, fmt.Errorf("key %s: %w", kp.ID, ErrMismatchedKey)
	}

	if _, err := DecodePublicKeyMultibase(kp.PublicKeyMultibase); err != nil {
		return nil, err
	}

	resolved := *kp
	if resolved.Controller == "" {
		resolved.Controller = parsed.Authority
	}

	return &resolved, nil
}
