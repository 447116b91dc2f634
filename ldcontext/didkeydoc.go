/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ldcontext

import (
	"github.com/trustbloc/vc-kit/didkey"
)

// SynthesizeDIDKeyDocument builds a DID document for a did:key URI from the
// public key embedded in the identifier. No network round-trip is needed:
// did:key documents are fully determined by the key material.
func SynthesizeDIDKeyDocument(did string) (map[string]interface{}, error) {
	parsed, err := didkey.ParseDID(did)
	if err != nil {
		return nil, err
	}

	// reject unknown key families before advertising a verification method
	if _, err := didkey.DecodePublicKeyMultibase(parsed.PublicKeyMultibase); err != nil {
		return nil, err
	}

	keyID := parsed.Authority + "#" + parsed.PublicKeyMultibase

	return map[string]interface{}{
		"@context": []interface{}{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/multikey/v1",
		},
		"id": parsed.Authority,
		"verificationMethod": []interface{}{
			map[string]interface{}{
				"id":                 keyID,
				"type":               "Multikey",
				"controller":         parsed.Authority,
				"publicKeyMultibase": parsed.PublicKeyMultibase,
			},
		},
		"assertionMethod": []interface{}{keyID},
		"authentication":  []interface{}{keyID},
	}, nil
}
