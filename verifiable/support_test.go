/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"

	"github.com/trustbloc/vc-kit/ldcontext"
	"github.com/trustbloc/vc-kit/ldcontext/embed"
	"github.com/trustbloc/vc-kit/suite"
	"github.com/trustbloc/vc-kit/suite/defaults"
)

const exampleContextURL = "https://example.org/contexts/degree/v1"

const exampleContextDoc = `{
  "@context": {
    "@version": 1.1,
    "@protected": true,
    "ex": "https://example.org/examples#",
    "schema": "http://schema.org/",
    "ExampleDegreeCredential": "ex:ExampleDegreeCredential",
    "alumniOf": "schema:alumniOf",
    "degreeName": "ex:degreeName",
    "degreeType": "ex:degreeType",
    "spouse": "schema:spouse"
  }
}`

func testLoader(t *testing.T) *ldcontext.DocumentLoader {
	t.Helper()

	store := ldcontext.NewStore(embed.Contexts...)
	store.Put(&ldcontext.Document{
		URL:     exampleContextURL,
		Content: json.RawMessage(exampleContextDoc),
	})

	loader, err := ldcontext.NewDocumentLoader(store)
	require.NoError(t, err)

	return loader
}

func testStack(t *testing.T) (*suite.Registry, *ldcontext.DocumentLoader) {
	t.Helper()

	loader := testLoader(t)

	return defaults.NewRegistry(loader), loader
}

func degreeCredential(t *testing.T) *Credential {
	t.Helper()

	vc, err := NewCredential(map[string]interface{}{
		"@context": []interface{}{
			ContextURI,
			DataIntegrityContextURI,
			exampleContextURL,
		},
		"id":           "urn:uuid:" + uuid.NewString(),
		"type":         []interface{}{VCType, "ExampleDegreeCredential"},
		"issuer":       "did:example:placeholder",
		"issuanceDate": "2024-02-03T10:24:00Z",
		"credentialSubject": map[string]interface{}{
			"id":         "did:example:ebfeb1f712ebc6f1c276e12ec21",
			"alumniOf":   "Example University",
			"degreeName": "Bachelor of Science and Arts",
			"degreeType": "BachelorDegree",
			"spouse":     "did:example:c276e12ec21ebfeb1f712ebc6f1",
		},
	})
	require.NoError(t, err)

	return vc
}

// tamperCredential flips one field of a signed credential through a JSON
// round trip, leaving the proof untouched.
func tamperCredential(t *testing.T, vc *Credential, path string, value interface{}) *Credential {
	t.Helper()

	raw, err := vc.MarshalJSON()
	require.NoError(t, err)

	tampered, err := sjson.SetBytes(raw, path, value)
	require.NoError(t, err)

	parsed, err := ParseCredential(tampered)
	require.NoError(t, err)

	return parsed
}
