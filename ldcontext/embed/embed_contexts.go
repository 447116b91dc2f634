/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embed

import (
	_ "embed" //nolint:gci // required for go:embed

	"github.com/trustbloc/vc-kit/ldcontext"
)

// nolint:gochecknoglobals // required for go:embed
var (
	//go:embed third_party/w3.org/credentials_v1.jsonld
	w3orgCredentials []byte
	//go:embed third_party/w3.org/did_v1.jsonld
	w3orgDID []byte
	//go:embed third_party/w3id.org/data_integrity_v2.jsonld
	w3idDataIntegrity []byte
	//go:embed third_party/w3id.org/multikey_v1.jsonld
	w3idMultikey []byte
)

// Contexts contains the well-known JSON-LD contexts embedded into the Go
// binary, so that signing and verification of ordinary credentials performs
// no network round-trips.
var Contexts = []ldcontext.Document{ //nolint:gochecknoglobals
	{
		URL:     "https://www.w3.org/2018/credentials/v1",
		Content: w3orgCredentials,
	},
	{
		URL:     "https://www.w3.org/ns/did/v1",
		Content: w3orgDID,
	},
	{
		URL:     "https://w3id.org/security/data-integrity/v2",
		Content: w3idDataIntegrity,
	},
	{
		URL:     "https://w3id.org/security/multikey/v1",
		Content: w3idMultikey,
	},
}
