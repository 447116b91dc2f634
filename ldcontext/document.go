/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ldcontext provides the in-process JSON-LD context store and the
// document loader the cryptosuites canonicalize against. The store is seeded
// with the well-known contexts this module depends on and grows as the
// loader resolves new documents.
package ldcontext

import "encoding/json"

// Document is a JSON-LD context document with associated metadata.
type Document struct {
	// URL is the context URL that shows up in documents.
	URL string `json:"url,omitempty"`
	// DocumentURL is the final URL of the loaded context document, when it
	// differs from URL (e.g. after redirects).
	DocumentURL string `json:"documentURL,omitempty"`
	// Content is the context document itself.
	Content json.RawMessage `json:"content,omitempty"`
}
