/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ldcontext

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/piprate/json-gold/ld"
	"golang.org/x/sync/singleflight"
)

// ErrDocumentResolution is returned when a context or DID document could not
// be fetched or parsed.
var ErrDocumentResolution = errors.New("document resolution failed")

const defaultCacheSize = 256

// DocumentLoader resolves JSON-LD context URLs and did:key DIDs for the
// canonicalization machinery. Resolution order: seeded/accumulated store,
// local did:key synthesis, then the network (when a HTTP client is
// configured). Concurrent resolutions of the same unresolved URL are
// de-duplicated, and every successful remote fetch is written through to the
// store.
type DocumentLoader struct {
	store  *Store
	client *http.Client
	parsed *lru.Cache[string, *ld.RemoteDocument]
	group  singleflight.Group
}

// LoaderOpt configures a DocumentLoader.
type LoaderOpt func(*loaderOpts)

type loaderOpts struct {
	client    *http.Client
	cacheSize int
}

// WithHTTPClient enables remote context fetching with the given client.
// Without it, any URL missing from the store fails with
// ErrDocumentResolution.
func WithHTTPClient(client *http.Client) LoaderOpt {
	return func(o *loaderOpts) {
		o.client = client
	}
}

// WithDocumentCacheSize sets the size of the parsed-document cache.
func WithDocumentCacheSize(size int) LoaderOpt {
	return func(o *loaderOpts) {
		o.cacheSize = size
	}
}

// NewDocumentLoader creates a DocumentLoader over the given store.
func NewDocumentLoader(store *Store, opts ...LoaderOpt) (*DocumentLoader, error) {
	options := &loaderOpts{cacheSize: defaultCacheSize}

	for _, opt := range opts {
		opt(options)
	}

	cache, err := lru.New[string, *ld.RemoteDocument](options.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating document cache: %w", err)
	}

	return &DocumentLoader{
		store:  store,
		client: options.client,
		parsed: cache,
	}, nil
}

// LoadDocument implements json-gold's ld.DocumentLoader.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if doc, ok := l.parsed.Get(u); ok {
		return doc, nil
	}

	if stored, ok := l.store.Get(u); ok {
		return l.parse(u, stored.Content)
	}

	if strings.HasPrefix(u, "did:key:") {
		return l.loadDIDKey(u)
	}

	return l.fetch(u)
}

func (l *DocumentLoader) parse(u string, content []byte) (*ld.RemoteDocument, error) {
	parsed, err := ld.DocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", u, ErrDocumentResolution)
	}

	doc := &ld.RemoteDocument{
		DocumentURL: u,
		Document:    parsed,
	}

	l.parsed.Add(u, doc)

	return doc, nil
}

func (l *DocumentLoader) loadDIDKey(did string) (*ld.RemoteDocument, error) {
	didDoc, err := SynthesizeDIDKeyDocument(did)
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(didDoc)
	if err != nil {
		return nil, err
	}

	l.store.Put(&Document{URL: did, Content: content})

	return l.parse(did, content)
}

func (l *DocumentLoader) fetch(u string) (*ld.RemoteDocument, error) {
	if l.client == nil {
		return nil, fmt.Errorf("context %s not found and remote fetching disabled: %w", u, ErrDocumentResolution)
	}

	doc, err, _ := l.group.Do(u, func() (interface{}, error) {
		res, err := ld.NewDefaultDocumentLoader(l.client).LoadDocument(u)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", u, ErrDocumentResolution)
		}

		content, err := json.Marshal(res.Document)
		if err != nil {
			return nil, fmt.Errorf("encoding fetched document %s: %w", u, ErrDocumentResolution)
		}

		l.store.Put(&Document{URL: u, DocumentURL: res.DocumentURL, Content: content})
		l.parsed.Add(u, res)

		return res, nil
	})
	if err != nil {
		return nil, err
	}

	return doc.(*ld.RemoteDocument), nil
}
