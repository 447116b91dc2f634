/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ldcontext

import "sync"

// Store is the in-process context store. It is seeded at construction and
// grows monotonically: documents are added as the loader resolves them and
// are never evicted or replaced.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore creates a Store seeded with the given documents.
func NewStore(seed ...Document) *Store {
	s := &Store{
		docs: make(map[string]*Document, len(seed)),
	}

	for i := range seed {
		doc := seed[i]
		s.docs[doc.URL] = &doc
	}

	return s
}

// Get returns the stored document for the given URL.
func (s *Store) Get(url string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[url]

	return doc, ok
}

// Put stores a resolved document. The first write for a URL wins; the store
// never replaces an existing entry.
func (s *Store) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.URL]; ok {
		return
	}

	s.docs[doc.URL] = doc
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs)
}
