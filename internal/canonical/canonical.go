/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package canonical implements the RDF statement plumbing shared by the
// selective-disclosure cryptosuites: canonicalization, statement splitting,
// blank node identifier transforms and JSON pointer based selection.
package canonical

import (
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"
	"github.com/trustbloc/did-go/doc/ld/processor"
)

const (
	format = "application/n-quads"

	// blank node identifiers are transformed into resolvable urn:bnid IRIs
	// while a document is reassembled for disclosure, and restored before
	// statement matching.
	bnidPlaceholder = "<urn:bnid:_:c14n"
	bnidPrefixLen   = 10
)

// Canonicalize produces the URDNA2015 canonical form of a JSON-LD document.
func Canonicalize(doc map[string]interface{}, loader ld.DocumentLoader) ([]byte, error) {
	out, err := processor.Default().GetCanonicalDocument(doc, processor.WithDocumentLoader(loader))
	if err != nil {
		return nil, fmt.Errorf("canonicalizing document: %w", err)
	}

	return out, nil
}

// Statements splits a canonical document into its non-empty statement lines.
func Statements(canon []byte) []string {
	rows := strings.Split(string(canon), "\n")

	msgs := make([]string, 0, len(rows))

	for i := range rows {
		if strings.TrimSpace(rows[i]) != "" {
			msgs = append(msgs, rows[i])
		}
	}

	return msgs
}

// StatementBytes converts statements into the byte slices signed as
// individual messages.
func StatementBytes(statements []string) [][]byte {
	res := make([][]byte, len(statements))

	for i := range statements {
		res[i] = []byte(statements[i])
	}

	return res
}

// TransformBlankNode replaces blank node identifiers in an RDF statement
// with urn:bnid IRIs, e.g. "_:c14n0" becomes "<urn:bnid:_:c14n0>". Subject
// and object positions are both covered.
func TransformBlankNode(row string) string {
	tokens := strings.Split(row, " ")

	for i, token := range tokens {
		if strings.HasPrefix(token, "_:c14n") {
			tokens[i] = "<urn:bnid:" + token + ">"
		}
	}

	return strings.Join(tokens, " ")
}

// TransformBlankNodes applies TransformBlankNode to every statement.
func TransformBlankNodes(statements []string) []string {
	out := make([]string, len(statements))

	for i := range statements {
		out[i] = TransformBlankNode(statements[i])
	}

	return out
}

// RestoreBlankNode transforms urn:bnid IRIs back into the blank node
// identifiers they stand for, e.g. "<urn:bnid:_:c14n0>" becomes "_:c14n0".
func RestoreBlankNode(row string) string {
	tokens := strings.Split(row, " ")

	for i, token := range tokens {
		if strings.HasPrefix(token, bnidPlaceholder) && strings.HasSuffix(token, ">") {
			tokens[i] = token[bnidPrefixLen : len(token)-1]
		}
	}

	return strings.Join(tokens, " ")
}

// RestoreBlankNodes applies RestoreBlankNode to every statement.
func RestoreBlankNodes(statements []string) []string {
	out := make([]string, len(statements))

	for i := range statements {
		out[i] = RestoreBlankNode(statements[i])
	}

	return out
}

// Skolemize rebuilds a JSON-LD document from its canonical statements with
// every blank node replaced by an explicit urn:bnid identifier, compacted
// against the document's own @context. Pointer selection over the result
// yields subsets whose canonical statements match the original document's
// transformed statements exactly.
func Skolemize(doc map[string]interface{}, loader ld.DocumentLoader) (map[string]interface{}, error) {
	canon, err := Canonicalize(doc, loader)
	if err != nil {
		return nil, err
	}

	statements := TransformBlankNodes(Statements(canon))

	return FromStatements(statements, doc["@context"], loader)
}

// FromStatements reassembles a JSON-LD document from RDF statements and
// compacts it against the given context.
func FromStatements(statements []string, context interface{}, loader ld.DocumentLoader) (map[string]interface{}, error) {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Format = format
	ldOptions.ProduceGeneralizedRdf = true
	ldOptions.DocumentLoader = loader

	proc := ld.NewJsonLdProcessor()

	expanded, err := proc.FromRDF(strings.Join(statements, "\n"), ldOptions)
	if err != nil {
		return nil, fmt.Errorf("rdf processing failed: %w", err)
	}

	compacted, err := proc.Compact(expanded, map[string]interface{}{"@context": context}, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("compacting failed: %w", err)
	}

	compacted["@context"] = context

	return compacted, nil
}
