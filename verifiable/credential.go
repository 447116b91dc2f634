/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifiable implements the issuance, selective disclosure and
// verification of W3C verifiable credentials and presentations secured with
// Data Integrity proofs over did:key identities.
package verifiable

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trustbloc/vc-kit/models"
)

const (
	// ContextURI is the base W3C credentials context every credential and
	// presentation carries first.
	ContextURI = "https://www.w3.org/2018/credentials/v1"
	// DataIntegrityContextURI defines the DataIntegrityProof terms.
	DataIntegrityContextURI = "https://w3id.org/security/data-integrity/v2"

	// VCType is the JSON-LD type of a verifiable credential.
	VCType = "VerifiableCredential"
	// VPType is the JSON-LD type of a verifiable presentation.
	VPType = "VerifiablePresentation"

	jsonFldContext    = "@context"
	jsonFldType       = "type"
	jsonFldIssuer     = "issuer"
	jsonFldProof      = "proof"
	jsonFldCredential = "verifiableCredential"
)

// ErrInvalidDocument is returned when a credential or presentation document
// is structurally broken before any cryptography is attempted.
var ErrInvalidDocument = errors.New("invalid document")

// Credential is a verifiable credential backed by its JSON-LD document.
type Credential struct {
	docMap map[string]interface{}
}

// ParseCredential parses a JSON verifiable credential.
func ParseCredential(raw []byte) (*Credential, error) {
	docMap := map[string]interface{}{}
	if err := json.Unmarshal(raw, &docMap); err != nil {
		return nil, fmt.Errorf("unmarshalling credential: %w", err)
	}

	return NewCredential(docMap)
}

// NewCredential wraps a credential document given as a JSON object map. The
// map is deep-copied, later mutation of the input does not affect the
// credential.
func NewCredential(docMap map[string]interface{}) (*Credential, error) {
	if docMap[jsonFldContext] == nil {
		return nil, fmt.Errorf("credential missing @context: %w", ErrInvalidDocument)
	}

	copied, err := copyDoc(docMap)
	if err != nil {
		return nil, err
	}

	return &Credential{docMap: copied}, nil
}

// ToRawMap returns a deep copy of the credential's JSON-LD document.
func (vc *Credential) ToRawMap() (map[string]interface{}, error) {
	return copyDoc(vc.docMap)
}

// MarshalJSON implements json.Marshaler.
func (vc *Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(vc.docMap)
}

// Issuer returns the credential's issuer ID, empty if it is absent or not a
// plain string.
func (vc *Credential) Issuer() string {
	issuer, _ := vc.docMap[jsonFldIssuer].(string)
	return issuer
}

// Proofs returns the credential's parsed proofs, in document order.
func (vc *Credential) Proofs() ([]*models.Proof, error) {
	return parseProofs(vc.docMap[jsonFldProof])
}

// Presentation is a verifiable presentation backed by its JSON-LD document.
type Presentation struct {
	docMap map[string]interface{}
}

// NewPresentation builds an unsigned presentation enveloping the given
// credentials.
func NewPresentation(credentials ...*Credential) (*Presentation, error) {
	embedded := make([]interface{}, 0, len(credentials))

	for _, vc := range credentials {
		docMap, err := vc.ToRawMap()
		if err != nil {
			return nil, err
		}

		embedded = append(embedded, docMap)
	}

	return &Presentation{docMap: map[string]interface{}{
		jsonFldContext:    []interface{}{ContextURI, DataIntegrityContextURI},
		jsonFldType:       []interface{}{VPType},
		jsonFldCredential: embedded,
	}}, nil
}

// ParsePresentation parses a JSON verifiable presentation.
func ParsePresentation(raw []byte) (*Presentation, error) {
	docMap := map[string]interface{}{}
	if err := json.Unmarshal(raw, &docMap); err != nil {
		return nil, fmt.Errorf("unmarshalling presentation: %w", err)
	}

	if docMap[jsonFldContext] == nil {
		return nil, fmt.Errorf("presentation missing @context: %w", ErrInvalidDocument)
	}

	return &Presentation{docMap: docMap}, nil
}

// ToRawMap returns a deep copy of the presentation's JSON-LD document.
func (vp *Presentation) ToRawMap() (map[string]interface{}, error) {
	return copyDoc(vp.docMap)
}

// MarshalJSON implements json.Marshaler.
func (vp *Presentation) MarshalJSON() ([]byte, error) {
	return json.Marshal(vp.docMap)
}

// Credentials returns the presentation's embedded credentials, in document
// order.
func (vp *Presentation) Credentials() ([]*Credential, error) {
	raw := vp.docMap[jsonFldCredential]
	if raw == nil {
		return nil, nil
	}

	var docs []interface{}

	switch v := raw.(type) {
	case []interface{}:
		docs = v
	case map[string]interface{}:
		docs = []interface{}{v}
	default:
		return nil, fmt.Errorf("verifiableCredential of type %T: %w", raw, ErrInvalidDocument)
	}

	credentials := make([]*Credential, 0, len(docs))

	for _, doc := range docs {
		docMap, ok := doc.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("embedded credential of type %T: %w", doc, ErrInvalidDocument)
		}

		vc, err := NewCredential(docMap)
		if err != nil {
			return nil, err
		}

		credentials = append(credentials, vc)
	}

	return credentials, nil
}

// Proofs returns the presentation's parsed envelope proofs.
func (vp *Presentation) Proofs() ([]*models.Proof, error) {
	return parseProofs(vp.docMap[jsonFldProof])
}

func parseProofs(raw interface{}) ([]*models.Proof, error) {
	if raw == nil {
		return nil, nil
	}

	var proofMaps []interface{}

	switch v := raw.(type) {
	case map[string]interface{}:
		proofMaps = []interface{}{v}
	case []interface{}:
		proofMaps = v
	default:
		return nil, fmt.Errorf("proof of type %T: %w", raw, ErrInvalidDocument)
	}

	proofs := make([]*models.Proof, 0, len(proofMaps))

	for _, p := range proofMaps {
		proofMap, ok := p.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("proof entry of type %T: %w", p, ErrInvalidDocument)
		}

		parsed, err := models.ProofFromMap(proofMap)
		if err != nil {
			return nil, err
		}

		proofs = append(proofs, parsed)
	}

	return proofs, nil
}

func copyDoc(docMap map[string]interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(docMap)
	if err != nil {
		return nil, err
	}

	copied := map[string]interface{}{}
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, err
	}

	return copied, nil
}
