/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package canonical

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ParsePointer splits a JSON pointer ("/credentialSubject/degree~1name")
// into its unescaped reference tokens.
func ParsePointer(pointer string) ([]string, error) {
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("JSON pointer %q must start with '/'", pointer)
	}

	segments := strings.Split(pointer[1:], "/")

	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		segments[i] = seg
	}

	return segments, nil
}

// SelectPointers builds the subset of doc addressed by the given JSON
// pointers. The @context is always carried, and every object along a
// pointer's path keeps its id and type so the selected statements stay
// attached to the same nodes as in the full document.
func SelectPointers(doc map[string]interface{}, pointers []string) (map[string]interface{}, error) {
	result := map[string]interface{}{}

	if ctx, ok := doc["@context"]; ok {
		result["@context"] = deepCopyValue(ctx)
	}

	carryIdentifiers(doc, result)

	for _, pointer := range pointers {
		segments, err := ParsePointer(pointer)
		if err != nil {
			return nil, err
		}

		selected, err := selectValue(doc, segments)
		if err != nil {
			return nil, fmt.Errorf("selecting %q: %w", pointer, err)
		}

		selectedMap, ok := selected.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("selecting %q: document root is not an object", pointer)
		}

		mergeObjects(result, selectedMap)
	}

	return result, nil
}

// selectValue returns the skeleton of src containing only the value the
// remaining segments address, with identifiers carried at every level.
func selectValue(src interface{}, segments []string) (interface{}, error) {
	if len(segments) == 0 {
		return deepCopyValue(src), nil
	}

	switch s := src.(type) {
	case map[string]interface{}:
		child, ok := s[segments[0]]
		if !ok {
			return nil, fmt.Errorf("field %q does not exist", segments[0])
		}

		selected, err := selectValue(child, segments[1:])
		if err != nil {
			return nil, err
		}

		out := map[string]interface{}{segments[0]: selected}
		carryIdentifiers(s, out)

		return out, nil
	case []interface{}:
		idx, err := strconv.Atoi(segments[0])
		if err != nil {
			return nil, fmt.Errorf("segment %q indexes an array", segments[0])
		}

		if idx < 0 || idx >= len(s) {
			return nil, fmt.Errorf("array index %d out of range", idx)
		}

		selected, err := selectValue(s[idx], segments[1:])
		if err != nil {
			return nil, err
		}

		return []interface{}{selected}, nil
	default:
		return nil, fmt.Errorf("segment %q addresses into a scalar", segments[0])
	}
}

func carryIdentifiers(src, dst map[string]interface{}) {
	for _, fld := range []string{"id", "type"} {
		if v, ok := src[fld]; ok {
			dst[fld] = deepCopyValue(v)
		}
	}
}

// mergeObjects merges src into dst. Maps merge key-wise, arrays union with
// duplicates dropped; a JSON-LD array is a set, its order does not survive
// canonicalization anyway.
func mergeObjects(dst, src map[string]interface{}) {
	for key, sv := range src {
		dv, ok := dst[key]
		if !ok {
			dst[key] = sv
			continue
		}

		switch dvt := dv.(type) {
		case map[string]interface{}:
			if svt, ok := sv.(map[string]interface{}); ok {
				mergeObjects(dvt, svt)
				continue
			}
		case []interface{}:
			if svt, ok := sv.([]interface{}); ok {
				dst[key] = mergeArrays(dvt, svt)
				continue
			}
		}

		dst[key] = sv
	}
}

func mergeArrays(dst, src []interface{}) []interface{} {
	for _, sv := range src {
		merged := false

		if svm, ok := sv.(map[string]interface{}); ok {
			for _, dv := range dst {
				dvm, ok := dv.(map[string]interface{})
				if ok && sameNode(dvm, svm) {
					mergeObjects(dvm, svm)

					merged = true

					break
				}
			}
		}

		if merged {
			continue
		}

		duplicate := false

		for _, dv := range dst {
			if reflect.DeepEqual(dv, sv) {
				duplicate = true
				break
			}
		}

		if !duplicate {
			dst = append(dst, sv)
		}
	}

	return dst
}

// sameNode reports whether two selected objects describe the same node, by
// shared id.
func sameNode(a, b map[string]interface{}) bool {
	aID, aOK := a["id"].(string)
	bID, bOK := b["id"].(string)

	return aOK && bOK && aID == bID
}

func deepCopyValue(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}

	return out
}
