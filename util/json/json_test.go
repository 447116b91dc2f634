/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package json

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testJSON struct {
	S []string `json:"stringSlice"`
	I int      `json:"intValue"`
}

func TestToMap(t *testing.T) {
	t.Run("from struct", func(t *testing.T) {
		m, err := ToMap(&testJSON{S: []string{"a", "b"}, I: 7})
		require.NoError(t, err)
		require.Equal(t, float64(7), m["intValue"])
	})

	t.Run("from bytes", func(t *testing.T) {
		m, err := ToMap([]byte(`{"intValue": 1}`))
		require.NoError(t, err)
		require.Equal(t, float64(1), m["intValue"])
	})

	t.Run("from string", func(t *testing.T) {
		m, err := ToMap(`{"stringSlice": ["x"]}`)
		require.NoError(t, err)
		require.Len(t, m["stringSlice"], 1)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ToMap("not-json")
		require.Error(t, err)
	})

	t.Run("unmarshallable value", func(t *testing.T) {
		_, err := ToMap(make(chan int))
		require.Error(t, err)
	})
}

func TestShallowCopyObj(t *testing.T) {
	src := map[string]interface{}{"a": 1, "b": map[string]interface{}{"c": 2}}

	cp := ShallowCopyObj(src)
	require.Equal(t, src, cp)

	cp["a"] = 100
	require.Equal(t, 1, src["a"])
}

func TestFromMap(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		v := &testJSON{}

		err := FromMap(map[string]interface{}{
			"stringSlice": []interface{}{"a", "b", "c"},
			"intValue":    7,
		}, v)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, v.S)
		require.Equal(t, 7, v.I)
	})

	t.Run("type mismatch", func(t *testing.T) {
		v := &testJSON{}

		err := FromMap(map[string]interface{}{"intValue": "seven"}, v)
		require.Error(t, err)
	})
}
