package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
		ok   bool
	}{
		{"plain string", "hello", "hello", true},
		{"number", int64(4), int64(4), true},
		{"nil", nil, nil, true},
		{"object", `!JSON{"a":1}`, map[string]interface{}{"a": float64(1)}, true},
		{"list", `!JSON[1,"x"]`, []interface{}{float64(1), "x"}, true},
		{"scalar", `!JSONtrue`, true, true},
		{"prefix only in the middle", `x!JSON{}`, `x!JSON{}`, true},
		{"invalid payload kept", `!JSON{broken`, `!JSON{broken`, false},
		{"bytes untouched", []byte(`!JSON{}`), []byte(`!JSON{}`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeValue(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	s, err := EncodeJSON(map[string]interface{}{"b": []int{1, 2}, "a": "x"})
	require.NoError(t, err)
	assert.Equal(t, `!JSON{"a":"x","b":[1,2]}`, s)

	decoded, ok := decodeValue(s)
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"a": "x", "b": []interface{}{float64(1), float64(2)}}, decoded)

	_, err = EncodeJSON(make(chan int))
	assert.Error(t, err)
}

func TestRowSetIsLocal(t *testing.T) {
	db, err := New(Config{Filename: "unused.db"})
	require.NoError(t, err)

	row := db.newRow("users", []string{"id", "meta"}, map[string]interface{}{"id": int64(1), "meta": `!JSON{"k":"v"}`})
	assert.Equal(t, map[string]interface{}{"k": "v"}, row.Value("meta"))

	row.Set("extra", `!JSON[1]`)
	row.Set("id", int64(2))
	assert.Equal(t, []string{"id", "meta", "extra"}, row.Columns())
	assert.Equal(t, []interface{}{int64(2), map[string]interface{}{"k": "v"}, []interface{}{float64(1)}}, row.Values())

	// The identity still reflects the stored values.
	assert.Equal(t, V("id", int64(1), "meta", `!JSON{"k":"v"}`), row.identity())

	_, ok := row.Get("missing")
	assert.False(t, ok)
}
