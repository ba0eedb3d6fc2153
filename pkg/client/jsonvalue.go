package client

import (
	"encoding/json"
	"strings"
)

// JSONPrefix marks a stored string as JSON-encoded structured data. Values
// carrying it are decoded transparently on read. Nothing encodes on write:
// callers store structured data by passing the result of EncodeJSON.
const JSONPrefix = "!JSON"

// EncodeJSON encodes v as a JSONPrefix-marked string suitable for storage in
// a text column.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return JSONPrefix + string(data), nil
}

// decodeValue returns the structured value of a JSONPrefix-marked string and
// any other value unchanged. Marked strings that are not valid JSON are kept
// as stored.
func decodeValue(v interface{}) (interface{}, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, JSONPrefix) {
		return v, true
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(strings.TrimPrefix(s, JSONPrefix)), &decoded); err != nil {
		return v, false
	}
	return decoded, true
}
