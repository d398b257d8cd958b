package utils

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NormalizeName trims leading and trailing spaces on a string, and converts its characters to lowercase
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// JSONMarshal will JSON encode a given object, without escaping HTML characters
func JSONMarshal(obj interface{}) ([]byte, error) {
	return JSONMarshalIndent(obj, "", "")
}

// JSONMarshalIndent will JSON encode a given object, without escaping HTML characters and indentation
func JSONMarshalIndent(obj interface{}, prefix, indent string) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}

	// json.NewEncoder.Encode adds a final '\n', json.Marshal does not.
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}
