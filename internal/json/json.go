// Package json wraps bytedance/sonic behind the subset of the encoding/json API
// the client uses. The std-compatible sonic config is used so map keys are
// sorted and HTML is escaped exactly as encoding/json would.
package json

import (
	stdjson "encoding/json"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

type (
	// RawMessage is a raw encoded JSON value.
	RawMessage = stdjson.RawMessage

	// SyntaxError is a description of a JSON syntax error.
	SyntaxError = stdjson.SyntaxError
)

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent returns the indented JSON encoding of v.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return api.Valid(data)
}
