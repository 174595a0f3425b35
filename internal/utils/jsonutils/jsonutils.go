// Package jsonutils json decoding helper
package jsonutils

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// DecodeBytes decode json byte array
func DecodeBytes(b []byte, v any) error {
	rd := bytes.NewReader(b)
	return DecodeJSON(rd, v)
}

// DecodeString decode json string
func DecodeString(str string, v any) error {
	rd := strings.NewReader(str)
	return DecodeJSON(rd, v)
}

// DecodeJSON decode from reader interface, numbers are kept as json.Number
func DecodeJSON(r io.Reader, v any) error {
	defer io.Copy(io.Discard, r)
	d := json.NewDecoder(r)
	d.UseNumber()
	return d.Decode(v)
}
