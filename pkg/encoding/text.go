// Package encoding provides text decoding for exported capture files.
package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewDecodingReader wraps r so that UTF-16 (LE or BE) input with a byte order
// mark is transcoded to UTF-8. A UTF-8 BOM is stripped. Input without a BOM
// is passed through as UTF-8.
func NewDecodingReader(r io.Reader) io.Reader {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(r, decoder)
}

// DecodeBytes is NewDecodingReader for in-memory data.
// Returns the original bytes if decoding fails.
func DecodeBytes(data []byte) []byte {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return data
	}
	return result
}
