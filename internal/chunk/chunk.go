// Package chunk encodes the 1-3 byte groups of an armored payload as padded base64.
package chunk

import (
	"encoding/base64"
	"errors"
)

const (
	Size        = 3 // Size is the number of raw bytes in a full group.
	EncodedSize = 4 // EncodedSize is the number of base64 characters a group encodes to.
)

// ErrInvalidLength is the panic value of Encode when given more than Size bytes.
var ErrInvalidLength = errors.New("invalid chunk length")

// Encode writes the padded base64 encoding of src to dst and returns the number of characters
// written. An empty src writes nothing. dst must have room for EncodedSize characters.
func Encode(dst, src []byte) int {
	switch len(src) {
	case 0:
		return 0
	case 1, 2, Size:
		base64.StdEncoding.Encode(dst, src)

		return EncodedSize
	default:
		panic(ErrInvalidLength)
	}
}
