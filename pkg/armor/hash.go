package armor

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HashAlgorithm is an OpenPGP hash algorithm identifier. See RFC 4880 section 9.4.
type HashAlgorithm uint8

const (
	MD5       HashAlgorithm = 1
	SHA1      HashAlgorithm = 2
	RIPEMD160 HashAlgorithm = 3
	MD2       HashAlgorithm = 5
	SHA256    HashAlgorithm = 8
	SHA384    HashAlgorithm = 9
	SHA512    HashAlgorithm = 10
)

var hashNames = map[HashAlgorithm]string{
	MD5:       "MD5",
	SHA1:      "SHA1",
	RIPEMD160: "RIPEMD160",
	MD2:       "MD2",
	SHA256:    "SHA256",
	SHA384:    "SHA384",
	SHA512:    "SHA512",
}

// Name returns the name used in the Hash header of a clear-signed message.
func (h HashAlgorithm) Name() (string, error) {
	name, ok := hashNames[h]
	if !ok {
		return "", errors.WithMessagef(ErrUnsupportedHash, "hash algorithm %d", uint8(h))
	}

	return name, nil
}

func (h HashAlgorithm) String() string {
	if name, ok := hashNames[h]; ok {
		return name
	}

	return "HashAlgorithm(" + strconv.Itoa(int(h)) + ")"
}

// ParseHashAlgorithm returns the hash algorithm with the given name, ignoring case.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	for h, n := range hashNames {
		if strings.EqualFold(n, name) {
			return h, nil
		}
	}

	return 0, errors.WithMessagef(ErrUnsupportedHash, "hash algorithm %q", name)
}
