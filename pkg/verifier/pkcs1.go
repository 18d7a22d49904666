package verifier

import (
	"crypto/sha256"
	"errors"
)

// DER prefix of DigestInfo for SHA-256 (RFC 8017, section 9.2, note 1).
var sha256DigestInfoPrefix = []byte{
	0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
	0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
}

var errModulusTooShort = errors.New("verifier: modulus too short for PKCS#1 v1.5 SHA-256 encoding")

// encodePKCS1v15SHA256 builds EM = 0x00 || 0x01 || PS || 0x00 || DigestInfo
// for a modulus of size bytes.
func encodePKCS1v15SHA256(digest [sha256.Size]byte, size int) ([]byte, error) {
	tLen := len(sha256DigestInfoPrefix) + sha256.Size
	if size < tLen+11 {
		return nil, errModulusTooShort
	}

	em := make([]byte, size)
	em[1] = 0x01
	for i := 2; i < size-tLen-1; i++ {
		em[i] = 0xff
	}
	copy(em[size-tLen:], sha256DigestInfoPrefix)
	copy(em[size-sha256.Size:], digest[:])
	return em, nil
}
