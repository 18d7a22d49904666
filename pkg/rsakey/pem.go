package rsakey

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// LoadPublicKeyFile reads a PEM encoded RSA public key from path.
func LoadPublicKeyFile(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return ParsePublicKeyPEM(data)
}

// ParsePublicKeyPEM parses the first PEM block in data. Supported block types
// are PUBLIC KEY (PKIX), RSA PUBLIC KEY (PKCS#1) and CERTIFICATE.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEMBlock
	}

	switch block.Type {
	case "RSA PUBLIC KEY":
		return parsePKCS1PublicKey(block.Bytes)
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return asRSA(cert.PublicKey)
	default:
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: block %q: %w", ErrInvalidKey, block.Type, err)
		}
		return asRSA(key)
	}
}

// PreparePEM parses a PEM public key and converts it into Montgomery form.
func PreparePEM(data []byte) (*PreparedKey, error) {
	pub, err := ParsePublicKeyPEM(data)
	if err != nil {
		return nil, err
	}
	return Prepare(pub)
}

func asRSA(key any) (*rsa.PublicKey, error) {
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
	}
	return pub, nil
}

// parsePKCS1PublicKey reads RSAPublicKey ::= SEQUENCE { modulus INTEGER, publicExponent INTEGER }.
func parsePKCS1PublicKey(der []byte) (*rsa.PublicKey, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	n := new(big.Int)
	var e int64

	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(n) || !seq.ReadASN1Integer(&e) || !seq.Empty() {
		return nil, fmt.Errorf("%w: malformed PKCS#1 public key", ErrInvalidKey)
	}
	if n.Sign() <= 0 || e <= 1 || e > 1<<31-1 {
		return nil, fmt.Errorf("%w: PKCS#1 key values out of range", ErrInvalidKey)
	}

	return &rsa.PublicKey{N: n, E: int(e)}, nil
}
