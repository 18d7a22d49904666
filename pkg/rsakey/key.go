package rsakey

import (
	"crypto/rsa"
	"fmt"
	"math/big"
	"slices"
)

const wordBits = 32

// PreparedKey is an RSA public key in Montgomery fixed-point form.
// It is immutable once built and safe to share between goroutines.
type PreparedKey struct {
	e        int
	n        []uint32
	nInverse []uint32
	k        int

	modulus *big.Int
	nPrime  *big.Int
}

// Prepare converts a standard RSA public key into Montgomery form.
func Prepare(pub *rsa.PublicKey) (*PreparedKey, error) {
	if pub == nil || pub.N == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrInvalidKey)
	}
	return PrepareModulus(pub.N, pub.E)
}

// PrepareModulus builds a PreparedKey from a modulus and public exponent.
// The fixed-point length is the number of 32-bit words needed to hold n, so
// R = 2^(32k) is the smallest word-aligned power of two above n.
func PrepareModulus(n *big.Int, e int) (*PreparedKey, error) {
	if err := validateModulus(n, e); err != nil {
		return nil, err
	}

	k := (n.BitLen() + wordBits - 1) / wordBits
	r := new(big.Int).Lsh(big.NewInt(1), uint(k*wordBits))

	inv := new(big.Int).ModInverse(n, r)
	if inv == nil {
		return nil, fmt.Errorf("%w: modulus has no inverse modulo R", ErrInvalidKey)
	}
	nPrime := new(big.Int).Sub(r, inv)
	nPrime.Mod(nPrime, r)

	return &PreparedKey{
		e:        e,
		n:        intToWords(n, k),
		nInverse: intToWords(nPrime, k),
		k:        k,
		modulus:  new(big.Int).Set(n),
		nPrime:   nPrime,
	}, nil
}

// FromMontgomery builds a PreparedKey from precomputed Montgomery material:
// the exponent, the modulus words, the words of -n^-1 mod R and the word
// count k of R. Words are little-endian (least significant first).
func FromMontgomery(e int, n, nInverse []uint32, fixedPointLength int) (*PreparedKey, error) {
	if fixedPointLength <= 0 {
		return nil, fmt.Errorf("%w: fixed point length must be positive", ErrInvalidKey)
	}
	if len(n) != fixedPointLength || len(nInverse) != fixedPointLength {
		return nil, fmt.Errorf("%w: expected %d words, got n=%d nInverse=%d",
			ErrInvalidKey, fixedPointLength, len(n), len(nInverse))
	}

	modulus := wordsToInt(n)
	if err := validateModulus(modulus, e); err != nil {
		return nil, err
	}

	nPrime := wordsToInt(nInverse)
	r := new(big.Int).Lsh(big.NewInt(1), uint(fixedPointLength*wordBits))

	// n * n' must be congruent to -1 modulo R.
	check := new(big.Int).Mul(modulus, nPrime)
	check.Add(check, big.NewInt(1))
	check.Mod(check, r)
	if check.Sign() != 0 {
		return nil, fmt.Errorf("%w: nInverse is not the Montgomery inverse of n", ErrInvalidKey)
	}

	return &PreparedKey{
		e:        e,
		n:        slices.Clone(n),
		nInverse: slices.Clone(nInverse),
		k:        fixedPointLength,
		modulus:  modulus,
		nPrime:   nPrime,
	}, nil
}

func validateModulus(n *big.Int, e int) error {
	if n == nil || n.Sign() <= 0 {
		return fmt.Errorf("%w: modulus must be positive", ErrInvalidKey)
	}
	if n.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus must be odd", ErrInvalidKey)
	}
	if e < 2 {
		return fmt.Errorf("%w: exponent %d out of range", ErrInvalidKey, e)
	}
	return nil
}

// E returns the public exponent.
func (k *PreparedKey) E() int { return k.e }

// FixedPointLength returns the number of 32-bit words in R.
func (k *PreparedKey) FixedPointLength() int { return k.k }

// N returns a copy of the modulus words.
func (k *PreparedKey) N() []uint32 { return slices.Clone(k.n) }

// NInverse returns a copy of the Montgomery inverse words.
func (k *PreparedKey) NInverse() []uint32 { return slices.Clone(k.nInverse) }

// Modulus returns a copy of n.
func (k *PreparedKey) Modulus() *big.Int { return new(big.Int).Set(k.modulus) }

// MontgomeryInverse returns a copy of -n^-1 mod R.
func (k *PreparedKey) MontgomeryInverse() *big.Int { return new(big.Int).Set(k.nPrime) }

// Size returns the modulus length in bytes, which is also the length of a
// valid signature.
func (k *PreparedKey) Size() int { return (k.modulus.BitLen() + 7) / 8 }

// PublicKey returns the key as a standard library RSA public key.
func (k *PreparedKey) PublicKey() *rsa.PublicKey {
	return &rsa.PublicKey{N: k.Modulus(), E: k.e}
}

// Equal reports whether both keys carry the same material.
func (k *PreparedKey) Equal(other *PreparedKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.e == other.e && k.k == other.k &&
		slices.Equal(k.n, other.n) && slices.Equal(k.nInverse, other.nInverse)
}

func wordsToInt(words []uint32) *big.Int {
	x := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		x.Lsh(x, wordBits)
		x.Or(x, new(big.Int).SetUint64(uint64(words[i])))
	}
	return x
}

func intToWords(x *big.Int, k int) []uint32 {
	words := make([]uint32, k)
	mask := new(big.Int).SetUint64(0xffffffff)
	t := new(big.Int).Set(x)
	w := new(big.Int)
	for i := range k {
		words[i] = uint32(w.And(t, mask).Uint64())
		t.Rsh(t, wordBits)
	}
	return words
}
