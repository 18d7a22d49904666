package verifier

import (
	"math/big"

	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
)

// montgomery holds the domain parameters for arithmetic modulo n with
// R = 2^(32k).
type montgomery struct {
	n      *big.Int
	nPrime *big.Int
	mask   *big.Int
	shift  uint
}

func newMontgomery(key *rsakey.PreparedKey) *montgomery {
	shift := uint(key.FixedPointLength() * 32)
	mask := new(big.Int).Lsh(big.NewInt(1), shift)
	mask.Sub(mask, big.NewInt(1))

	return &montgomery{
		n:      key.Modulus(),
		nPrime: key.MontgomeryInverse(),
		mask:   mask,
		shift:  shift,
	}
}

// reduce computes t * R^-1 mod n for 0 <= t < n*R.
func (m *montgomery) reduce(t *big.Int) *big.Int {
	u := new(big.Int).And(t, m.mask)
	u.Mul(u, m.nPrime)
	u.And(u, m.mask)
	u.Mul(u, m.n)
	u.Add(u, t)
	u.Rsh(u, m.shift)
	if u.Cmp(m.n) >= 0 {
		u.Sub(u, m.n)
	}
	return u
}

func (m *montgomery) mul(a, b *big.Int) *big.Int {
	return m.reduce(new(big.Int).Mul(a, b))
}

func (m *montgomery) toMontgomery(x *big.Int) *big.Int {
	t := new(big.Int).Lsh(x, m.shift)
	return t.Mod(t, m.n)
}

// modExp is a resumable left-to-right square-and-multiply exponentiation.
// Each call to step consumes a bounded number of exponent bits so the work
// can be spread across scheduler ticks.
type modExp struct {
	m    *montgomery
	base *big.Int
	acc  *big.Int
	exp  *big.Int
	bit  int
}

func newModExp(m *montgomery, x *big.Int, e int) *modExp {
	exp := big.NewInt(int64(e))
	return &modExp{
		m:    m,
		base: m.toMontgomery(x),
		acc:  m.toMontgomery(big.NewInt(1)),
		exp:  exp,
		bit:  exp.BitLen() - 1,
	}
}

// step processes up to bits exponent bits and reports whether the
// exponentiation is finished.
func (x *modExp) step(bits int) bool {
	for i := 0; i < bits && x.bit >= 0; i++ {
		x.acc = x.m.mul(x.acc, x.acc)
		if x.exp.Bit(x.bit) == 1 {
			x.acc = x.m.mul(x.acc, x.base)
		}
		x.bit--
	}
	return x.bit < 0
}

// result leaves Montgomery form and returns base^e mod n.
func (x *modExp) result() *big.Int {
	return x.m.reduce(x.acc)
}
