// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package field implements the Mersenne-31 base field and its degree-4
// extension used by the circle-STARK constraint system, along with the
// circle-domain point type challenges are sampled over.
package field

// Modulus is the Mersenne prime 2^31 - 1.
const Modulus uint32 = (1 << 31) - 1

// M31 is an element of GF(2^31 - 1), always kept in [0, Modulus).
type M31 uint32

// NewM31 reduces a uint32 into the field.
func NewM31(v uint32) M31 {
	return M31(reduce32(uint64(v)))
}

// NewM31FromU64 reduces an arbitrary uint64 into the field.
func NewM31FromU64(v uint64) M31 {
	return M31(reduce32(v))
}

func reduce32(v uint64) uint32 {
	v = (v & uint64(Modulus)) + (v >> 31)
	v = (v & uint64(Modulus)) + (v >> 31)
	if v >= uint64(Modulus) {
		v -= uint64(Modulus)
	}
	return uint32(v)
}

// Add returns a+b mod p.
func (a M31) Add(b M31) M31 {
	s := uint64(a) + uint64(b)
	if s >= uint64(Modulus) {
		s -= uint64(Modulus)
	}
	return M31(s)
}

// Sub returns a-b mod p.
func (a M31) Sub(b M31) M31 {
	if a >= b {
		return a - b
	}
	return M31(uint64(Modulus) - uint64(b) + uint64(a))
}

// Neg returns -a mod p.
func (a M31) Neg() M31 {
	if a == 0 {
		return 0
	}
	return M31(Modulus) - a
}

// Mul returns a*b mod p using a 64-bit intermediate and Mersenne reduction.
func (a M31) Mul(b M31) M31 {
	return M31(reduce32(uint64(a) * uint64(b)))
}

// Sqr returns a^2.
func (a M31) Sqr() M31 {
	return a.Mul(a)
}

// Pow5 returns a^5, the Sbox used by the burn-address and nullifier
// Poseidon-style round functions.
func (a M31) Pow5() M31 {
	sq := a.Sqr()
	return sq.Sqr().Mul(a)
}

// Exp computes a^e via square-and-multiply.
func (a M31) Exp(e uint64) M31 {
	result := M31(1)
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// Inv computes the multiplicative inverse via Fermat's little theorem:
// a^(p-2) = a^-1 mod p. Panics on zero, matching the package's convention
// that inversion of zero is a caller bug, never a silent zero result.
func (a M31) Inv() M31 {
	if a == 0 {
		panic("field: inverse of zero")
	}
	return a.Exp(uint64(Modulus) - 2)
}

// IsZero reports whether a is the additive identity.
func (a M31) IsZero() bool {
	return a == 0
}

// Uint32 returns the canonical representative in [0, Modulus).
func (a M31) Uint32() uint32 {
	return uint32(a)
}

// FromBytesLE reduces a little-endian byte slice (up to 8 bytes) into M31.
func FromBytesLE(b []byte) M31 {
	var v uint64
	for i, x := range b {
		if i >= 8 {
			break
		}
		v |= uint64(x) << (8 * uint(i))
	}
	return NewM31FromU64(v)
}
