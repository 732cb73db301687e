// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

// QM31 is the degree-4 extension of M31 used for Fiat-Shamir challenges and
// out-of-domain constraint evaluations, built as a tower: CM31 = M31[i]/(i^2+1)
// then QM31 = CM31[u]/(u^2-2-i), following the standard Circle STARK
// extension-tower construction (the teacher's ExtensionField in stark.go is
// the degree-2 analogue over Goldilocks; this generalizes that same
// explicit-Add/Sub/Mul/Inv style one level further for M31).
type QM31 struct {
	A0, A1, A2, A3 M31
}

// QM31FromM31 embeds a base-field element.
func QM31FromM31(a M31) QM31 {
	return QM31{A0: a}
}

// ZeroQM31 returns the additive identity.
func ZeroQM31() QM31 { return QM31{} }

// Add returns a+b componentwise.
func (a QM31) Add(b QM31) QM31 {
	return QM31{
		A0: a.A0.Add(b.A0),
		A1: a.A1.Add(b.A1),
		A2: a.A2.Add(b.A2),
		A3: a.A3.Add(b.A3),
	}
}

// Sub returns a-b componentwise.
func (a QM31) Sub(b QM31) QM31 {
	return QM31{
		A0: a.A0.Sub(b.A0),
		A1: a.A1.Sub(b.A1),
		A2: a.A2.Sub(b.A2),
		A3: a.A3.Sub(b.A3),
	}
}

// cm31Mul multiplies two pairs (x0,x1),(y0,y1) representing x0+x1*i, y0+y1*i
// with i^2 = -1.
func cm31Mul(x0, x1, y0, y1 M31) (M31, M31) {
	r0 := x0.Mul(y0).Sub(x1.Mul(y1))
	r1 := x0.Mul(y1).Add(x1.Mul(y0))
	return r0, r1
}

// Mul multiplies two QM31 elements via the CM31 tower: a = (a0+a1 i) + (a2+a3
// i) u, with u^2 = 2 + i.
func (a QM31) Mul(b QM31) QM31 {
	// (p + q u)(r + s u) = pr + (2+i) qs + (ps+qr) u
	pr0, pr1 := cm31Mul(a.A0, a.A1, b.A0, b.A1)
	qs0, qs1 := cm31Mul(a.A2, a.A3, b.A2, b.A3)
	ps0, ps1 := cm31Mul(a.A0, a.A1, b.A2, b.A3)
	qr0, qr1 := cm31Mul(a.A2, a.A3, b.A0, b.A1)

	// (2+i)*qs
	twoQs0 := qs0.Add(qs0).Sub(qs1)
	twoQs1 := qs1.Add(qs1).Add(qs0)

	return QM31{
		A0: pr0.Add(twoQs0),
		A1: pr1.Add(twoQs1),
		A2: ps0.Add(qr0),
		A3: ps1.Add(qr1),
	}
}

// MulM31 scales a QM31 element by a base-field scalar.
func (a QM31) MulM31(s M31) QM31 {
	return QM31{A0: a.A0.Mul(s), A1: a.A1.Mul(s), A2: a.A2.Mul(s), A3: a.A3.Mul(s)}
}

// IsZero reports whether every limb is zero.
func (a QM31) IsZero() bool {
	return a.A0.IsZero() && a.A1.IsZero() && a.A2.IsZero() && a.A3.IsZero()
}

// Equal reports componentwise equality.
func (a QM31) Equal(b QM31) bool {
	return a.A0 == b.A0 && a.A1 == b.A1 && a.A2 == b.A2 && a.A3 == b.A3
}

// Point is a point on the STARK circle domain, carried in the extension
// field so out-of-domain evaluation points can be sampled from the
// Fiat-Shamir channel.
type Point struct {
	X, Y QM31
}
