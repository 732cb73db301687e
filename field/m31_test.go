// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import "testing"

func TestM31AddSubInverse(t *testing.T) {
	a := NewM31(123456789)
	b := NewM31(987654321)
	sum := a.Add(b)
	if sum.Sub(b) != a {
		t.Fatalf("sub(add) did not round-trip: got %d want %d", sum.Sub(b), a)
	}
}

func TestM31MulInv(t *testing.T) {
	a := NewM31(42)
	inv := a.Inv()
	if a.Mul(inv) != M31(1) {
		t.Fatalf("a*a^-1 != 1, got %d", a.Mul(inv))
	}
}

func TestM31ReducesModulus(t *testing.T) {
	if NewM31(Modulus) != 0 {
		t.Fatalf("Modulus should reduce to 0")
	}
	if NewM31(Modulus + 5) != 5 {
		t.Fatalf("Modulus+5 should reduce to 5, got %d", NewM31(Modulus+5))
	}
}

func TestM31Pow5MatchesExp(t *testing.T) {
	a := NewM31(17)
	if a.Pow5() != a.Exp(5) {
		t.Fatalf("Pow5 mismatch: got %d want %d", a.Pow5(), a.Exp(5))
	}
}

func TestM31InvZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic inverting zero")
		}
	}()
	M31(0).Inv()
}

func TestQM31MulDistributesOverAdd(t *testing.T) {
	a := QM31{A0: NewM31(1), A1: NewM31(2), A2: NewM31(3), A3: NewM31(4)}
	b := QM31{A0: NewM31(5), A1: NewM31(6), A2: NewM31(7), A3: NewM31(8)}
	c := QM31{A0: NewM31(9), A1: NewM31(10), A2: NewM31(11), A3: NewM31(12)}

	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	if !lhs.Equal(rhs) {
		t.Fatalf("QM31 multiplication does not distribute: %+v != %+v", lhs, rhs)
	}
}

func TestQM31EmbeddingPreservesMul(t *testing.T) {
	a := QM31FromM31(NewM31(6))
	b := QM31FromM31(NewM31(7))
	got := a.Mul(b)
	want := QM31FromM31(NewM31(42))
	if !got.Equal(want) {
		t.Fatalf("embedded multiplication mismatch: got %+v want %+v", got, want)
	}
}
