// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package components

import (
	"testing"

	"github.com/worm-privacy/proof-of-burn/field"
)

func TestBurnAddressNumConstraints(t *testing.T) {
	b := BurnAddress{}
	if got, want := b.NumConstraints(), 21; got != want {
		t.Fatalf("NumConstraints() = %d, want %d", got, want)
	}
}

func TestDeriveAddressDeterministic(t *testing.T) {
	var key [32]byte
	key[0] = 7
	var receiver [20]byte
	receiver[0] = 9

	a1 := DeriveAddress(key, receiver, 100)
	a2 := DeriveAddress(key, receiver, 100)
	if a1 != a2 {
		t.Fatalf("DeriveAddress is not deterministic")
	}
}

func TestDeriveAddressSensitiveToFee(t *testing.T) {
	var key [32]byte
	var receiver [20]byte
	a1 := DeriveAddress(key, receiver, 1)
	a2 := DeriveAddress(key, receiver, 2)
	if a1 == a2 {
		t.Fatalf("DeriveAddress should differ when fee differs")
	}
}

func TestBurnAddressEvaluateOnDomainMatchesConsistentTrace(t *testing.T) {
	b := BurnAddress{}
	const rows = 1
	acc := NewDomainAccumulator(field.QM31FromM31(field.NewM31(7)), rows)

	cols := 4 + 2*BurnAddressRounds + 1
	columns := make([][]field.M31, cols)
	for i := range columns {
		columns[i] = make([]field.M31, rows)
	}
	state := [4]field.M31{field.NewM31(1), field.NewM31(2), field.NewM31(3), field.NewM31(4)}
	for i := 0; i < 4; i++ {
		columns[i][0] = state[i]
	}
	col := 4
	for r := 0; r < BurnAddressRounds; r++ {
		next := sboxRound4(state)
		for i := 0; i < 4; i++ {
			columns[col][0] = state[i].Pow5()
			columns[col+1][0] = next[i]
			col += 2
		}
		state = next
	}
	columns[col][0] = state[0] // matches the final state's first limb exactly

	b.EvaluateOnDomain(Trace{Columns: columns}, acc)
	if !acc.Column[0].IsZero() {
		t.Fatalf("expected zero accumulation for a fully consistent trace, got %+v", acc.Column[0])
	}
}

func TestBurnAddressEvaluateOnDomainDetectsTamperedRound(t *testing.T) {
	b := BurnAddress{}
	const rows = 1
	acc := NewDomainAccumulator(field.QM31FromM31(field.NewM31(7)), rows)

	cols := 4 + 2*BurnAddressRounds + 1
	columns := make([][]field.M31, cols)
	for i := range columns {
		columns[i] = make([]field.M31, rows)
	}
	state := [4]field.M31{field.NewM31(1), field.NewM31(2), field.NewM31(3), field.NewM31(4)}
	for i := 0; i < 4; i++ {
		columns[i][0] = state[i]
	}
	col := 4
	for r := 0; r < BurnAddressRounds; r++ {
		next := sboxRound4(state)
		for i := 0; i < 4; i++ {
			columns[col][0] = state[i].Pow5()
			columns[col+1][0] = next[i]
			col += 2
		}
		state = next
	}
	columns[4][0] = columns[4][0].Add(field.NewM31(1)) // tamper the first round's recorded Sbox value
	columns[col][0] = state[0]

	b.EvaluateOnDomain(Trace{Columns: columns}, acc)
	if acc.Column[0].IsZero() {
		t.Fatalf("expected nonzero accumulation for a tampered trace")
	}
}
