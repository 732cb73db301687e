// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace synthesizes the witness columns the composite component's
// EvaluateOnDomain reads from, for a concrete set of burn inputs (§5).
package trace

import (
	"github.com/worm-privacy/proof-of-burn/components"
	"github.com/worm-privacy/proof-of-burn/field"
)

// Witness is the subset of pob.BurnInputs the trace synthesizer consumes.
// BurnKey/Receiver/Fee seed the AIR permutations (burn-address, nullifier,
// proof-of-work); MPT and Commitment carry the off-circuit witness records
// the MPT-inclusion and public-commitment components check directly (see
// components.MPTInclusion.Verify and components.ComputeCommitment) — nil
// when the caller has no witness to attach, which EvaluateOnDomain treats
// as that component's row failing.
type Witness struct {
	BurnKey  [32]byte
	Receiver [20]byte
	Fee      uint64

	MPT        *components.Witness
	Commitment *components.CommitmentWitness
}

// seedState4 deterministically maps the burn-address domain inputs into a
// 4-limb M31 state, each limb reduced via field.FromBytesLE: limbs 0-2 from
// burn_key bytes 0-23, limb 3 from prefix || receiver bytes 0-6. Burn-key
// bytes 24-31, receiver bytes 7-19 and the fee do not enter the state. This
// is the AIR permutation's own input encoding — distinct from, and not
// algebraically equal to, the over-BN254 Poseidon4 that
// components.DeriveAddress computes; the
// two are independent layers by design (SPEC_FULL.md §9), so this function
// only needs to be a deterministic, collision-resistant-enough encoding for
// the AIR's internal round-consistency constraints to have something to
// operate on.
func seedState4(prefix byte, burnKey [32]byte, receiver [20]byte, fee uint64) [4]field.M31 {
	var buf [32]byte
	buf[0] = prefix
	copy(buf[1:21], receiver[:])
	for i := 0; i < 8; i++ {
		buf[24+i] = byte(fee >> (56 - 8*i))
	}
	var state [4]field.M31
	state[0] = field.FromBytesLE(burnKey[0:8])
	state[1] = field.FromBytesLE(burnKey[8:16])
	state[2] = field.FromBytesLE(burnKey[16:24])
	state[3] = field.FromBytesLE(buf[:8])
	return state
}

// BurnAddressTrace lays out the full burn-address component trace for one
// row: the seeded initial state, each round's (Sbox, MDS) output pair, and a
// binding column holding the same value the component's own final-round
// first limb will recompute — recording it explicitly keeps the trace
// self-describing and lets EvaluateOnDomain's binding constraint catch a
// corrupted or truncated trace.
func BurnAddressTrace(w Witness) components.Trace {
	cols := 4 + 2*components.BurnAddressRounds + 1
	columns := make([][]field.M31, cols)
	for i := range columns {
		columns[i] = make([]field.M31, 1)
	}

	state := seedState4(0xb1, w.BurnKey, w.Receiver, w.Fee)
	for i := 0; i < 4; i++ {
		columns[i][0] = state[i]
	}

	col := 4
	for r := 0; r < components.BurnAddressRounds; r++ {
		sboxed, next := roundBurnAddress(state)
		for i := 0; i < 4; i++ {
			columns[col][0] = sboxed[i]
			columns[col+1][0] = next[i]
			col += 2
		}
		state = next
	}
	columns[col][0] = state[0]

	return components.Trace{Columns: columns}
}

// roundBurnAddress exposes the burn-address round function's two stages so
// the synthesizer can record both the Sbox and the MDS-mixed outputs,
// matching the columns BurnAddress.EvaluateOnDomain re-derives.
func roundBurnAddress(state [4]field.M31) (sboxed [4]field.M31, next [4]field.M31) {
	for i, s := range state {
		sboxed[i] = s.Pow5()
	}
	mds := [4][4]field.M31{
		{field.NewM31(2), field.NewM31(3), field.NewM31(1), field.NewM31(1)},
		{field.NewM31(1), field.NewM31(2), field.NewM31(3), field.NewM31(1)},
		{field.NewM31(1), field.NewM31(1), field.NewM31(2), field.NewM31(3)},
		{field.NewM31(3), field.NewM31(1), field.NewM31(1), field.NewM31(2)},
	}
	for i := 0; i < 4; i++ {
		var acc field.M31
		for j := 0; j < 4; j++ {
			acc = acc.Add(mds[i][j].Mul(sboxed[j]))
		}
		next[i] = acc
	}
	return sboxed, next
}

// seedState2 is the nullifier component's 2-limb analogue of seedState4.
func seedState2(burnKey [32]byte) [2]field.M31 {
	return [2]field.M31{field.FromBytesLE(burnKey[0:8]), field.FromBytesLE(burnKey[8:16])}
}

// NullifierTrace lays out the nullifier component trace for one row,
// mirroring BurnAddressTrace over the 2-lane state and NullifierRounds.
func NullifierTrace(burnKey [32]byte) components.Trace {
	cols := 2 + 2*components.NullifierRounds + 1
	columns := make([][]field.M31, cols)
	for i := range columns {
		columns[i] = make([]field.M31, 1)
	}

	state := seedState2(burnKey)
	for i := 0; i < 2; i++ {
		columns[i][0] = state[i]
	}

	mds := [2][2]field.M31{
		{field.NewM31(2), field.NewM31(1)},
		{field.NewM31(1), field.NewM31(3)},
	}
	col := 2
	for r := 0; r < components.NullifierRounds; r++ {
		var sboxed [2]field.M31
		for i, s := range state {
			sboxed[i] = s.Pow5()
		}
		var next [2]field.M31
		for i := 0; i < 2; i++ {
			var acc field.M31
			for j := 0; j < 2; j++ {
				acc = acc.Add(mds[i][j].Mul(sboxed[j]))
			}
			next[i] = acc
		}
		for i := 0; i < 2; i++ {
			columns[col][0] = sboxed[i]
			columns[col+1][0] = next[i]
			col += 2
		}
		state = next
	}
	columns[col][0] = state[0]

	return components.Trace{Columns: columns}
}

// Synthesize builds the full composite trace (burn-address and nullifier
// sub-traces concatenated; MPT-inclusion, proof-of-work, and
// public-commitment contribute no per-row algebraic columns, instead
// reading w.MPT/the PoW triple/w.Commitment directly in EvaluateOnDomain,
// per §4.2-§4.5), one row per proof instance — this system proves exactly
// one burn per call, so the domain size is always 1.
func Synthesize(w Witness) components.Trace {
	addr := BurnAddressTrace(w)
	null := NullifierTrace(w.BurnKey)
	cols := append(append([][]field.M31{}, addr.Columns...), null.Columns...)
	return components.Trace{
		Columns:           cols,
		MPTWitness:        w.MPT,
		PoWWitness:        &components.PoWWitness{BurnKey: w.BurnKey, Receiver: w.Receiver, Fee: w.Fee},
		CommitmentWitness: w.Commitment,
	}
}
