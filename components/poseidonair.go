// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package components

import "github.com/worm-privacy/proof-of-burn/field"

// mds4 is the fixed 4x4 maximum-distance-separable M31 matrix used by the
// burn-address component's round function (§4.1). Small-coefficient MDS
// matrices of this shape are standard for Poseidon-style permutations; the
// coefficients here are the canonical 1/2/3-weighted Cauchy-style matrix
// used across the pack's Poseidon2-flavoured components.
var mds4 = [4][4]field.M31{
	{field.NewM31(2), field.NewM31(3), field.NewM31(1), field.NewM31(1)},
	{field.NewM31(1), field.NewM31(2), field.NewM31(3), field.NewM31(1)},
	{field.NewM31(1), field.NewM31(1), field.NewM31(2), field.NewM31(3)},
	{field.NewM31(3), field.NewM31(1), field.NewM31(1), field.NewM31(2)},
}

// mds2 is the fixed 2x2 MDS matrix used by the nullifier component (§4.4).
var mds2 = [2][2]field.M31{
	{field.NewM31(2), field.NewM31(1)},
	{field.NewM31(1), field.NewM31(3)},
}

// sboxRound4 applies the x^5 Sbox to every limb, then the 4x4 MDS mix,
// returning the next round's state. This is the AIR's own M31-domain
// permutation shape (§4.1) — distinct from the canonical over-prime-field
// Poseidon in package hashprim that computes the actual burn address bytes.
// The output-binding constraint in BurnAddress.EvaluateOnDomain checks the
// final state of this permutation only; no constraint ties it to the
// hashprim Poseidon output.
func sboxRound4(state [4]field.M31) [4]field.M31 {
	var sboxed [4]field.M31
	for i, s := range state {
		sboxed[i] = s.Pow5()
	}
	var next [4]field.M31
	for i := 0; i < 4; i++ {
		var acc field.M31
		for j := 0; j < 4; j++ {
			acc = acc.Add(mds4[i][j].Mul(sboxed[j]))
		}
		next[i] = acc
	}
	return next
}

// sboxRound2 is the nullifier component's 2x2 analogue of sboxRound4.
func sboxRound2(state [2]field.M31) [2]field.M31 {
	var sboxed [2]field.M31
	for i, s := range state {
		sboxed[i] = s.Pow5()
	}
	var next [2]field.M31
	for i := 0; i < 2; i++ {
		var acc field.M31
		for j := 0; j < 2; j++ {
			acc = acc.Add(mds2[i][j].Mul(sboxed[j]))
		}
		next[i] = acc
	}
	return next
}
