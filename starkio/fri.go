// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package starkio

import (
	"fmt"

	"github.com/worm-privacy/proof-of-burn/field"
)

// FRILayer is one committed layer of the FRI folding protocol: the Merkle
// root of that layer's evaluations and its (padded) column length, needed
// to replay the verifier's Fiat-Shamir query-index sampling without the
// evaluations themselves (not serialized; only the root and the queried
// leaves travel in the proof).
type FRILayer struct {
	Root [32]byte
	Size int
}

// FRIProof bundles the layer commitments, the last folded layer's values
// (at most four), and the per-query response data, mirroring the
// teacher's FRICommitment/FRIQueryResponse shapes generalized from
// Goldilocks uint64 values to QM31 extension-field values.
type FRIProof struct {
	Layers    []FRILayer
	FinalPoly []field.QM31
	Queries   []FRIQueryResponse
}

// numFRIQueries is the number of query indices Prove samples and Verify
// replays per proof whenever folding produces at least one layer. A fixed
// small constant rather than one derived from the configured security
// level.
const numFRIQueries = 3

// FRIQueryLayerPair is the (even,odd) sibling pair read from one folded
// layer at a single query index, plus the Merkle path climbing from their
// parent hash up to that layer's committed root.
type FRIQueryLayerPair struct {
	EvenValue  field.QM31
	OddValue   field.QM31
	ParentPath [][32]byte
}

// FRIQueryResponse answers one query index across every folded layer: the
// leaf-pair index at layer 0, and for each layer the sibling pair that
// folds into the next layer's corresponding slot (or, for the last layer,
// into FinalPoly).
type FRIQueryResponse struct {
	Index uint64
	Pairs []FRIQueryLayerPair
}

// FoldLayer performs one FRI folding step: g[i] = even + alpha*odd,
// halving the evaluation domain, matching the teacher's FoldLayer.
func FoldLayer(values []field.QM31, alpha field.QM31) []field.QM31 {
	n := len(values) / 2
	result := make([]field.QM31, n)
	for i := 0; i < n; i++ {
		even := values[2*i]
		odd := values[2*i+1]
		result[i] = even.Add(alpha.Mul(odd))
	}
	return result
}

// VerifyQuery checks a single FRI query end to end: at each layer, the
// revealed (even,odd) pair's parent hash climbs to that layer's committed
// root, and the pair folds under alphas[layer] into either the
// corresponding slot of the next layer's pair or, at the last layer, into
// FinalPoly — the chain FoldLayer's zero-propagation soundness argument
// depends on actually being checked, rather than left as a per-leaf Merkle
// check with no fold-consistency constraint.
func VerifyQuery(proof FRIProof, query FRIQueryResponse, alphas []field.QM31) error {
	if len(query.Pairs) != len(proof.Layers) {
		return fmt.Errorf("starkio: FRI query has %d layer pairs, want %d", len(query.Pairs), len(proof.Layers))
	}
	if len(alphas) != len(proof.Layers) {
		return fmt.Errorf("starkio: FRI query needs %d fold challenges, got %d", len(proof.Layers), len(alphas))
	}

	idx := query.Index
	for i, pair := range query.Pairs {
		pairIdx := idx / 2
		parentHash := hashPair(hashLeaf(pair.EvenValue), hashLeaf(pair.OddValue))
		if err := VerifyPathAbove(proof.Layers[i].Root, parentHash, int(pairIdx), pair.ParentPath); err != nil {
			return fmt.Errorf("starkio: FRI layer %d: %w", i, err)
		}

		folded := pair.EvenValue.Add(alphas[i].Mul(pair.OddValue))
		if i+1 < len(query.Pairs) {
			next := query.Pairs[i+1]
			nextVal := next.EvenValue
			if pairIdx%2 != 0 {
				nextVal = next.OddValue
			}
			if !folded.Equal(nextVal) {
				return fmt.Errorf("starkio: FRI layer %d does not fold consistently into layer %d", i, i+1)
			}
		} else {
			if int(pairIdx) >= len(proof.FinalPoly) || !folded.Equal(proof.FinalPoly[pairIdx]) {
				return fmt.Errorf("starkio: FRI layer %d does not fold consistently into the final polynomial", i)
			}
		}
		idx = pairIdx
	}
	return nil
}

// VerifyFinalPoly checks that the final layer is present (non-empty). It
// performs no degree check. The final layer is tiny (folding stops at four
// or fewer values), so this system carries its values directly in the
// proof rather than re-deriving them from queries, matching stwo's own
// "send the last layer in the clear" termination rule.
func VerifyFinalPoly(finalPoly []field.QM31) error {
	if len(finalPoly) == 0 {
		return fmt.Errorf("starkio: FRI final polynomial is empty")
	}
	return nil
}
