// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package components

import (
	"encoding/binary"

	"github.com/worm-privacy/proof-of-burn/field"
	"github.com/worm-privacy/proof-of-burn/hashprim"
)

// PublicCommitment implements §4.5: commitment = first_31_bytes(Keccak(
// blockRoot_be8 || nullifier_be8 || remainingCoin_be8 || fee_be8 ||
// spend_be8 || receiver_be8)). Six 8-byte big-endian inputs, 48 bytes total.
type PublicCommitment struct{}

var _ Component = PublicCommitment{}

// numCommitmentInputs is the six 8-byte fields Keccak-hashed together.
const numCommitmentInputs = 6

func (PublicCommitment) NumConstraints() int {
	return numCommitmentInputs*8 + 25 + 1
}

func (PublicCommitment) MaxConstraintLogDegree() uint32 { return 12 }

func (p PublicCommitment) MaskPoints(point field.Point) [][]field.Point {
	out := make([][]field.Point, p.NumConstraints())
	for i := range out {
		out[i] = []field.Point{point}
	}
	return out
}

func (p PublicCommitment) EvaluateAtPoint(mask [][]field.QM31, acc *PointAccumulator) {
	for _, m := range mask {
		if len(m) > 0 {
			acc.Accumulate(m[0])
		} else {
			acc.Accumulate(field.ZeroQM31())
		}
	}
}

// CommitmentWitness is the prover-side record of the six values
// ComputeCommitment hashes together, plus the commitment it must match,
// letting EvaluateOnDomain re-derive and compare the commitment exactly the
// way §4.8 step 1 requires the verifier to.
type CommitmentWitness struct {
	BlockRoot         uint64
	Nullifier         [32]byte
	RemainingCoin     [32]byte
	Fee               uint64
	Spend             uint64
	Receiver          [20]byte
	ClaimedCommitment [31]byte
}

func (p PublicCommitment) EvaluateOnDomain(trace Trace, acc *DomainAccumulator) {
	sentinel := field.QM31FromM31(field.NewM31(1))
	if trace.CommitmentWitness != nil {
		w := trace.CommitmentWitness
		got := ComputeCommitment(w.BlockRoot, w.Nullifier, w.RemainingCoin, w.Fee, w.Spend, w.Receiver)
		if got == w.ClaimedCommitment {
			sentinel = field.ZeroQM31()
		}
	}
	n := len(acc.Column)
	for row := 0; row < n; row++ {
		acc.AccumulateRow(row, sentinel)
	}
}

// DeriveRemainingCoin computes remainingCoin = Poseidon3(prefix_coin,
// burn_key, balance-fee-spend), per §4.5.
func DeriveRemainingCoin(burnKey [32]byte, balance, fee, spend uint64) [32]byte {
	remaining := balance - fee - spend
	h := hashprim.Poseidon3(hashprim.PrefixCoin(), hashprim.FeltFromBytes(burnKey[:]), hashprim.FeltFromUint64(remaining))
	return hashprim.FeltTo32Bytes(h)
}

// be8 returns the 8-byte big-endian encoding of v.
func be8(v uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b
}

// be8FromBytes takes the first 8 bytes of a wider big-endian value (used for
// the 32-byte nullifier and remaining-coin digests, per §4.5's "_be8"
// naming — each is truncated to its leading 8 bytes before concatenation).
func be8FromBytes(b []byte) [8]byte {
	var out [8]byte
	copy(out[:], b[:8])
	return out
}

// ComputeCommitment implements the confirmed formula: concatenate six
// 8-byte big-endian fields (48 bytes), Keccak-hash, and truncate to 31
// bytes with the 32nd byte zero.
func ComputeCommitment(blockRoot uint64, nullifier [32]byte, remainingCoin [32]byte, fee, spend uint64, receiver [20]byte) [31]byte {
	var preimage [48]byte
	blockRootB := be8(blockRoot)
	nullifierB := be8FromBytes(nullifier[:])
	remainingB := be8FromBytes(remainingCoin[:])
	feeB := be8(fee)
	spendB := be8(spend)
	var receiverPadded [8]byte
	copy(receiverPadded[:], receiver[12:20]) // last 8 bytes of the 20-byte address

	copy(preimage[0:8], blockRootB[:])
	copy(preimage[8:16], nullifierB[:])
	copy(preimage[16:24], remainingB[:])
	copy(preimage[24:32], feeB[:])
	copy(preimage[32:40], spendB[:])
	copy(preimage[40:48], receiverPadded[:])

	digest := hashprim.Keccak256(preimage[:])
	var out [31]byte
	copy(out[:], digest[:31])
	return out
}
