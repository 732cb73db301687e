// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package starkio implements the Fiat-Shamir transcript, Merkle commitment
// tree, FRI folding/query verification, and proof framing the generic STARK
// prover/verifier need, grounded on the teacher's zk/stark.go Transcript,
// FRIVerifier, and STARKProof shapes, upgraded from sha256 to blake3 per
// SPEC_FULL.md's domain-stack resolution.
package starkio

import (
	"encoding/binary"

	"github.com/worm-privacy/proof-of-burn/field"
	"github.com/zeebo/blake3"
)

// Transcript manages Fiat-Shamir challenges via a running blake3 state,
// mirroring the teacher's sha256-based Transcript.
type Transcript struct {
	state [32]byte
}

// NewTranscript seeds a transcript from a protocol label.
func NewTranscript(label string) *Transcript {
	sum := blake3.Sum256([]byte(label))
	return &Transcript{state: sum}
}

// Append mixes data into the transcript state.
func (t *Transcript) Append(data []byte) {
	buf := make([]byte, 0, len(t.state)+len(data))
	buf = append(buf, t.state[:]...)
	buf = append(buf, data...)
	t.state = blake3.Sum256(buf)
}

// ChallengeM31 draws a single M31 field element from the transcript.
func (t *Transcript) ChallengeM31() field.M31 {
	t.state = blake3.Sum256(t.state[:])
	v := binary.BigEndian.Uint64(t.state[:8])
	return field.NewM31FromU64(v)
}

// ChallengeQM31 draws a QM31 extension-field element by drawing four M31
// limbs in sequence.
func (t *Transcript) ChallengeQM31() field.QM31 {
	return field.QM31{
		A0: t.ChallengeM31(),
		A1: t.ChallengeM31(),
		A2: t.ChallengeM31(),
		A3: t.ChallengeM31(),
	}
}

// ChallengeIndex draws a query index in [0, domainSize).
func (t *Transcript) ChallengeIndex(domainSize uint64) uint64 {
	t.state = blake3.Sum256(t.state[:])
	v := binary.BigEndian.Uint64(t.state[:8])
	return v % domainSize
}
