// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package components implements the five constraint components and their
// composite aggregation described in §4 — each declares a constraint count,
// a maximum constraint degree, a trace-column layout, and two evaluators
// (point and domain), expressed as the capability-set interface the source's
// dynamic-dispatch-over-components pattern is re-architected into (§9).
package components

import "github.com/worm-privacy/proof-of-burn/field"

// Component is the capability set every constraint component and the
// composite expose to the generic prover/verifier. A composite forwards
// each capability by concatenating its children's.
type Component interface {
	// NumConstraints returns the number of constraint columns this
	// component contributes to the trace.
	NumConstraints() int
	// MaxConstraintLogDegree is the log2 of the maximum degree bound any
	// constraint in this component requires.
	MaxConstraintLogDegree() uint32
	// MaskPoints returns, for each constraint column, the set of domain
	// points it must be sampled at relative to the query point. Every
	// component in this system samples each column at the query point
	// only (§4.6).
	MaskPoints(point field.Point) [][]field.Point
	// EvaluateAtPoint evaluates this component's constraint quotients at
	// a single out-of-domain point, given the sampled mask values (one
	// QM31 per column), accumulating into acc with the supplied random
	// coefficients.
	EvaluateAtPoint(mask [][]field.QM31, acc *PointAccumulator)
	// EvaluateOnDomain evaluates this component's constraints across an
	// entire trace (one row per circle-domain point), accumulating into
	// acc. Used by the prover to build the composition polynomial.
	EvaluateOnDomain(trace Trace, acc *DomainAccumulator)
}

// Trace is the set of witness columns a component reads from, laid out in
// bit-reversed circle-domain order (§3, §5).
//
// MPTWitness, PoWWitness, and CommitmentWitness carry the off-circuit
// witness data MPTInclusion, ProofOfWork, and PublicCommitment check
// directly rather than through trace columns — their constraint counts
// model a single aggregate hash-binding gate rather than decomposing
// Keccak/RLP into per-byte trace columns (see DESIGN.md). Only the prover
// populates these, since they carry the secret burn_key; EvaluateOnDomain
// is never invoked again with a live Trace once a proof exists (the
// verifier checks the constraint column's binding commitment and folded
// FRI output instead, see starkio.Verify), so the secret data these fields
// hold never needs to cross into the verifier. A nil witness is treated as
// a failed row rather than silently skipped.
type Trace struct {
	Columns [][]field.M31

	MPTWitness        *Witness
	PoWWitness        *PoWWitness
	CommitmentWitness *CommitmentWitness
}

// Row returns the value of column c at row r, or zero if out of range —
// components intentionally tolerate short columns so the composite can
// share one trace across components of different column counts during
// construction; the trace synthesizer is responsible for producing
// correctly sized columns before commitment.
func (t Trace) Row(c, r int) field.M31 {
	if c < 0 || c >= len(t.Columns) {
		return 0
	}
	col := t.Columns[c]
	if r < 0 || r >= len(col) {
		return 0
	}
	return col[r]
}

// PointAccumulator folds per-constraint quotient evaluations into a single
// QM31 using successive powers of a random coefficient: the first value
// accumulated is scaled by 1, the next by RandomCoeff, then RandomCoeff^2,
// and so on.
type PointAccumulator struct {
	RandomCoeff field.QM31
	power       field.QM31
	total       field.QM31
	started     bool
}

// NewPointAccumulator creates an accumulator seeded with the constraint
// mixing challenge drawn from the Fiat-Shamir transcript.
func NewPointAccumulator(randomCoeff field.QM31) *PointAccumulator {
	return &PointAccumulator{RandomCoeff: randomCoeff, power: field.QM31FromM31(field.NewM31(1))}
}

// Accumulate folds in one constraint's evaluation.
func (a *PointAccumulator) Accumulate(v field.QM31) {
	a.total = a.total.Add(v.Mul(a.power))
	a.power = a.power.Mul(a.RandomCoeff)
}

// Total returns the folded value.
func (a *PointAccumulator) Total() field.QM31 {
	return a.total
}

// DomainAccumulator folds per-row, per-constraint evaluations across an
// entire domain into one output column, the domain-side analogue of
// PointAccumulator.
type DomainAccumulator struct {
	RandomCoeff field.QM31
	Column      []field.QM31
}

// NewDomainAccumulator allocates a zeroed accumulator column of the given
// domain size.
func NewDomainAccumulator(randomCoeff field.QM31, domainSize int) *DomainAccumulator {
	return &DomainAccumulator{RandomCoeff: randomCoeff, Column: make([]field.QM31, domainSize)}
}

// AccumulateRow adds constraintValue into row as given. RandomCoeff is not
// applied here, and the components in this package pass unscaled values.
func (a *DomainAccumulator) AccumulateRow(row int, constraintValue field.QM31) {
	if row < 0 || row >= len(a.Column) {
		return
	}
	a.Column[row] = a.Column[row].Add(constraintValue)
}
