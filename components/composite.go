// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package components

import "github.com/worm-privacy/proof-of-burn/field"

// Composite implements §4.6: the aggregate AIR over all five components,
// declared in order §4.1 -> §4.5 (burn-address, MPT-inclusion, proof-of-work,
// nullifier, public-commitment). Its constraint count is the sum of its
// children's; its max constraint degree is the max across children.
type Composite struct {
	Children []Component
}

var _ Component = Composite{}

// NewComposite builds the standard five-component composite for a given
// configuration's L_max and effective PoW zero-byte floor.
func NewComposite(maxNumLayers int, effectiveZeroBytes int) Composite {
	return Composite{Children: []Component{
		BurnAddress{},
		MPTInclusion{MaxNumLayers: maxNumLayers},
		ProofOfWork{EffectiveZeroBytes: effectiveZeroBytes},
		Nullifier{},
		PublicCommitment{},
	}}
}

func (c Composite) NumConstraints() int {
	total := 0
	for _, child := range c.Children {
		total += child.NumConstraints()
	}
	return total
}

func (c Composite) MaxConstraintLogDegree() uint32 {
	var max uint32
	for _, child := range c.Children {
		if d := child.MaxConstraintLogDegree(); d > max {
			max = d
		}
	}
	return max
}

func (c Composite) MaskPoints(point field.Point) [][]field.Point {
	var out [][]field.Point
	for _, child := range c.Children {
		out = append(out, child.MaskPoints(point)...)
	}
	return out
}

// EvaluateAtPoint dispatches contiguous slices of mask to each child in
// declared order, matching MaskPoints' concatenation.
func (c Composite) EvaluateAtPoint(mask [][]field.QM31, acc *PointAccumulator) {
	offset := 0
	for _, child := range c.Children {
		n := child.NumConstraints()
		child.EvaluateAtPoint(mask[offset:offset+n], acc)
		offset += n
	}
}

func (c Composite) EvaluateOnDomain(trace Trace, acc *DomainAccumulator) {
	for _, child := range c.Children {
		child.EvaluateOnDomain(trace, acc)
	}
}
