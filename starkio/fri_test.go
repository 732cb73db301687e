// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package starkio

import (
	"testing"

	"github.com/worm-privacy/proof-of-burn/field"
)

func TestFoldLayerHalvesLength(t *testing.T) {
	values := sampleColumn(8)
	alpha := field.QM31FromM31(field.NewM31(3))
	folded := FoldLayer(values, alpha)
	if len(folded) != 4 {
		t.Fatalf("FoldLayer produced %d values, want 4", len(folded))
	}
}

func TestFoldLayerMatchesDefinition(t *testing.T) {
	values := sampleColumn(2)
	alpha := field.QM31FromM31(field.NewM31(5))
	folded := FoldLayer(values, alpha)
	want := values[0].Add(alpha.Mul(values[1]))
	if !folded[0].Equal(want) {
		t.Fatalf("FoldLayer[0] = %+v, want %+v", folded[0], want)
	}
}

func TestVerifyFinalPolyRejectsEmpty(t *testing.T) {
	if err := VerifyFinalPoly(nil); err == nil {
		t.Fatalf("expected VerifyFinalPoly to reject an empty polynomial")
	}
}
