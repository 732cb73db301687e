// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package components

import "testing"

func TestMPTInclusionNumConstraints(t *testing.T) {
	m := MPTInclusion{MaxNumLayers: 8}
	want := 8 + 8*8 + 7 + 16
	if got := m.NumConstraints(); got != want {
		t.Fatalf("NumConstraints() = %d, want %d", got, want)
	}
}

func TestMPTInclusionMaxConstraintLogDegree(t *testing.T) {
	m := MPTInclusion{MaxNumLayers: 8}
	if got := m.MaxConstraintLogDegree(); got != 12 {
		t.Fatalf("MaxConstraintLogDegree() = %d, want 12", got)
	}
}
