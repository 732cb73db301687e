// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pob

import "testing"

func TestBurnInputsValidateAcceptsExactConservation(t *testing.T) {
	cfg := DefaultConfig()
	in := BurnInputs{
		Balance:               100,
		Fee:                   60,
		Spend:                 40,
		NumLayers:             1,
		Layers:                [][]byte{{1}},
		LayerLens:             []int{1},
		NumLeafAddressNibbles: 64,
	}
	if err := in.Validate(cfg); err != nil {
		t.Fatalf("Validate rejected exact conservation: %v", err)
	}
}

func TestBurnInputsValidateRejectsOverrun(t *testing.T) {
	cfg := DefaultConfig()
	in := BurnInputs{
		Balance:               100,
		Fee:                   60,
		Spend:                 41,
		NumLayers:             1,
		Layers:                [][]byte{{1}},
		LayerLens:             []int{1},
		NumLeafAddressNibbles: 64,
	}
	if err := in.Validate(cfg); err == nil {
		t.Fatalf("expected Validate to reject fee+spend > balance")
	}
}

func TestBurnInputsValidateRejectsZeroLengthLayer(t *testing.T) {
	cfg := DefaultConfig()
	in := BurnInputs{
		Balance:               100,
		NumLayers:             1,
		Layers:                [][]byte{{}},
		LayerLens:             []int{0},
		NumLeafAddressNibbles: 64,
	}
	if err := in.Validate(cfg); err == nil {
		t.Fatalf("expected Validate to reject a zero-length layer")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should be valid: %v", err)
	}
}

func TestConfigValidateRejectsOversizedAmountBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AmountBytes = 32
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject amount_bytes > 31")
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	err := newErr(ProofOfWorkFailed, "digest too weak")
	sentinel := newErr(ProofOfWorkFailed, "")
	if !err.Is(sentinel) {
		t.Fatalf("expected errors with the same Kind to match via Is")
	}
}
