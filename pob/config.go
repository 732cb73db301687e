// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pob

// ProofConfig is a prover/verifier instance's immutable configuration,
// matching §3's Data Model entity.
type ProofConfig struct {
	SecurityLevel         uint32
	EnableCompression     bool
	MaxBalance            uint64
	PowMinimumZeroBytes   int
	MaxNumLayers          int
	MaxNodeBlocks         int
	MinLeafAddressNibbles int
	AmountBytes           int
}

// DefaultConfig returns the original source's confirmed test-derived
// defaults: security_level=80, amount_bytes=31, pow_minimum_zero_bytes=2.
func DefaultConfig() ProofConfig {
	return ProofConfig{
		SecurityLevel:         80,
		EnableCompression:     false,
		MaxBalance:            1 << 62,
		PowMinimumZeroBytes:   2,
		MaxNumLayers:          8,
		MaxNodeBlocks:         532,
		MinLeafAddressNibbles: 8,
		AmountBytes:           31,
	}
}

// Validate enforces the Data Model's config-level invariants: amount width
// bounded by the field's usable byte count, and a positive, sane layer
// budget.
func (c ProofConfig) Validate() error {
	if c.AmountBytes <= 0 || c.AmountBytes > 31 {
		return newErr(InvalidInput, "amount_bytes must be in (0, 31]")
	}
	if c.PowMinimumZeroBytes < 0 || c.PowMinimumZeroBytes > 8 {
		return newErr(InvalidInput, "pow_minimum_zero_bytes must be in [0, 8]")
	}
	if c.MaxNumLayers <= 0 {
		return newErr(InvalidInput, "max_num_layers must be positive")
	}
	if c.MinLeafAddressNibbles < 0 || c.MinLeafAddressNibbles > 64 {
		return newErr(InvalidInput, "min_leaf_address_nibbles must be in [0, 64]")
	}
	return nil
}
