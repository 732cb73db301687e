// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pob

import "github.com/holiman/uint256"

// BurnInputs is the caller-supplied, immutable-during-proving witness for
// one burn, matching §3's Data Model entity.
type BurnInputs struct {
	BurnKey               [32]byte
	Balance               uint64
	Fee                   uint64
	Spend                 uint64
	Receiver              [20]byte
	ExpectedPathNibbles   [64]byte
	Layers                [][]byte
	LayerLens             []int
	NumLayers             int
	NumLeafAddressNibbles int
	StateRoot             [32]byte
	BlockHeader           []byte
	ByteSecurityRelax     uint8
}

// Validate enforces the Data Model invariants that depend only on
// BurnInputs and a ProofConfig: fee+spend <= balance <= max_balance;
// num_layers in [1, L_max]; layer_lens[i] <= len(layers[i]); no zero-length
// layer in [0, num_layers); num_leaf_address_nibbles in
// [min_leaf_nibbles, 64].
func (b BurnInputs) Validate(cfg ProofConfig) error {
	// Conservation is checked in 256-bit arithmetic, not native uint64, so
	// that a future widening of Balance/Fee/Spend past 64 bits (this
	// protocol's amounts are account balances, which uint256.Int exists
	// specifically to carry without silent wraparound) never turns an
	// overflowed sum into a false negative.
	fee := uint256.NewInt(b.Fee)
	spend := uint256.NewInt(b.Spend)
	balance := uint256.NewInt(b.Balance)
	total := new(uint256.Int).Add(fee, spend)
	if total.Cmp(balance) > 0 {
		return newErr(InvalidInput, "fee + spend exceeds balance")
	}
	if b.Balance > cfg.MaxBalance {
		return newErr(InvalidInput, "balance exceeds configured maximum")
	}
	if b.NumLayers < 1 || b.NumLayers > cfg.MaxNumLayers {
		return newErr(InvalidInput, "num_layers out of range [1, max_num_layers]")
	}
	if len(b.LayerLens) < b.NumLayers || len(b.Layers) < b.NumLayers {
		return newErr(InvalidInput, "insufficient layers or layer_lens entries")
	}
	for i := 0; i < b.NumLayers; i++ {
		if b.LayerLens[i] <= 0 || b.LayerLens[i] > len(b.Layers[i]) {
			return newErr(InvalidInput, "zero-length or out-of-bounds layer")
		}
	}
	if b.NumLeafAddressNibbles < cfg.MinLeafAddressNibbles || b.NumLeafAddressNibbles > 64 {
		return newErr(InvalidInput, "num_leaf_address_nibbles out of range")
	}
	return nil
}

// ProofMetadata carries the non-secret context a verifier needs alongside
// the raw proof bytes: the config it was produced under and the block
// number it attests inclusion at.
type ProofMetadata struct {
	SecurityLevel uint32
	BlockNumber   uint64
}

// BurnOutput is what Prove returns: the serialized proof, the 32-byte
// public commitment, and its metadata, matching §3's Data Model entity.
type BurnOutput struct {
	ProofBytes []byte
	Commitment [32]byte
	Metadata   ProofMetadata
}
