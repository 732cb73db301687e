// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashprim

import "github.com/luxfi/geth/crypto"

// Keccak256 hashes the concatenation of its arguments, matching
// go-ethereum's variadic Keccak256 convention used throughout luxfi/geth.
func Keccak256(data ...[]byte) [32]byte {
	var out [32]byte
	copy(out[:], crypto.Keccak256(data...))
	return out
}

// WormBurnSuffix is the fixed domain-separation suffix appended to the
// proof-of-work preimage, named for the protocol this system implements.
var WormBurnSuffix = []byte("WormBurn")
