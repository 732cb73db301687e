// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ethtrie decodes Ethereum block headers and walks Merkle Patricia
// Trie inclusion proofs, using the go-ethereum-compatible RLP codec from
// luxfi/geth the same way the teacher's precompile layer uses luxfi/geth for
// every Ethereum-shaped primitive.
package ethtrie

import (
	"fmt"

	"github.com/luxfi/geth/rlp"
)

// DecodeList splits an RLP-encoded list into its raw item byte strings,
// without descending into them — every MPT node and the block header are
// decoded this way so each item can then be matched against the node-shape
// rules in §4.2/§6 individually.
func DecodeList(data []byte) ([][]byte, error) {
	var items []rlp.RawValue
	if err := rlp.DecodeBytes(data, &items); err != nil {
		return nil, fmt.Errorf("ethtrie: not an RLP list: %w", err)
	}
	out := make([][]byte, len(items))
	for i, it := range items {
		out[i] = []byte(it)
	}
	return out, nil
}

// DecodeString decodes a single RLP string item (not a list) into raw bytes.
func DecodeString(data []byte) ([]byte, error) {
	var s []byte
	if err := rlp.DecodeBytes(data, &s); err != nil {
		return nil, fmt.Errorf("ethtrie: not an RLP string: %w", err)
	}
	return s, nil
}

// EncodeList RLP-encodes a list of already-encoded items, used by tests to
// construct synthetic account leaves and branch/extension nodes.
func EncodeList(items [][]byte) ([]byte, error) {
	raws := make([]rlp.RawValue, len(items))
	for i, it := range items {
		raws[i] = rlp.RawValue(it)
	}
	return rlp.EncodeToBytes(raws)
}

// EncodeBytes RLP-encodes a single byte string.
func EncodeBytes(b []byte) ([]byte, error) {
	return rlp.EncodeToBytes(b)
}

// EncodeUint RLP-encodes an unsigned integer using Ethereum's canonical
// minimal big-endian scalar encoding (no leading zero bytes, zero itself
// encodes to the empty string).
func EncodeUint(v uint64) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}
