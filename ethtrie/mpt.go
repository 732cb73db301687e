// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ethtrie

import (
	"fmt"

	"github.com/worm-privacy/proof-of-burn/hashprim"
)

// WalkResult carries the account balance recovered from the leaf at the end
// of a successful walk.
type WalkResult struct {
	Balance uint64
}

// DecodeCompact decodes an HP (hex-prefix / compact) encoded path into
// nibbles, per §6's "high nibble of first byte encodes (leaf?,odd-length?)"
// rule. The leaf/extension flag itself is carried in the caller's node-shape
// dispatch (list length 2), so this only returns the path nibbles.
func DecodeCompact(encoded []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	first := encoded[0]
	flag := first >> 4
	if flag > 3 {
		return nil, fmt.Errorf("ethtrie: invalid HP flag nibble %d", flag)
	}
	oddLength := flag&0x1 != 0

	nibbles := make([]byte, 0, 2*len(encoded))
	if oddLength {
		nibbles = append(nibbles, first&0x0f)
	}
	for _, b := range encoded[1:] {
		nibbles = append(nibbles, b>>4, b&0x0f)
	}
	return nibbles, nil
}

// addressNibbles expands a 32-byte Keccak digest into 64 nibbles, high
// nibble first per byte.
func addressNibbles(hash [32]byte) [64]byte {
	var nibbles [64]byte
	for i, b := range hash {
		nibbles[2*i] = b >> 4
		nibbles[2*i+1] = b & 0x0f
	}
	return nibbles
}

// AddressHashNibbles computes the 64 nibbles of Keccak(address) walked by
// the MPT inclusion proof.
func AddressHashNibbles(address [20]byte) [64]byte {
	return addressNibbles(hashprim.Keccak256(address[:]))
}

// VerifyInclusion walks layers[0:numLayers) as an MPT inclusion path from
// stateRoot to an account leaf, per §4.2. It returns the leaf account's
// balance on success. Any structural or value deviation is rejected with a
// descriptive error, matching the "MPT strictness" testable property: no
// byte of any layer may be altered, and layers may not be reordered, without
// the walk failing.
func VerifyInclusion(
	layers [][]byte,
	layerLens []int,
	numLayers int,
	stateRoot [32]byte,
	addressHashNibbles [64]byte,
	numLeafAddressNibbles int,
	minLeafAddressNibbles int,
	claimedBalance uint64,
) (WalkResult, error) {
	if numLayers <= 0 || numLayers > len(layers) {
		return WalkResult{}, fmt.Errorf("ethtrie: invalid number of layers: %d", numLayers)
	}
	if len(layerLens) < numLayers {
		return WalkResult{}, fmt.Errorf("ethtrie: insufficient layer length data")
	}
	if numLeafAddressNibbles < minLeafAddressNibbles || numLeafAddressNibbles > 64 {
		return WalkResult{}, fmt.Errorf("ethtrie: leaf address nibble count %d out of range [%d,64]", numLeafAddressNibbles, minLeafAddressNibbles)
	}

	currentHash := stateRoot
	nibbleOffset := 0

	for i := 0; i < numLayers; i++ {
		layer := layers[i]
		n := layerLens[i]
		if n > len(layer) || n == 0 {
			return WalkResult{}, fmt.Errorf("ethtrie: layer %d has invalid length %d", i, n)
		}
		layerData := layer[:n]

		actualHash := hashprim.Keccak256(layerData)
		if actualHash != currentHash {
			return WalkResult{}, fmt.Errorf("ethtrie: layer %d hash mismatch", i)
		}

		items, err := DecodeList(layerData)
		if err != nil {
			return WalkResult{}, fmt.Errorf("ethtrie: layer %d: %w", i, err)
		}
		if err := validateNodeShape(items); err != nil {
			return WalkResult{}, fmt.Errorf("ethtrie: layer %d: %w", i, err)
		}

		final := i == numLayers-1
		switch len(items) {
		case 2:
			keyNibbles, err := DecodeCompact(items[0])
			if err != nil {
				return WalkResult{}, fmt.Errorf("ethtrie: layer %d: %w", i, err)
			}
			if final {
				expected := addressHashNibbles[nibbleOffset:numLeafAddressNibbles]
				if !nibblesEqual(keyNibbles, expected) {
					return WalkResult{}, fmt.Errorf("ethtrie: leaf key does not match expected address path")
				}
				balance, err := decodeAccountBalance(items[1])
				if err != nil {
					return WalkResult{}, err
				}
				if balance < claimedBalance {
					return WalkResult{}, fmt.Errorf("ethtrie: leaf balance %d below claimed %d", balance, claimedBalance)
				}
				return WalkResult{Balance: balance}, nil
			}
			// Extension node.
			nibbleOffset += len(keyNibbles)
			if len(items[1]) != 32 {
				return WalkResult{}, fmt.Errorf("ethtrie: extension child must be a 32-byte hash")
			}
			copy(currentHash[:], items[1])
		case 17:
			if final {
				return WalkResult{}, fmt.Errorf("ethtrie: final layer must be a leaf, got branch")
			}
			if nibbleOffset >= 64 {
				return WalkResult{}, fmt.Errorf("ethtrie: nibble offset out of bounds")
			}
			nibble := int(addressHashNibbles[nibbleOffset])
			nibbleOffset++
			if nibble >= 16 {
				return WalkResult{}, fmt.Errorf("ethtrie: invalid nibble %d", nibble)
			}
			child := items[nibble]
			switch len(child) {
			case 32:
				copy(currentHash[:], child)
			case 0:
				return WalkResult{}, fmt.Errorf("ethtrie: branch child at nibble %d is empty", nibble)
			default:
				return WalkResult{}, fmt.Errorf("ethtrie: embedded branch children are not supported")
			}
		default:
			return WalkResult{}, fmt.Errorf("ethtrie: invalid node shape with %d items", len(items))
		}
	}

	return WalkResult{}, fmt.Errorf("ethtrie: walk ended without reaching a leaf")
}

func nibblesEqual(got []byte, want []byte) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// validateNodeShape enforces §4.2's node-shape rules: a 2-item node's first
// byte's high nibble must tag it leaf/extension/odd/even (0..3); a 17-item
// branch node's first 16 children must each be empty or exactly 32 bytes.
func validateNodeShape(items [][]byte) error {
	switch len(items) {
	case 2:
		if len(items[0]) == 0 {
			return fmt.Errorf("empty HP-encoded path")
		}
		flag := items[0][0] >> 4
		if flag > 3 {
			return fmt.Errorf("invalid HP type-tag nibble %d", flag)
		}
		return nil
	case 17:
		for i := 0; i < 16; i++ {
			if l := len(items[i]); l != 0 && l != 32 {
				return fmt.Errorf("branch child %d has invalid length %d", i, l)
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid node item count %d", len(items))
	}
}

// decodeAccountBalance RLP-decodes a 4-field account leaf value (nonce,
// balance, storageRoot, codeHash) and returns the balance as a big-endian
// scalar, matching §4.2's account shape requirement. The leaf value is an
// RLP string whose payload is the account's RLP list.
func decodeAccountBalance(accountRLP []byte) (uint64, error) {
	accountBytes, err := DecodeString(accountRLP)
	if err != nil {
		return 0, fmt.Errorf("ethtrie: account leaf value: %w", err)
	}
	fields, err := DecodeList(accountBytes)
	if err != nil {
		return 0, fmt.Errorf("ethtrie: account leaf: %w", err)
	}
	if len(fields) != 4 {
		return 0, fmt.Errorf("ethtrie: account must have exactly 4 fields, got %d", len(fields))
	}
	balanceBytes, err := DecodeString(fields[1])
	if err != nil {
		return 0, fmt.Errorf("ethtrie: account balance field: %w", err)
	}
	if len(balanceBytes) > 8 {
		return 0, fmt.Errorf("ethtrie: account balance exceeds 64 bits")
	}
	var balance uint64
	for _, b := range balanceBytes {
		balance = balance<<8 | uint64(b)
	}
	return balance, nil
}
