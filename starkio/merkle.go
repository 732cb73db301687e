// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package starkio

import (
	"encoding/binary"
	"fmt"

	"github.com/worm-privacy/proof-of-burn/field"
	"github.com/zeebo/blake3"
)

// MerkleTree is a binary blake3 Merkle tree over a column of QM31 leaves,
// the commitment scheme backing each of the prover's two trace trees and
// the FRI layer commitments, mirroring the teacher's verifyMerkleProof
// pairwise-hash idiom generalized into a full tree builder.
type MerkleTree struct {
	layers [][][32]byte // layers[0] = leaf hashes, layers[len-1] = single root
}

func hashLeaf(v field.QM31) [32]byte {
	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:4], v.A0.Uint32())
	binary.BigEndian.PutUint32(buf[4:8], v.A1.Uint32())
	binary.BigEndian.PutUint32(buf[8:12], v.A2.Uint32())
	binary.BigEndian.PutUint32(buf[12:16], v.A3.Uint32())
	return blake3.Sum256(buf[:])
}

func hashPair(left, right [32]byte) [32]byte {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return blake3.Sum256(buf[:])
}

// BuildMerkleTree commits to a column, padding with zero-hash leaves up to
// the next power of two.
func BuildMerkleTree(column []field.QM31) *MerkleTree {
	n := 1
	for n < len(column) {
		n *= 2
	}
	if n == 0 {
		n = 1
	}

	leaves := make([][32]byte, n)
	for i, v := range column {
		leaves[i] = hashLeaf(v)
	}

	layers := [][][32]byte{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([][32]byte, len(cur)/2)
		for i := range next {
			next[i] = hashPair(cur[2*i], cur[2*i+1])
		}
		layers = append(layers, next)
		cur = next
	}
	return &MerkleTree{layers: layers}
}

// Root returns the tree's commitment.
func (m *MerkleTree) Root() [32]byte {
	top := m.layers[len(m.layers)-1]
	return top[0]
}

// AuthPath returns the sibling hashes along the path from leaf index to the
// root, bottom-up.
func (m *MerkleTree) AuthPath(index int) [][32]byte {
	path := make([][32]byte, 0, len(m.layers)-1)
	idx := index
	for layer := 0; layer < len(m.layers)-1; layer++ {
		siblingIdx := idx ^ 1
		path = append(path, m.layers[layer][siblingIdx])
		idx /= 2
	}
	return path
}

// VerifyMerkleProof checks that leaf, with the given index and auth path,
// commits to root.
func VerifyMerkleProof(root [32]byte, leaf field.QM31, index uint64, path [][32]byte) error {
	return VerifyPathAbove(root, hashLeaf(leaf), int(index), path)
}

// AuthPathAbove returns the sibling hashes from layers[fromLayer][index] up
// to the root, bottom-up — the same climb AuthPath performs from the
// leaves, generalized to start above them. FRI's query response reveals an
// (even,odd) pair directly rather than a single leaf, so it only needs the
// path from that pair's parent upward (fromLayer=1).
func (m *MerkleTree) AuthPathAbove(fromLayer, index int) [][32]byte {
	path := make([][32]byte, 0, len(m.layers)-1-fromLayer)
	idx := index
	for layer := fromLayer; layer < len(m.layers)-1; layer++ {
		siblingIdx := idx ^ 1
		path = append(path, m.layers[layer][siblingIdx])
		idx /= 2
	}
	return path
}

// VerifyPathAbove checks that nodeHash, sitting at index within whichever
// layer AuthPathAbove was built from, climbs via path to root.
func VerifyPathAbove(root [32]byte, nodeHash [32]byte, index int, path [][32]byte) error {
	current := nodeHash
	idx := index
	for _, sibling := range path {
		if idx&1 == 0 {
			current = hashPair(current, sibling)
		} else {
			current = hashPair(sibling, current)
		}
		idx /= 2
	}
	if current != root {
		return fmt.Errorf("starkio: merkle path verification failed")
	}
	return nil
}
