// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ethtrie

import (
	"encoding/binary"
	"fmt"
	"time"
)

// numHeaderFields is the post-London Ethereum block header field count.
const numHeaderFields = 15

const (
	fieldParentHash = 0
	fieldStateRoot  = 3
	fieldNumber     = 8
	fieldTimestamp  = 11
)

// Header is the subset of a decoded Ethereum block header this system
// depends on: the authoritative state root used to anchor the MPT walk, and
// the fields validated for well-formedness per §6.
type Header struct {
	ParentHash [32]byte
	StateRoot  [32]byte
	Number     uint64
	Timestamp  uint64
}

// ParseHeader RLP-decodes a block header, enforcing every shape rule in
// §6: exactly 15 post-London fields; parent hash and state root exactly 32
// bytes; block number and timestamp 1-8-byte big-endian scalars; timestamp
// not more than an hour ahead of wall-clock.
func ParseHeader(raw []byte, now time.Time) (Header, error) {
	items, err := DecodeList(raw)
	if err != nil {
		return Header{}, fmt.Errorf("ethtrie: block header: %w", err)
	}
	if len(items) != numHeaderFields {
		return Header{}, fmt.Errorf("ethtrie: block header must have %d fields, got %d", numHeaderFields, len(items))
	}

	parentHash, err := DecodeString(items[fieldParentHash])
	if err != nil || len(parentHash) != 32 {
		return Header{}, fmt.Errorf("ethtrie: parent hash field must be 32 bytes")
	}
	stateRootBytes, err := DecodeString(items[fieldStateRoot])
	if err != nil || len(stateRootBytes) != 32 {
		return Header{}, fmt.Errorf("ethtrie: state root field must be 32 bytes")
	}
	numberBytes, err := DecodeString(items[fieldNumber])
	if err != nil || len(numberBytes) == 0 || len(numberBytes) > 8 {
		return Header{}, fmt.Errorf("ethtrie: block number field must be 1-8 bytes")
	}
	timestampBytes, err := DecodeString(items[fieldTimestamp])
	if err != nil || len(timestampBytes) == 0 || len(timestampBytes) > 8 {
		return Header{}, fmt.Errorf("ethtrie: timestamp field must be 1-8 bytes")
	}

	var h Header
	copy(h.ParentHash[:], parentHash)
	copy(h.StateRoot[:], stateRootBytes)
	h.Number = beToUint64(numberBytes)
	h.Timestamp = beToUint64(timestampBytes)

	if int64(h.Timestamp) > now.Add(time.Hour).Unix() {
		return Header{}, fmt.Errorf("ethtrie: timestamp %d is more than 1 hour in the future", h.Timestamp)
	}

	return h, nil
}

// BlockRoot returns the first 8 bytes of the header's state root, the value
// mixed into the public commitment per §4.5.
func (h Header) BlockRoot() uint64 {
	return BlockRootFromStateRoot(h.StateRoot)
}

// BlockRootFromStateRoot returns the first 8 bytes of a state root. A
// verifier checking the public commitment (§4.8 step 1) has only the
// claimed state root, not a parsed block header, so this is split out from
// Header.BlockRoot for callers on that side of the protocol.
func BlockRootFromStateRoot(stateRoot [32]byte) uint64 {
	return binary.BigEndian.Uint64(stateRoot[:8])
}

func beToUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
