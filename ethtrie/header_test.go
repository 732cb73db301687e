// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ethtrie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func buildHeader(t *testing.T, stateRoot [32]byte, number, timestamp uint64) []byte {
	t.Helper()
	var parentHash [32]byte
	fields := make([][]byte, numHeaderFields)
	for i := range fields {
		fields[i] = mustEncodeBytes(t, nil)
	}
	fields[fieldParentHash] = mustEncodeBytes(t, parentHash[:])
	fields[fieldStateRoot] = mustEncodeBytes(t, stateRoot[:])
	fields[fieldNumber], _ = EncodeUint(number)
	fields[fieldTimestamp], _ = EncodeUint(timestamp)

	raw, err := EncodeList(fields)
	require.NoError(t, err)
	return raw
}

func mustEncodeBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	out, err := EncodeBytes(b)
	require.NoError(t, err)
	return out
}

func TestParseHeaderHappyPath(t *testing.T) {
	var stateRoot [32]byte
	stateRoot[0] = 0xab
	now := time.Unix(2_000_000_000, 0)
	raw := buildHeader(t, stateRoot, 12345, 1_999_999_000)

	h, err := ParseHeader(raw, now)
	require.NoError(t, err)
	require.Equal(t, stateRoot, h.StateRoot)
	require.Equal(t, uint64(12345), h.Number)
}

func TestParseHeaderRejectsFutureTimestamp(t *testing.T) {
	var stateRoot [32]byte
	now := time.Unix(2_000_000_000, 0)
	raw := buildHeader(t, stateRoot, 1, uint64(now.Add(2*time.Hour).Unix()))

	_, err := ParseHeader(raw, now)
	require.Error(t, err)
}

func TestParseHeaderRejectsWrongFieldCount(t *testing.T) {
	raw, err := EncodeList([][]byte{mustEncodeBytes(t, []byte{1})})
	require.NoError(t, err)
	_, err = ParseHeader(raw, time.Now())
	require.Error(t, err)
}
