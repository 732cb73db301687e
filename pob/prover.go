// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pob

import (
	"time"

	"github.com/worm-privacy/proof-of-burn/components"
	"github.com/worm-privacy/proof-of-burn/ethtrie"
	"github.com/worm-privacy/proof-of-burn/starkio"
	"github.com/worm-privacy/proof-of-burn/trace"
	log "github.com/luxfi/log"
)

// Prover owns a ProofConfig and a logger for its lifetime and proves burns
// against it, matching §3's ownership note and the Ambient Stack's logging
// convention.
type Prover struct {
	Config ProofConfig
	Logger log.Logger
}

// NewProver constructs a Prover, defaulting to a no-op-at-rest test logger
// when none is supplied — production callers inject their own.
func NewProver(cfg ProofConfig, logger log.Logger) (*Prover, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	return &Prover{Config: cfg, Logger: logger}, nil
}

// Prove implements §4.7's seven-step prover responsibility list: validate
// inputs and PoW; derive intermediates; run the MPT walker against the
// header-extracted state root (never skipped, per the Design Notes'
// resolution of the source's commented-out TODO); compute the public
// commitment; synthesize the trace; commit and run the generic STARK
// prover; wrap with metadata.
func (p *Prover) Prove(in BurnInputs) (BurnOutput, error) {
	p.Logger.Info("prove: start")

	if err := in.Validate(p.Config); err != nil {
		p.Logger.Info("prove: rejected", "reason", err.Error())
		return BurnOutput{}, err
	}

	effectiveZeroBytes := components.EffectiveZeroBytes(p.Config.PowMinimumZeroBytes, int(in.ByteSecurityRelax))
	digest := components.Digest(in.BurnKey, in.Receiver, in.Fee)
	if !components.Satisfies(digest, effectiveZeroBytes) {
		err := newErr(ProofOfWorkFailed, "PoW digest does not satisfy the effective zero-byte floor")
		p.Logger.Info("prove: rejected", "reason", err.Error())
		return BurnOutput{}, err
	}

	header, err := ethtrie.ParseHeader(in.BlockHeader, time.Now())
	if err != nil {
		return BurnOutput{}, wrapErr(RlpError, "invalid block header", err)
	}
	if header.StateRoot != in.StateRoot {
		return BurnOutput{}, newErr(InvalidInput, "block header state root does not match claimed state root")
	}

	addr := components.DeriveAddress(in.BurnKey, in.Receiver, in.Fee)
	nullifier := components.DeriveNullifier(in.BurnKey)
	remainingCoin := components.DeriveRemainingCoin(in.BurnKey, in.Balance, in.Fee, in.Spend)

	addrNibbles := ethtrie.AddressHashNibbles(addr)
	mpt := components.MPTInclusion{MaxNumLayers: p.Config.MaxNumLayers}
	walkResult, err := mpt.Verify(components.Witness{
		Layers:                in.Layers,
		LayerLens:             in.LayerLens,
		NumLayers:             in.NumLayers,
		StateRoot:             in.StateRoot,
		AddressHashNibbles:    addrNibbles,
		NumLeafAddressNibbles: in.NumLeafAddressNibbles,
		MinLeafAddressNibbles: p.Config.MinLeafAddressNibbles,
		ClaimedBalance:        in.Balance,
	})
	if err != nil {
		return BurnOutput{}, wrapErr(InvalidInput, "MPT inclusion walk failed", err)
	}
	if walkResult.Balance < in.Balance {
		return BurnOutput{}, newErr(InvalidInput, "trie-recorded balance below claimed balance")
	}

	commitment := components.ComputeCommitment(header.BlockRoot(), nullifier, remainingCoin, in.Fee, in.Spend, in.Receiver)

	var fullCommitment [32]byte
	copy(fullCommitment[:31], commitment[:])

	synth := trace.Synthesize(trace.Witness{
		BurnKey:  in.BurnKey,
		Receiver: in.Receiver,
		Fee:      in.Fee,
		MPT: &components.Witness{
			Layers:                in.Layers,
			LayerLens:             in.LayerLens,
			NumLayers:             in.NumLayers,
			StateRoot:             in.StateRoot,
			AddressHashNibbles:    addrNibbles,
			NumLeafAddressNibbles: in.NumLeafAddressNibbles,
			MinLeafAddressNibbles: p.Config.MinLeafAddressNibbles,
			ClaimedBalance:        in.Balance,
		},
		Commitment: &components.CommitmentWitness{
			BlockRoot:         header.BlockRoot(),
			Nullifier:         nullifier,
			RemainingCoin:     remainingCoin,
			Fee:               in.Fee,
			Spend:             in.Spend,
			Receiver:          in.Receiver,
			ClaimedCommitment: commitment,
		},
	})
	composite := components.NewComposite(p.Config.MaxNumLayers, effectiveZeroBytes)

	// Binding the public commitment into the Fiat-Shamir transcript ties
	// this proof's validity to exactly these public inputs (§8's
	// "Public-input binding" property): a verifier that recomputes a
	// different commitment from different public inputs derives a
	// different transcript and the FRI checks below fail.
	starkProof, err := starkio.Prove(composite, synth, fullCommitment[:])
	if err != nil {
		return BurnOutput{}, wrapErr(ProofError, "STARK proving failed", err)
	}

	proofBytes, err := starkProof.Encode()
	if err != nil {
		return BurnOutput{}, wrapErr(SerializationError, "proof encoding failed", err)
	}

	p.Logger.Info("prove: done", "block_number", header.Number)
	return BurnOutput{
		ProofBytes: proofBytes,
		Commitment: fullCommitment,
		Metadata: ProofMetadata{
			SecurityLevel: p.Config.SecurityLevel,
			BlockNumber:   header.Number,
		},
	}, nil
}
