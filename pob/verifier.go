// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pob

import (
	"github.com/worm-privacy/proof-of-burn/components"
	"github.com/worm-privacy/proof-of-burn/ethtrie"
	"github.com/worm-privacy/proof-of-burn/starkio"
	log "github.com/luxfi/log"
)

// PublicInputs is the subset of a burn's public data the verifier needs to
// recompute and check the claimed commitment against, per §4.8 step 1.
// RemainingCoin and Nullifier are themselves public (they appear in the
// commitment preimage); the secret burn_key they were derived from never
// needs to reach the verifier.
type PublicInputs struct {
	StateRoot     [32]byte
	Nullifier     [32]byte
	RemainingCoin [32]byte
	Fee           uint64
	Spend         uint64
	Receiver      [20]byte
}

// Verifier owns a ProofConfig for its lifetime and verifies burns against
// it, matching §3's ownership note.
type Verifier struct {
	Config ProofConfig
	Logger log.Logger
}

// NewVerifier constructs a Verifier, defaulting to a test logger when none
// is supplied.
func NewVerifier(cfg ProofConfig, logger log.Logger) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	return &Verifier{Config: cfg, Logger: logger}, nil
}

// Verify implements §4.8's seven-step verifier responsibility list:
// deserialize and recompute+check the public commitment against pub;
// initialize the Fiat-Shamir channel identically to the prover (mixing the
// same claimed commitment in, so a mismatched pub produces a mismatched
// commitment and a diverging transcript even if it somehow slipped past the
// direct equality check); validate FRI structure (there is no
// protocol-level PoW bit check: proofs never carry a PowNonce); re-derive the nullifier non-zero sanity gate
// (burn address itself is never re-derived here — doing so would require
// the secret burn_key, breaking this protocol's core privacy goal); run the
// generic STARK verifier against the composite component.
//
// It returns (false, nil) for a semantic rejection of a structurally valid
// proof and (_, err) for malformed or corrupt input, per §7.
func (v *Verifier) Verify(proofBytes []byte, claimedCommitment [32]byte, pub PublicInputs, maxNumLayers int, effectiveZeroBytes int) (bool, error) {
	proof, err := starkio.DecodeProof(proofBytes)
	if err != nil {
		return false, wrapErr(SerializationError, "malformed proof bytes", err)
	}

	if claimedCommitment[31] != 0 {
		v.Logger.Info("verify: rejected", "reason", "commitment's 32nd byte must be zero")
		return false, nil
	}

	if pub.Nullifier == ([32]byte{}) {
		v.Logger.Info("verify: rejected", "reason", "nullifier must be nonzero")
		return false, nil
	}

	blockRoot := ethtrie.BlockRootFromStateRoot(pub.StateRoot)
	expected := components.ComputeCommitment(blockRoot, pub.Nullifier, pub.RemainingCoin, pub.Fee, pub.Spend, pub.Receiver)
	var expectedFull [32]byte
	copy(expectedFull[:31], expected[:])
	if expectedFull != claimedCommitment {
		v.Logger.Info("verify: rejected", "reason", "recomputed commitment does not match the claimed commitment")
		return false, nil
	}

	composite := components.NewComposite(maxNumLayers, effectiveZeroBytes)
	ok, err := starkio.Verify(composite, proof, claimedCommitment[:])
	if err != nil {
		return false, wrapErr(VerificationError, "STARK verification failed", err)
	}
	if !ok {
		v.Logger.Info("verify: rejected", "reason", "STARK verification returned false")
		return false, nil
	}

	v.Logger.Info("verify: accepted")
	return true, nil
}
