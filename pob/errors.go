// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pob is the public entry point: BurnInputs, ProofConfig,
// BurnOutput, and the Prove/Verify pipeline tying together field, hashprim,
// ethtrie, components, trace, and starkio (§4.7, §4.8).
package pob

import "fmt"

// ErrKind tags the category of a pob.Error, matching §7's taxonomy.
type ErrKind int

const (
	InvalidInput ErrKind = iota
	ProofOfWorkFailed
	ConstraintError
	ProofError
	VerificationError
	CryptoError
	SerializationError
	IoError
	RlpError
	JsonError
)

func (k ErrKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case ProofOfWorkFailed:
		return "ProofOfWorkFailed"
	case ConstraintError:
		return "ConstraintError"
	case ProofError:
		return "ProofError"
	case VerificationError:
		return "VerificationError"
	case CryptoError:
		return "CryptoError"
	case SerializationError:
		return "SerializationError"
	case IoError:
		return "IoError"
	case RlpError:
		return "RlpError"
	case JsonError:
		return "JsonError"
	default:
		return "Unknown"
	}
}

// Error is the package's single error type: a tagged kind plus an optional
// human-readable reason and wrapped cause, matching the teacher's sentinel
// error style (no stack-trace wrapping library).
type Error struct {
	Kind   ErrKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("pob: %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("pob: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is satisfies errors.Is by comparing Kind, letting callers write
// errors.Is(err, pob.ProofOfWorkFailed)-style checks against a sentinel
// built with newErr(kind, "").
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newErr(kind ErrKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func wrapErr(kind ErrKind, reason string, cause error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: cause}
}
