// Package fingerprint implements the protocol engine (component C6):
// transaction hashing to a curve point, the Naive and Cooperative
// evaluation modes, and the initiator's per-request state machine.
package fingerprint

import (
	"errors"
	"fmt"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
)

// Kind is the error taxonomy of spec.md §7, propagated unchanged through
// the coordinator and the engine so callers can dispatch on it without
// string matching.
type Kind int

const (
	// KindInvalidInput is a caller error: malformed transaction fields.
	// Never retried.
	KindInvalidInput Kind = iota
	// KindInvalidShareMaterial is a fatal configuration-load error.
	KindInvalidShareMaterial
	// KindPeerUnavailable is a peer call that failed before the
	// deadline (connection error, transport failure).
	KindPeerUnavailable
	// KindPeerMisbehavior is a peer response that is structurally
	// invalid (off-curve or wrong-subgroup point). Handled identically
	// to KindPeerUnavailable by the coordinator, but kept distinct so
	// operators can tell the difference in logs.
	KindPeerMisbehavior
	// KindQuorumLost is surfaced when t contributors cannot be
	// assembled. Retriable at the public API.
	KindQuorumLost
	// KindTimeout is the deadline elapsing during Gathering. Handled
	// identically to KindQuorumLost.
	KindTimeout
	// KindInternal marks a violated invariant in C1-C3. Non-retriable;
	// callers should log and alert rather than retry.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInvalidShareMaterial:
		return "InvalidShareMaterial"
	case KindPeerUnavailable:
		return "PeerUnavailable"
	case KindPeerMisbehavior:
		return "PeerMisbehavior"
	case KindQuorumLost:
		return "QuorumLost"
	case KindTimeout:
		return "Timeout"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned across the protocol boundary:
// a Kind, the cooperating peers responsible (if any), and the wrapped
// cause.
type Error struct {
	Kind     Kind
	Culprits party.IDSlice
	Err      error
}

func (e *Error) Error() string {
	if len(e.Culprits) == 0 {
		return fmt.Sprintf("fingerprint: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fingerprint: %s (peers %v): %v", e.Kind, e.Culprits, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr wraps err under kind with no named culprits.
func newErr(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// newErrf is the formatted-message convenience form.
func newErrf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error,
// reporting ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
