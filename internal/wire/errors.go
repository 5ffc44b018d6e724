package wire

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
)

// errorToStatus maps the §7 error taxonomy onto gRPC status codes for
// the wire, so a well-behaved client can distinguish "don't retry"
// from "retry" without string-matching the message.
func errorToStatus(err error) error {
	kind, ok := fingerprint.KindOf(err)
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}
	switch kind {
	case fingerprint.KindInvalidInput:
		return status.Error(codes.InvalidArgument, err.Error())
	case fingerprint.KindQuorumLost, fingerprint.KindTimeout:
		return status.Error(codes.Unavailable, err.Error())
	case fingerprint.KindPeerMisbehavior, fingerprint.KindPeerUnavailable:
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// statusToError reverses errorToStatus on the client side, so the
// coordinator sees the same *fingerprint.Error taxonomy regardless of
// whether the peer failure happened locally or over the wire.
func statusToError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return &fingerprint.Error{Kind: fingerprint.KindPeerUnavailable, Err: err}
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return &fingerprint.Error{Kind: fingerprint.KindInvalidInput, Err: errors.New(st.Message())}
	case codes.Unavailable, codes.DeadlineExceeded:
		return &fingerprint.Error{Kind: fingerprint.KindPeerUnavailable, Err: errors.New(st.Message())}
	default:
		return &fingerprint.Error{Kind: fingerprint.KindInternal, Err: errors.New(st.Message())}
	}
}
