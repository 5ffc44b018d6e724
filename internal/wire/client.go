package wire

import (
	"context"

	"google.golang.org/grpc"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// CooperationClient calls a peer's CooperationService over an existing
// connection. It implements pkg/coordinator.PeerClient.
type CooperationClient struct {
	cc *grpc.ClientConn
}

// NewCooperationClient wraps an established connection.
func NewCooperationClient(cc *grpc.ClientConn) *CooperationClient {
	return &CooperationClient{cc: cc}
}

// ComputeExponent implements pkg/coordinator.PeerClient.
func (c *CooperationClient) ComputeExponent(ctx context.Context, b curve.Point) (curve.Point, error) {
	req, err := FromPoint(b)
	if err != nil {
		return curve.Point{}, err
	}
	out := new(CurvePoint)
	if err := c.cc.Invoke(ctx, "/fingerprint.CooperationService/ComputeExponent", &req, out,
		grpc.CallContentSubtype(codecName)); err != nil {
		return curve.Point{}, statusToError(err)
	}
	return out.ToPoint()
}

// FingerprintClient calls the public FingerprintService, for any caller
// that is itself a pure RPC client rather than a full agent process.
type FingerprintClient struct {
	cc *grpc.ClientConn
}

// NewFingerprintClient wraps an established connection.
func NewFingerprintClient(cc *grpc.ClientConn) *FingerprintClient {
	return &FingerprintClient{cc: cc}
}

// GenerateFingerprint calls FingerprintService.GenerateFingerprint.
func (c *FingerprintClient) GenerateFingerprint(ctx context.Context, t txn.Transaction) (string, error) {
	req := FromTransaction(t)
	out := new(Fingerprint)
	if err := c.cc.Invoke(ctx, "/fingerprint.FingerprintService/GenerateFingerprint", &req, out,
		grpc.CallContentSubtype(codecName)); err != nil {
		return "", statusToError(err)
	}
	return out.Value, nil
}
