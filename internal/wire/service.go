package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
)

func init() {
	encoding.RegisterCodec(cborCodec{})
}

// FingerprintServer implements the public side of spec.md §6's
// FingerprintService, wrapping whichever Engine (C6) the process was
// configured with.
type FingerprintServer struct {
	engine fingerprint.Engine
}

// NewFingerprintServer returns a server dispatching every request to
// engine.
func NewFingerprintServer(engine fingerprint.Engine) *FingerprintServer {
	return &FingerprintServer{engine: engine}
}

func (s *FingerprintServer) generateFingerprint(ctx context.Context, req *TransactionFingerprintData) (*Fingerprint, error) {
	t := req.ToTransaction()
	value, err := s.engine.Fingerprint(ctx, t)
	if err != nil {
		return nil, errorToStatus(err)
	}
	return &Fingerprint{Value: value}, nil
}

func fingerprintGenerateFingerprintHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TransactionFingerprintData)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*FingerprintServer).generateFingerprint(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/fingerprint.FingerprintService/GenerateFingerprint"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*FingerprintServer).generateFingerprint(ctx, req.(*TransactionFingerprintData))
	}
	return interceptor(ctx, in, info, handler)
}

// FingerprintServiceDesc is the hand-written grpc.ServiceDesc standing
// in for protoc-generated registration (spec.md §1's explicit scope
// note: no code generator is run).
var FingerprintServiceDesc = grpc.ServiceDesc{
	ServiceName: "fingerprint.FingerprintService",
	HandlerType: (*FingerprintServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateFingerprint", Handler: fingerprintGenerateFingerprintHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fingerprint.proto",
}

// CooperationServer implements the agent-to-agent side of spec.md §6's
// CooperationService, wrapping this agent's Peer (C6's
// cooperating-peer partial evaluation).
type CooperationServer struct {
	peer *fingerprint.Peer
}

// NewCooperationServer returns a server evaluating every request with peer.
func NewCooperationServer(peer *fingerprint.Peer) *CooperationServer {
	return &CooperationServer{peer: peer}
}

func (s *CooperationServer) computeExponent(_ context.Context, req *CurvePoint) (*CurvePoint, error) {
	b, err := req.ToPoint()
	if err != nil {
		return nil, errorToStatus(&fingerprint.Error{Kind: fingerprint.KindInvalidInput, Err: err})
	}
	e, err := s.peer.ComputeExponent(b)
	if err != nil {
		return nil, errorToStatus(err)
	}
	out, err := FromPoint(e)
	if err != nil {
		return nil, errorToStatus(&fingerprint.Error{Kind: fingerprint.KindInternal, Err: err})
	}
	return &out, nil
}

func cooperationComputeExponentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CurvePoint)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*CooperationServer).computeExponent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/fingerprint.CooperationService/ComputeExponent"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*CooperationServer).computeExponent(ctx, req.(*CurvePoint))
	}
	return interceptor(ctx, in, info, handler)
}

// CooperationServiceDesc is CooperationService's hand-written
// grpc.ServiceDesc.
var CooperationServiceDesc = grpc.ServiceDesc{
	ServiceName: "fingerprint.CooperationService",
	HandlerType: (*CooperationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ComputeExponent", Handler: cooperationComputeExponentHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fingerprint.proto",
}
