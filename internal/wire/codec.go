package wire

import (
	"github.com/fxamacker/cbor/v2"
)

// codecName is registered with gRPC's encoding package so both ends of
// the connection select this codec instead of the default proto one —
// there is no .proto file to generate a proto codec from (spec.md §1).
const codecName = "cbor"

// cborCodec implements google.golang.org/grpc/encoding.Codec.
type cborCodec struct{}

func (cborCodec) Marshal(v interface{}) ([]byte, error) {
	return cbor.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

func (cborCodec) Name() string { return codecName }
