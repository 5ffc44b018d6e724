package coordinator

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// SessionID derives a short correlation ID for one fingerprint request
// from the transaction's canonical form and a caller-supplied nonce.
// Nothing in this repository calls it: no log line or gRPC call
// metadata carries the ID. It is bookkeeping only — never part of the
// cryptographic protocol, and never derived from or used to reconstruct
// anything secret — so a fast general-purpose hash (blake3) is used
// rather than Poseidon.
func SessionID(t txn.Transaction, nonce []byte) string {
	h := blake3.New()
	for _, e := range txn.Canonicalize(t) {
		b := e.Bytes()
		h.Write(b[:])
	}
	h.Write(nonce)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
