package fingerprint

import (
	"context"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// Engine is the tagged-variant dispatch point of spec.md §9: the public
// FingerprintService picks exactly one implementation at startup,
// configured by fingerprint-service.type, and holds it for the process
// lifetime.
type Engine interface {
	Fingerprint(ctx context.Context, t txn.Transaction) (string, error)
}
