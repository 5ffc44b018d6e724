package localnet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outbe/outbe-transaction-fingerprinting/internal/localnet"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/shamir"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

func sampleTxn() txn.Transaction {
	return txn.Transaction{
		BIC:      "BCEELU21",
		Amount:   txn.Money{AmountBase: 1000, AmountAtto: 0, Currency: "EUR"},
		DateTime: txn.Timestamp{Seconds: 1700000000, Nanos: 0},
		WWD:      txn.Date{Year: 2023, Month: 11, Day: 14},
	}
}

func TestNetworkMatchesNaiveForEveryInitiator(t *testing.T) {
	shares, err := shamir.GenerateShares(3, 5)
	require.NoError(t, err)

	naive := fingerprint.NewNaiveEngine(shares.Secret)
	want, err := naive.Fingerprint(context.Background(), sampleTxn())
	require.NoError(t, err)

	net := localnet.NewNetwork(shares)
	for _, self := range net.Members() {
		engine := net.EngineFor(self, 3)
		got, err := engine.Fingerprint(context.Background(), sampleTxn())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
