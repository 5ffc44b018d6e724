// Package localnet implements component A3: an in-process simulation
// of a full cooperating-agent deployment, used by tests instead of
// standing up real agent processes — a flat, in-memory stand-in for the
// real gRPC transport.
package localnet

import (
	"context"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/coordinator"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/shamir"
)

// Network holds every agent's share in-process and can build a working
// Coordinator or CooperativeEngine for any one of them, calling
// straight into the others' in-memory fingerprint.Peer instead of over
// a real connection.
type Network struct {
	members party.IDSlice
	shares  map[party.ID]curve.Scalar
	peers   map[party.ID]*fingerprint.Peer
}

// NewNetwork builds a Network from a dealer's full share output.
func NewNetwork(shares shamir.Shares) *Network {
	n := &Network{
		members: make(party.IDSlice, len(shares.Parts)),
		shares:  make(map[party.ID]curve.Scalar, len(shares.Parts)),
		peers:   make(map[party.ID]*fingerprint.Peer, len(shares.Parts)),
	}
	for i, s := range shares.Parts {
		n.members[i] = s.ID
		n.shares[s.ID] = s.Value
		n.peers[s.ID] = fingerprint.NewPeer(s.Value)
	}
	return n
}

// Members returns every agent ID in the network, in dealer order.
func (n *Network) Members() party.IDSlice { return n.members }

// localPeerClient adapts an in-process Peer to coordinator.PeerClient,
// skipping serialization entirely (no wire codec, no connection) —
// this is the in-process analogue of internal/wire.CooperationClient.
type localPeerClient struct {
	peer *fingerprint.Peer
}

func (c *localPeerClient) ComputeExponent(_ context.Context, b curve.Point) (curve.Point, error) {
	return c.peer.ComputeExponent(b)
}

// CoordinatorFor returns a coordinator.Pool for self, wired to call
// every other agent's Peer in-process.
func (n *Network) CoordinatorFor(self party.ID) *coordinator.Pool {
	clients := make(map[party.ID]coordinator.PeerClient, len(n.members))
	for _, id := range n.members {
		if id == self {
			continue
		}
		clients[id] = &localPeerClient{peer: n.peers[id]}
	}
	return coordinator.NewPool(self, n.members, clients)
}

// EngineFor returns a fully wired CooperativeEngine for self, reading
// self's own share from the network and fanning out through
// CoordinatorFor(self).
func (n *Network) EngineFor(self party.ID, threshold int) *fingerprint.CooperativeEngine {
	return fingerprint.NewCooperativeEngine(self, n.shares[self], threshold, n.CoordinatorFor(self))
}

// PeerFor exposes the raw Peer for self, for callers that want to drive
// ComputeExponent directly.
func (n *Network) PeerFor(self party.ID) *fingerprint.Peer {
	return n.peers[self]
}
