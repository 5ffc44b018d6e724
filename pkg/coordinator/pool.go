// Package coordinator implements component C7: concurrent dispatch of
// partial-evaluation calls to cooperating agents, quorum collection,
// cancellation, and the peer-health bookkeeping behind the §4.6
// cooperating-set selection policy.
package coordinator

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
)

// PeerClient is the coordinator's view of one cooperating agent: a
// single ComputeExponent RPC, however it is transported. internal/wire
// supplies the production gRPC implementation; internal/localnet
// supplies an in-process one for tests.
type PeerClient interface {
	ComputeExponent(ctx context.Context, b curve.Point) (curve.Point, error)
}

// Pool owns the connection handles to every other configured agent and
// implements fingerprint.Coordinator. One Pool is shared across every
// in-flight request (concurrent checkout safe — see spec.md §5).
type Pool struct {
	self    party.ID
	members party.IDSlice // fixed membership order, spec.md §4.6 step 3
	clients map[party.ID]PeerClient

	mu      sync.Mutex
	healthy map[party.ID]bool // last-interaction health, selection policy input
}

// NewPool returns a Pool for self, with members listing every agent
// (including self) in the fixed configuration order, and clients
// supplying a PeerClient for every member other than self.
func NewPool(self party.ID, members party.IDSlice, clients map[party.ID]PeerClient) *Pool {
	healthy := make(map[party.ID]bool, len(members))
	for _, id := range members {
		healthy[id] = true
	}
	return &Pool{self: self, members: members, clients: clients, healthy: healthy}
}

// ChooseCooperatingSet implements fingerprint.Coordinator: self is
// always included, then members are scanned in fixed configuration
// order preferring peers that were healthy in the last interaction,
// falling back to the remaining peers as needed (spec.md §4.6 step 3).
func (p *Pool) ChooseCooperatingSet(threshold int) (party.IDSlice, error) {
	if threshold > len(p.members) {
		return nil, errors.New("coordinator: threshold exceeds configured agent count")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	set := make(party.IDSlice, 0, threshold)
	set = append(set, p.self)

	addIfHealthy := func(want bool) {
		for _, id := range p.members {
			if len(set) == threshold {
				return
			}
			if id == p.self || set.Contains(id) {
				continue
			}
			if p.healthy[id] == want {
				set = append(set, id)
			}
		}
	}
	addIfHealthy(true)
	addIfHealthy(false)

	if len(set) < threshold {
		return nil, errors.New("coordinator: not enough configured peers to reach threshold")
	}
	return set, nil
}

// markHealthy records the outcome of the most recent call to id, input
// to the next request's ChooseCooperatingSet preference order.
func (p *Pool) markHealthy(id party.ID, ok bool) {
	p.mu.Lock()
	p.healthy[id] = ok
	p.mu.Unlock()
}

// Gather implements fingerprint.Coordinator: it issues a ComputeExponent
// call to every peer in cooperating concurrently under ctx's deadline,
// and — on a fast connection failure with an untried peer available —
// may open one best-effort replacement call (spec.md §4.7), never
// exceeding n-1 total in-flight calls.
func (p *Pool) Gather(ctx context.Context, b curve.Point, cooperating party.IDSlice) (map[party.ID]curve.Point, error) {
	if len(cooperating) == 0 {
		return map[party.ID]curve.Point{}, nil
	}

	tried := make(map[party.ID]bool, len(p.members))
	for _, id := range cooperating {
		tried[id] = true
	}
	untried := make(party.IDSlice, 0, len(p.members))
	for _, id := range p.members {
		if id != p.self && !tried[id] {
			untried = append(untried, id)
		}
	}

	var mu sync.Mutex
	results := make(map[party.ID]curve.Point, len(cooperating))
	var failures party.IDSlice
	inFlight := len(cooperating)

	g, gctx := errgroup.WithContext(ctx)

	var call func(id party.ID, allowReplacement bool)
	call = func(id party.ID, allowReplacement bool) {
		g.Go(func() error {
			client, ok := p.clients[id]
			if !ok {
				p.markHealthy(id, false)
				mu.Lock()
				failures = append(failures, id)
				mu.Unlock()
				return nil
			}
			e, err := client.ComputeExponent(gctx, b)
			if err != nil || !e.IsOnCurve() {
				p.markHealthy(id, false)
				mu.Lock()
				failures = append(failures, id)
				replacement := party.ID("")
				if allowReplacement && len(untried) > 0 && inFlight < len(p.members)-1 {
					replacement, untried = untried[0], untried[1:]
					inFlight++
				}
				mu.Unlock()
				if replacement != "" {
					call(replacement, true)
				}
				return nil
			}
			p.markHealthy(id, true)
			mu.Lock()
			results[id] = e
			mu.Unlock()
			return nil
		})
	}

	for _, id := range cooperating {
		call(id, true)
	}
	_ = g.Wait()

	if len(results) >= len(cooperating) {
		return results, nil
	}

	kind := fingerprint.KindQuorumLost
	select {
	case <-ctx.Done():
		kind = fingerprint.KindTimeout
	default:
	}
	return nil, &fingerprint.Error{Kind: kind, Culprits: failures,
		Err: errors.New("coordinator: could not assemble enough live cooperating peers")}
}
