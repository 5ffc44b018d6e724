package fingerprint

import "fmt"

// State is a label in the initiator request state machine of spec.md
// §4.6. Values are initiator-local; peers never observe them.
type State int

const (
	StateNew State = iota
	StateHashing
	StateMapping
	StateBlinding
	StateGathering
	StateCombining
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "New"
	case StateHashing:
		return "Hashing"
	case StateMapping:
		return "Mapping"
	case StateBlinding:
		return "Blinding"
	case StateGathering:
		return "Gathering"
	case StateCombining:
		return "Combining"
	case StateFinalizing:
		return "Finalizing"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// transitions encodes the table of spec.md §4.6: the only states
// reachable from each state. Failed is reachable only from Gathering
// (deadline exceeded or quorum lost); every other state has exactly one
// successor on success.
var transitions = map[State][]State{
	StateNew:        {StateHashing},
	StateHashing:    {StateMapping},
	StateMapping:    {StateBlinding},
	StateBlinding:   {StateGathering},
	StateGathering:  {StateCombining, StateFailed},
	StateCombining:  {StateFinalizing},
	StateFinalizing: {StateDone},
	StateDone:       nil,
	StateFailed:     nil,
}

// machine tracks one request's progress through the table, rejecting
// any transition spec.md §4.6 does not list. The Cooperative engine
// advances it at every labeled step; tests can assert the exact
// sequence a request passed through.
type machine struct {
	current State
	history []State
}

func newMachine() *machine {
	return &machine{current: StateNew, history: []State{StateNew}}
}

// advance moves the machine to next, panicking if next is not a listed
// successor of the current state — a programmer error in the engine,
// not a runtime condition callers should handle.
func (m *machine) advance(next State) {
	for _, candidate := range transitions[m.current] {
		if candidate == next {
			m.current = next
			m.history = append(m.history, next)
			return
		}
	}
	panic(fmt.Sprintf("fingerprint: illegal state transition %s -> %s", m.current, next))
}

func (m *machine) is(s State) bool { return m.current == s }
