// Package party defines the identifiers used to address participants in
// the threshold fingerprinting protocol.
package party

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

// ID identifies a single agent. It doubles as the agent's Shamir share
// index once converted with Scalar; IDs must therefore be non-zero
// decimal strings in share-bearing deployments ("1".."n").
type ID string

// Validate reports whether id is a well-formed, non-zero decimal share
// index. Configuration loading calls this once per agent ID so a
// malformed value is reported as a configuration error at load time
// rather than surfacing later as a panic from Scalar.
func (id ID) Validate() error {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return fmt.Errorf("party: ID %q is not a valid share index: %w", string(id), err)
	}
	if n == 0 {
		return fmt.Errorf("party: ID %q resolves to the zero index", string(id))
	}
	return nil
}

// Scalar converts the ID into a field element, interpreting it as the
// party's Shamir share index i. Panics on a malformed ID since party IDs
// are validated once at configuration load time (via Validate), never
// per-request.
func (id ID) Scalar() curve.Scalar {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("party: ID %q is not a valid share index: %v", string(id), err))
	}
	if n == 0 {
		panic(fmt.Sprintf("party: ID %q resolves to the zero index", string(id)))
	}
	return curve.NewScalarFromUint64(n)
}

// IDSlice is a sortable, searchable collection of party IDs.
type IDSlice []ID

func (s IDSlice) Len() int           { return len(s) }
func (s IDSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s IDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Sorted returns a sorted copy of the slice.
func (s IDSlice) Sorted() IDSlice {
	out := make(IDSlice, len(s))
	copy(out, s)
	sort.Sort(out)
	return out
}

// Contains reports whether id is present in the slice.
func (s IDSlice) Contains(id ID) bool {
	for _, x := range s {
		if x == id {
			return true
		}
	}
	return false
}
