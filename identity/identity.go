// Package identity defines the identity-binding boundary of the ledger engine.
//
// The engine consults the resolver only during registration, to verify that
// the caller controls the agent identity it claims.
package identity

import "github.com/tontinelabs/tontine/types"

// Resolver maps an external agent identity to the address that controls it.
type Resolver interface {
	// Owner returns the controlling address for an agent id, and whether
	// the id is known at all.
	Owner(agent types.AgentID) (types.Address, bool)
}
