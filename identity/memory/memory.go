// Package memory is an in-memory identity registry for tests and local networks.
package memory

import (
	"errors"
	"sync"

	"github.com/tontinelabs/tontine/types"
)

var ErrAlreadyBound = errors.New("agent id already bound")

// Registry is an in-memory implementation of identity.Resolver.
type Registry struct {
	mu     sync.RWMutex
	owners map[types.AgentID]types.Address
}

// New creates a new in-memory registry.
func New() *Registry {
	return &Registry{
		owners: make(map[types.AgentID]types.Address),
	}
}

// Bind records addr as the controller of agent. Binding is first-come,
// first-served and immutable.
func (r *Registry) Bind(agent types.AgentID, addr types.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[agent]; ok {
		return ErrAlreadyBound
	}
	r.owners[agent] = addr
	return nil
}

func (r *Registry) Owner(agent types.AgentID) (types.Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addr, ok := r.owners[agent]
	return addr, ok
}
