// Package memory is an in-memory store for tests and throwaway nodes.
package memory

import (
	"fmt"
	"sync"

	"github.com/tontinelabs/tontine/storage"
	"github.com/tontinelabs/tontine/types"
)

// Store is an in-memory implementation of storage.Store.
type Store struct {
	mu      sync.RWMutex
	head    types.Header
	hasHead bool
	agents  []types.Address
	records map[types.Address]types.Participant
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		records: make(map[types.Address]types.Participant),
	}
}

func (m *Store) Header() (types.Header, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.head, m.hasHead, nil
}

func (m *Store) PutHeader(head types.Header) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.head = head
	m.hasHead = true
	return nil
}

func (m *Store) Agents() ([]types.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make([]types.Address, len(m.agents))
	copy(cp, m.agents)
	return cp, nil
}

func (m *Store) AppendAgent(index uint64, addr types.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case index < uint64(len(m.agents)):
		// Re-appending an existing index is a no-op replay.
		if m.agents[index] != addr {
			return fmt.Errorf("agent index %d already holds %s", index, m.agents[index].Short())
		}
		return nil
	case index == uint64(len(m.agents)):
		m.agents = append(m.agents, addr)
		return nil
	default:
		return fmt.Errorf("agent index %d leaves a gap (have %d)", index, len(m.agents))
	}
}

func (m *Store) Record(addr types.Address) (types.Participant, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[addr]
	return rec, ok, nil
}

func (m *Store) PutRecord(rec types.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Address] = rec
	return nil
}

func (m *Store) PutBatch(head types.Header, records []types.Participant, agents []storage.AgentEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate every agent entry before touching anything so a failure
	// leaves the store unchanged.
	next := uint64(len(m.agents))
	for _, e := range agents {
		switch {
		case e.Index < uint64(len(m.agents)):
			if m.agents[e.Index] != e.Address {
				return fmt.Errorf("agent index %d already holds %s", e.Index, m.agents[e.Index].Short())
			}
		case e.Index == next:
			next++
		default:
			return fmt.Errorf("agent index %d leaves a gap (have %d)", e.Index, next)
		}
	}

	for _, e := range agents {
		if e.Index == uint64(len(m.agents)) {
			m.agents = append(m.agents, e.Address)
		}
	}
	for _, rec := range records {
		m.records[rec.Address] = rec
	}
	m.head = head
	m.hasHead = true
	return nil
}

func (m *Store) Close() error {
	return nil
}
