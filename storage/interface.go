package storage

import "github.com/tontinelabs/tontine/types"

// AgentEntry pairs an agent-list index with the address registered at it.
type AgentEntry struct {
	Index   uint64
	Address types.Address
}

// Store persists the ledger header, the append-only agent list and the
// per-address lifecycle records. Agents must be appended in index order with
// no gaps; Agents returns them in that order.
type Store interface {
	Header() (types.Header, bool, error)
	PutHeader(head types.Header) error
	Agents() ([]types.Address, error)
	AppendAgent(index uint64, addr types.Address) error
	Record(addr types.Address) (types.Participant, bool, error)
	PutRecord(rec types.Participant) error
	// PutBatch persists a header together with records and agent-list
	// entries atomically: either everything lands or nothing does. The
	// header counters stay consistent with the records across a crash.
	PutBatch(head types.Header, records []types.Participant, agents []AgentEntry) error
	Close() error
}
