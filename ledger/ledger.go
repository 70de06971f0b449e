// Package ledger implements the survival ledger engine: the per-participant
// lifecycle state machine and the age-weighted O(1) reward accumulator.
//
// Participants pay a fixed fee per epoch to stay registered. Missing the
// one-epoch grace window makes a participant killable by anyone; the killed
// participant's lifetime pool contribution is redistributed to survivors in
// proportion to how long each has survived.
//
// Every operation executes as one serialized, all-or-nothing unit: either all
// effects commit, or the state is left untouched. Effects are always fully
// committed before any bank transfer is issued, so a transfer that calls back
// into the ledger observes consistent state.
package ledger

import (
	"fmt"
	"sync"

	"github.com/tontinelabs/tontine/bank"
	"github.com/tontinelabs/tontine/clock"
	"github.com/tontinelabs/tontine/identity"
	"github.com/tontinelabs/tontine/types"
)

// EventSink receives observable ledger events after each successful
// operation. The sink runs on the caller's goroutine while the ledger lock is
// held; it must not call back into the ledger.
type EventSink func(types.Event)

// Config holds everything needed to construct a Ledger.
type Config struct {
	Params   Params
	Bank     bank.Bank
	Resolver identity.Resolver
	// Clock overrides the epoch clock derived from Params (for testing).
	Clock *clock.EpochClock
	// Events, if set, receives every observable event.
	Events EventSink
}

// Ledger is one instance of the survival ledger. It owns all mutable state
// exclusively; multiple ledgers never share anything, so tests can run many
// side by side.
type Ledger struct {
	mu sync.RWMutex

	params   Params
	clock    *clock.EpochClock
	bank     bank.Bank
	resolver identity.Resolver
	sink     EventSink

	head types.Header
	// agents is the append-only list of every address that has ever
	// registered, in first-registration order. records maps each of those
	// addresses to its single, never-deleted lifecycle record, and
	// agentIndex maps each bound agent id back to its address. The three
	// stay in sync by only ever appending.
	agents     []types.Address
	records    map[types.Address]*types.Participant
	agentIndex map[types.AgentID]types.Address
}

// New creates an empty ledger from validated parameters.
func New(cfg Config) (*Ledger, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("validate params: %w", err)
	}
	if cfg.Bank == nil {
		return nil, fmt.Errorf("bank is required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("identity resolver is required")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New(cfg.Params.GenesisTime, cfg.Params.EpochDuration)
	}

	return &Ledger{
		params:     cfg.Params,
		clock:      c,
		bank:       cfg.Bank,
		resolver:   cfg.Resolver,
		sink:       cfg.Events,
		head:       types.Header{FeeRecipient: cfg.Params.FeeRecipient},
		records:    make(map[types.Address]*types.Participant),
		agentIndex: make(map[types.AgentID]types.Address),
	}, nil
}

// Restore rebuilds a ledger from persisted state. The record list must be in
// first-registration order and consistent with the header counters.
func Restore(cfg Config, head types.Header, records []types.Participant) (*Ledger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if head.Registrations < head.DeadCount+head.AliveCount {
		return nil, fmt.Errorf("header counters inconsistent: %d registrations, %d alive, %d dead",
			head.Registrations, head.AliveCount, head.DeadCount)
	}

	var alive, livingAge uint64
	for i := range records {
		rec := records[i]
		if rec.BirthEpoch == 0 {
			return nil, fmt.Errorf("record %d has no birth epoch", i)
		}
		if _, ok := l.records[rec.Address]; ok {
			return nil, fmt.Errorf("duplicate record for %s", rec.Address.Short())
		}
		cp := rec
		l.records[rec.Address] = &cp
		l.agents = append(l.agents, rec.Address)
		l.agentIndex[rec.Agent] = rec.Address
		if rec.Alive {
			alive++
			livingAge += rec.Age()
		}
	}
	if alive != head.AliveCount || livingAge != head.LivingAge {
		return nil, fmt.Errorf("records disagree with header: alive %d/%d, living age %d/%d",
			alive, head.AliveCount, livingAge, head.LivingAge)
	}

	l.head = head
	return l, nil
}

// Params returns the engine parameters.
func (l *Ledger) Params() Params {
	return l.params
}

// CurrentEpoch returns the epoch derived from the ledger's clock.
func (l *Ledger) CurrentEpoch() types.Epoch {
	return l.clock.CurrentEpoch()
}

// Head returns a copy of the global ledger header.
func (l *Ledger) Head() types.Header {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.head
}

// AgentCount returns how many addresses have ever registered.
func (l *Ledger) AgentCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.agents))
}

// Record returns a copy of the lifecycle record for an address.
func (l *Ledger) Record(addr types.Address) (types.Participant, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[addr]
	if !ok {
		return types.Participant{}, false
	}
	return *rec, true
}

func (l *Ledger) emit(ev types.Event) {
	if l.sink != nil {
		ev.AliveCount = l.head.AliveCount
		ev.LivingAge = l.head.LivingAge
		l.sink(ev)
	}
}

// preimage captures the state touched by one operation so a failed bank
// transfer can undo an already-committed mutation.
type preimage struct {
	head    types.Header
	rec     types.Participant
	hasRec  bool
	created bool
}

func (l *Ledger) capture(addr types.Address) preimage {
	pre := preimage{head: l.head}
	if rec, ok := l.records[addr]; ok {
		pre.rec = *rec
		pre.hasRec = true
	}
	return pre
}

func (l *Ledger) rollback(addr types.Address, pre preimage) {
	l.head = pre.head
	if pre.created {
		rec := l.records[addr]
		delete(l.agentIndex, rec.Agent)
		delete(l.records, addr)
		l.agents = l.agents[:len(l.agents)-1]
		return
	}
	if pre.hasRec {
		*l.records[addr] = pre.rec
	}
}
