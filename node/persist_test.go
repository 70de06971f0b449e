package node

import (
	"io"
	"log/slog"
	"testing"
	"time"

	bankmem "github.com/tontinelabs/tontine/bank/memory"
	"github.com/tontinelabs/tontine/clock"
	idmem "github.com/tontinelabs/tontine/identity/memory"
	"github.com/tontinelabs/tontine/ledger"
	storagemem "github.com/tontinelabs/tontine/storage/memory"
	"github.com/tontinelabs/tontine/types"
)

type persistEnv struct {
	node     *Node
	ledger   *ledger.Ledger
	bank     *bankmem.Bank
	registry *idmem.Registry
	cfg      ledger.Config
	now      int64

	genesisTime   uint64
	epochDuration uint64
}

func setupPersistEnv(t *testing.T, buffer int) *persistEnv {
	t.Helper()

	env := &persistEnv{
		bank:          bankmem.New(),
		registry:      idmem.New(),
		genesisTime:   1000,
		epochDuration: 10,
	}
	env.now = int64(env.genesisTime)

	params := ledger.Params{
		GenesisTime:   env.genesisTime,
		EpochDuration: env.epochDuration,
		EpochFee:      1000,
		FeeShareBps:   1000,
	}
	params.FeeRecipient[0] = 0xFE

	c := clock.NewWithTimeFunc(params.GenesisTime, params.EpochDuration, func() time.Time {
		return time.Unix(env.now, 0)
	})

	n := &Node{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		events: make(chan types.Event, buffer),
		store:  storagemem.New(),
	}
	env.node = n

	env.cfg = ledger.Config{
		Params:   params,
		Bank:     env.bank,
		Resolver: env.registry,
		Clock:    c,
		Events:   n.sinkEvent,
	}
	l, err := ledger.New(env.cfg)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	n.ledger = l
	env.ledger = l
	return env
}

func (env *persistEnv) setEpoch(e types.Epoch) {
	env.now = int64(env.genesisTime + (uint64(e)-1)*env.epochDuration)
}

func (env *persistEnv) join(t *testing.T, b byte) {
	t.Helper()
	var addr types.Address
	var agent types.AgentID
	addr[0] = b
	agent[0] = b
	if err := env.registry.Bind(agent, addr); err != nil {
		t.Fatalf("bind: %v", err)
	}
	env.bank.Mint(addr, 100_000)
	if err := env.ledger.Register(addr, agent); err != nil {
		t.Fatalf("register: %v", err)
	}
}

// drainEvents runs the event loop's persistence path over everything queued.
func (env *persistEnv) drainEvents() {
	for {
		select {
		case ev := <-env.node.events:
			if !env.node.dirty.Load() {
				env.node.persistEvent(ev)
			}
		default:
			return
		}
	}
}

// restoreFromStore rebuilds a ledger from what the node persisted.
func (env *persistEnv) restoreFromStore(t *testing.T) *ledger.Ledger {
	t.Helper()
	store := env.node.store

	head, found, err := store.Header()
	if err != nil || !found {
		t.Fatalf("stored header: found=%v err=%v", found, err)
	}
	agents, err := store.Agents()
	if err != nil {
		t.Fatalf("stored agents: %v", err)
	}
	records := make([]types.Participant, 0, len(agents))
	for i, addr := range agents {
		rec, ok, err := store.Record(addr)
		if err != nil || !ok {
			t.Fatalf("stored record %d: ok=%v err=%v", i, ok, err)
		}
		records = append(records, rec)
	}

	restored, err := ledger.Restore(env.cfg, head, records)
	if err != nil {
		t.Fatalf("restore from store: %v", err)
	}
	return restored
}

func TestPersistEvent_WriteThroughSurvivesRestore(t *testing.T) {
	env := setupPersistEnv(t, 8)

	env.join(t, 1)
	env.join(t, 2)
	env.setEpoch(2)
	if err := env.ledger.Heartbeat(testAddr(1)); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	env.drainEvents()

	if env.node.dirty.Load() {
		t.Fatal("write-through marked the store dirty")
	}

	restored := env.restoreFromStore(t)
	if restored.Head() != env.ledger.Head() {
		t.Errorf("restored head %+v, want %+v", restored.Head(), env.ledger.Head())
	}
	rec, ok := restored.Record(testAddr(1))
	if !ok || rec.LastEpoch != 2 {
		t.Errorf("restored record: %+v ok=%v", rec, ok)
	}
}

func TestResync_RepairsAfterDroppedEvent(t *testing.T) {
	env := setupPersistEnv(t, 1)

	// The second registration overflows the one-slot buffer; its event is
	// lost but the node must remember the store has fallen behind.
	env.join(t, 1)
	env.join(t, 2)

	if !env.node.dirty.Load() {
		t.Fatal("dropped event did not mark the store dirty")
	}
	env.drainEvents()

	if !env.node.dirty.CompareAndSwap(true, false) {
		t.Fatal("dirty flag cleared without a resync")
	}
	if err := env.node.resync(); err != nil {
		t.Fatalf("resync: %v", err)
	}
	if env.node.persistedAgents != 2 {
		t.Errorf("persistedAgents = %d, want 2", env.node.persistedAgents)
	}

	restored := env.restoreFromStore(t)
	head := restored.Head()
	if head.Registrations != 2 || head.AliveCount != 2 {
		t.Errorf("restored counters: %+v", head)
	}
	if _, ok := restored.Record(testAddr(2)); !ok {
		t.Error("dropped participant missing after resync")
	}
}
