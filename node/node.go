// Package node wires the ledger engine, storage, and networking into one
// runnable process.
package node

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/tontinelabs/tontine/internal/genesis"
	"github.com/tontinelabs/tontine/ledger"
	"github.com/tontinelabs/tontine/networking"
	"github.com/tontinelabs/tontine/networking/mirror"
	"github.com/tontinelabs/tontine/networking/reqresp"
	"github.com/tontinelabs/tontine/storage"
	storagemem "github.com/tontinelabs/tontine/storage/memory"
	"github.com/tontinelabs/tontine/storage/pebbledb"
	"github.com/tontinelabs/tontine/types"
)

// eventBuffer sizes the channel between the ledger's event sink and the
// node's persistence loop. The sink must never block under the ledger lock.
const eventBuffer = 256

// reconcileInterval bounds how long a missed event can leave the store
// behind the engine before the event loop rewrites the full state.
const reconcileInterval = 5 * time.Second

type Node struct {
	config *Config
	ledger *ledger.Ledger
	store  storage.Store
	net    *networking.Service
	mirror *mirror.Mirror
	duties *Duties
	logger *slog.Logger

	events chan types.Event
	// dirty is set when an event could not be enqueued; the event loop
	// answers with a full state rewrite instead of trusting write-through.
	dirty atomic.Bool
	// persistedAgents counts how many agent-list entries have been written
	// through to the store. Only the event loop touches it.
	persistedAgents uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Config struct {
	Genesis *genesis.GenesisConfig
	// Network selects the gossip topic namespace.
	Network     string
	ListenAddrs []string
	Bootnodes   []string
	// DataDir is the pebble database directory. Empty runs in-memory.
	DataDir string
	// Mirror runs a read-only replica with no local ledger.
	Mirror bool
	// Reap enables the killable sweep at each epoch boundary.
	Reap bool
	// Keepers are heartbeated automatically every epoch.
	Keepers []types.Address
	Logger  *slog.Logger
}

// New creates a new node with the given configuration.
func New(ctx context.Context, cfg *Config) (*Node, error) {
	ctx, cancel := context.WithCancel(ctx)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Genesis == nil {
		cancel()
		return nil, fmt.Errorf("genesis config is required")
	}

	node := &Node{
		config: cfg,
		logger: logger,
		events: make(chan types.Event, eventBuffer),
		ctx:    ctx,
		cancel: cancel,
	}

	if !cfg.Mirror {
		if err := node.openLedger(); err != nil {
			cancel()
			return nil, err
		}
	}

	host, err := networking.NewHost(ctx, networking.HostConfig{
		ListenAddrs: cfg.ListenAddrs,
	})
	if err != nil {
		cancel()
		node.closeStore()
		return nil, fmt.Errorf("create host: %w", err)
	}

	handlers := &networking.MessageHandlers{
		OnEvent: node.handleEvent,
	}

	netSvc, err := networking.NewService(ctx, networking.ServiceConfig{
		Host:          host,
		Handlers:      handlers,
		Network:       cfg.Network,
		Bootnodes:     networking.ParseBootnodes(cfg.Bootnodes),
		EpochDuration: time.Duration(cfg.Genesis.EpochDuration) * time.Second,
		Logger:        logger,
	})
	if err != nil {
		cancel()
		host.Close()
		node.closeStore()
		return nil, fmt.Errorf("create networking service: %w", err)
	}
	node.net = netSvc

	if cfg.Mirror {
		// Mirrors only dial out; they serve no protocols of their own.
		streamHandler := reqresp.NewStreamHandler(host, nil)
		node.mirror = mirror.New(ctx, mirror.Config{
			Host:          host,
			StreamHandler: streamHandler,
			Logger:        logger,
		})
	} else {
		reqrespHandler := reqresp.NewHandler(node.ledger)
		streamHandler := reqresp.NewStreamHandler(host, reqrespHandler)
		streamHandler.RegisterProtocols()

		node.duties = &Duties{
			Ledger:  node.ledger,
			Keepers: cfg.Keepers,
			Reap:    cfg.Reap,
			Logger:  logger,
		}
	}

	return node, nil
}

// openLedger opens the store and builds the ledger, restoring persisted
// state when the store has any.
func (n *Node) openLedger() error {
	cfg := n.config

	var store storage.Store
	var err error
	if cfg.DataDir != "" {
		store, err = pebbledb.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
	} else {
		store = storagemem.New()
	}
	n.store = store

	bank, registry, err := cfg.Genesis.Bootstrap()
	if err != nil {
		return fmt.Errorf("bootstrap genesis: %w", err)
	}

	ledgerCfg := ledger.Config{
		Params:   cfg.Genesis.Params(),
		Bank:     bank,
		Resolver: registry,
		Events:   n.sinkEvent,
	}

	head, found, err := store.Header()
	if err != nil {
		return fmt.Errorf("load header: %w", err)
	}
	if !found {
		l, err := ledger.New(ledgerCfg)
		if err != nil {
			return fmt.Errorf("create ledger: %w", err)
		}
		n.ledger = l
		return nil
	}

	agents, err := store.Agents()
	if err != nil {
		return fmt.Errorf("load agents: %w", err)
	}
	records := make([]types.Participant, 0, len(agents))
	for i, addr := range agents {
		rec, ok, err := store.Record(addr)
		if err != nil {
			return fmt.Errorf("load record %d: %w", i, err)
		}
		if !ok {
			return fmt.Errorf("missing record for agent %d (%s)", i, addr.Short())
		}
		records = append(records, rec)
	}

	l, err := ledger.Restore(ledgerCfg, head, records)
	if err != nil {
		return fmt.Errorf("restore ledger: %w", err)
	}
	n.ledger = l
	n.persistedAgents = uint64(len(agents))

	n.logger.Info("ledger restored",
		"registrations", head.Registrations,
		"alive", head.AliveCount,
	)
	return nil
}

func (n *Node) closeStore() {
	if n.store != nil {
		if err := n.store.Close(); err != nil {
			n.logger.Warn("closing store", "error", err)
		}
	}
}

// Start begins node operation.
func (n *Node) Start() {
	n.net.Start()
	if n.mirror != nil {
		n.mirror.Start()
	}

	if n.ledger != nil {
		n.wg.Add(2)
		go n.eventLoop()
		go n.epochTicker()
	}

	n.logger.Info("node started",
		"genesis_time", n.config.Genesis.GenesisTime,
		"epoch_duration", n.config.Genesis.EpochDuration,
		"mirror", n.config.Mirror,
	)
}

// Stop gracefully shuts down the node.
func (n *Node) Stop() {
	n.cancel()
	n.wg.Wait()
	if n.mirror != nil {
		n.mirror.Stop()
	}
	n.net.Stop()
	n.closeStore()
	n.logger.Info("node stopped")
}

// Ledger exposes the engine for local operations. Nil in mirror mode.
func (n *Node) Ledger() *ledger.Ledger {
	return n.ledger
}

// Mirror exposes the replica. Nil unless running in mirror mode.
func (n *Node) Mirror() *mirror.Mirror {
	return n.mirror
}

// CurrentEpoch returns the node's view of the current epoch.
func (n *Node) CurrentEpoch() types.Epoch {
	if n.ledger != nil {
		return n.ledger.CurrentEpoch()
	}
	if n.mirror != nil {
		return n.mirror.Epoch()
	}
	return 0
}

// PeerCount returns the number of connected peers.
func (n *Node) PeerCount() int {
	return n.net.PeerCount()
}

// sinkEvent runs under the ledger lock; it must only hand the event off.
// A full buffer marks the store dirty instead of losing the update: the
// event loop then rewrites the full state rather than trusting write-
// through.
func (n *Node) sinkEvent(ev types.Event) {
	select {
	case n.events <- ev:
	default:
		n.dirty.Store(true)
		n.logger.Warn("event buffer full, scheduling full resync", "kind", ev.Kind)
	}
}

// eventLoop persists and publishes every ledger event in order, and
// reconciles the store whenever write-through missed an event.
func (n *Node) eventLoop() {
	defer n.wg.Done()

	ticker := time.NewTicker(reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.ctx.Done():
			return
		case ev := <-n.events:
			if !n.dirty.Load() {
				n.persistEvent(ev)
			}

			if err := n.net.PublishEvent(n.ctx, &ev); err != nil {
				n.logger.Debug("publish event failed", "kind", ev.Kind, "error", err)
			}
		case <-ticker.C:
		}

		if n.dirty.CompareAndSwap(true, false) {
			if err := n.resync(); err != nil {
				n.logger.Error("store resync failed", "error", err)
				n.dirty.Store(true)
			}
		}
	}
}

// persistEvent writes through the state the event touched in one atomic
// batch: the header, the subject's record, and any new agent-list entries.
func (n *Node) persistEvent(ev types.Event) {
	var records []types.Participant
	if rec, ok := n.ledger.Record(ev.Subject); ok {
		records = append(records, rec)
	}

	// A born event may have grown the agent list.
	var agents []storage.AgentEntry
	if ev.Kind == types.EventBorn {
		count := n.ledger.AgentCount()
		for i := n.persistedAgents; i < count; i++ {
			snaps, err := n.ledger.SnapshotRange(i, i)
			if err != nil {
				n.logger.Error("read agent for persistence failed", "index", i, "error", err)
				n.dirty.Store(true)
				return
			}
			agents = append(agents, storage.AgentEntry{Index: i, Address: snaps[0].Address})
		}
	}

	if err := n.store.PutBatch(n.ledger.Head(), records, agents); err != nil {
		n.logger.Error("persist event failed", "kind", ev.Kind, "error", err)
		n.dirty.Store(true)
		return
	}
	n.persistedAgents += uint64(len(agents))
}

// resync rewrites the complete engine state into the store, page by page.
// Once the event channel drains the store converges with the engine even
// after dropped events or failed writes.
func (n *Node) resync() error {
	head := n.ledger.Head()
	count := n.ledger.AgentCount()
	if count == 0 {
		return n.store.PutBatch(head, nil, nil)
	}

	for start := uint64(0); start < count; start += reqresp.MaxRequestSnapshots {
		end := start + reqresp.MaxRequestSnapshots - 1
		if end >= count {
			end = count - 1
		}
		snaps, err := n.ledger.SnapshotRange(start, end)
		if err != nil {
			return fmt.Errorf("read snapshots [%d, %d]: %w", start, end, err)
		}

		records := make([]types.Participant, 0, len(snaps))
		agents := make([]storage.AgentEntry, 0, len(snaps))
		for _, snap := range snaps {
			rec, ok := n.ledger.Record(snap.Address)
			if !ok {
				return fmt.Errorf("missing record for agent %d", snap.Index)
			}
			records = append(records, rec)
			agents = append(agents, storage.AgentEntry{Index: snap.Index, Address: snap.Address})
		}
		if err := n.store.PutBatch(n.ledger.Head(), records, agents); err != nil {
			return fmt.Errorf("write page [%d, %d]: %w", start, end, err)
		}
	}

	n.persistedAgents = n.ledger.AgentCount()
	n.logger.Info("store resynced", "registrations", n.persistedAgents)
	return nil
}

// handleEvent processes an event received from gossip. Full nodes execute
// their own transitions, so remote events are advisory; mirrors use them as
// a hint to resync.
func (n *Node) handleEvent(ctx context.Context, ev *types.Event, from peer.ID) error {
	n.logger.Debug("event received",
		"kind", ev.Kind,
		"epoch", ev.Epoch,
		"subject", ev.Subject.Short(),
		"from", from,
	)

	if n.mirror != nil {
		n.mirror.Poke()
	}
	return nil
}

// epochTicker watches for epoch boundaries and triggers duties.
func (n *Node) epochTicker() {
	defer n.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastEpoch := n.ledger.CurrentEpoch()

	for {
		select {
		case <-n.ctx.Done():
			return
		case <-ticker.C:
			epoch := n.ledger.CurrentEpoch()
			if epoch == lastEpoch {
				continue
			}
			lastEpoch = epoch

			n.logger.Debug("epoch",
				"epoch", epoch,
				"alive", n.ledger.Head().AliveCount,
				"peers", n.PeerCount(),
			)

			if n.duties != nil {
				n.duties.OnEpoch(n.ctx, epoch)
			}
		}
	}
}
