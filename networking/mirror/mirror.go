// Package mirror implements the observer synchronization protocol.
//
// A mirror holds a read-only replica of a peer ledger's snapshot list. When
// the Status handshake reveals a peer with more registrations than the local
// replica, the mirror pages through SnapshotsByRange requests and swaps in
// the fresh copy. Mirrors never execute transitions themselves.
//
// Sync requests use exponential backoff retry (1s, 2s, 4s, max 3 retries) to
// handle transient stream failures gracefully.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/tontinelabs/tontine/networking/reqresp"
	"github.com/tontinelabs/tontine/types"
)

const (
	reqrespTimeout = 30 * time.Second
	maxSyncRetries = 3
	baseRetryDelay = 1 * time.Second
)

var errNoPeers = errors.New("no peers with known status")

type SyncState int

const (
	SyncStateIdle SyncState = iota
	SyncStateSyncing
)

// Mirror tracks peer statuses and keeps a local snapshot replica up to date.
type Mirror struct {
	host          host.Host
	streamHandler *reqresp.StreamHandler
	logger        *slog.Logger

	mu         sync.RWMutex
	peerStatus map[peer.ID]*reqresp.Status
	state      SyncState
	snapshots  []types.Snapshot
	epoch      types.Epoch

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds mirror configuration.
type Config struct {
	Host          host.Host
	StreamHandler *reqresp.StreamHandler
	Logger        *slog.Logger
}

// New creates a new mirror.
func New(ctx context.Context, cfg Config) *Mirror {
	ctx, cancel := context.WithCancel(ctx)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Mirror{
		host:          cfg.Host,
		streamHandler: cfg.StreamHandler,
		logger:        logger,
		peerStatus:    make(map[peer.ID]*reqresp.Status),
		state:         SyncStateIdle,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start begins the mirror background tasks.
func (m *Mirror) Start() {
	m.host.Network().Notify(&connectionNotifier{mirror: m, logger: m.logger})

	// Check for existing peers (e.g., bootnodes connected before the mirror
	// started).
	for _, peerID := range m.host.Network().Peers() {
		m.logger.Debug("found existing peer, initiating status exchange", "peer", peerID)
		go func(pid peer.ID) {
			ctx, cancel := context.WithTimeout(m.ctx, reqrespTimeout)
			defer cancel()
			if err := m.InitiateStatusExchange(ctx, pid); err != nil {
				m.logger.Warn("status exchange with existing peer failed",
					"peer", pid,
					"error", err,
				)
			}
		}(peerID)
	}

	m.logger.Info("mirror started")
}

// Stop shuts down the mirror.
func (m *Mirror) Stop() {
	m.cancel()
	m.logger.Info("mirror stopped")
}

// Count returns the size of the local replica.
func (m *Mirror) Count() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.snapshots))
}

// Epoch returns the epoch of the last completed sync.
func (m *Mirror) Epoch() types.Epoch {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch
}

// Snapshot returns one replica entry by index.
func (m *Mirror) Snapshot(index uint64) (types.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index >= uint64(len(m.snapshots)) {
		return types.Snapshot{}, false
	}
	return m.snapshots[index], true
}

// Snapshots returns a copy of the full replica.
func (m *Mirror) Snapshots() []types.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make([]types.Snapshot, len(m.snapshots))
	copy(cp, m.snapshots)
	return cp
}

// Killable fetches the currently killable participants from the best-known
// peer. The replica cannot answer this locally: killability depends on the
// remote ledger's clock, not on the last synced page.
func (m *Mirror) Killable() ([]types.Snapshot, error) {
	m.mu.RLock()
	var bestPeer peer.ID
	var bestStatus *reqresp.Status
	for pid, status := range m.peerStatus {
		if bestStatus == nil || status.Registrations > bestStatus.Registrations {
			bestPeer = pid
			bestStatus = status
		}
	}
	m.mu.RUnlock()

	if bestStatus == nil {
		return nil, errNoPeers
	}

	var out []types.Snapshot
	for start := uint64(0); start < bestStatus.Registrations; start += reqresp.MaxRequestSnapshots {
		end := start + reqresp.MaxRequestSnapshots - 1
		if end >= bestStatus.Registrations {
			end = bestStatus.Registrations - 1
		}
		ctx, cancel := context.WithTimeout(m.ctx, reqrespTimeout)
		snaps, err := m.streamHandler.RequestKillableByRange(ctx, bestPeer, start, end)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("killable request [%d, %d]: %w", start, end, err)
		}
		out = append(out, snaps...)
	}
	return out, nil
}

// localStatus summarizes the replica for the handshake. A mirror reports
// what it has replicated, not what the network may have moved on to.
func (m *Mirror) localStatus() *reqresp.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := &reqresp.Status{Epoch: m.epoch}
	for i := range m.snapshots {
		status.Registrations++
		if m.snapshots[i].Alive {
			status.AliveCount++
			status.LivingAge += m.snapshots[i].Age
		} else {
			status.DeadCount++
		}
	}
	return status
}

// InitiateStatusExchange sends our status and processes the peer's response.
func (m *Mirror) InitiateStatusExchange(ctx context.Context, peerID peer.ID) error {
	ourStatus := m.localStatus()

	m.logger.Debug("sending status to peer",
		"peer", peerID,
		"registrations", ourStatus.Registrations,
		"epoch", ourStatus.Epoch,
	)

	peerStatus, err := m.streamHandler.SendStatus(ctx, peerID, ourStatus)
	if err != nil {
		return fmt.Errorf("send status: %w", err)
	}

	return m.processPeerStatus(peerID, peerStatus)
}

// processPeerStatus validates and stores peer status, triggers sync if the
// peer has registrations we have not replicated.
func (m *Mirror) processPeerStatus(peerID peer.ID, peerStatus *reqresp.Status) error {
	m.logger.Debug("received peer status",
		"peer", peerID,
		"peer_registrations", peerStatus.Registrations,
		"peer_epoch", peerStatus.Epoch,
	)

	if err := reqresp.ValidateStatus(peerStatus); err != nil {
		m.logger.Warn("invalid peer status, disconnecting",
			"peer", peerID,
			"error", err,
		)
		m.host.Network().ClosePeer(peerID)
		return err
	}

	m.mu.Lock()
	m.peerStatus[peerID] = peerStatus
	behind := peerStatus.Registrations > uint64(len(m.snapshots)) || peerStatus.Epoch > m.epoch
	m.mu.Unlock()

	if behind {
		m.logger.Info("peer ahead, initiating sync",
			"peer", peerID,
			"peer_registrations", peerStatus.Registrations,
			"local_count", m.Count(),
		)
		go m.syncFromPeer(peerID, peerStatus)
	}

	return nil
}

// syncFromPeer pages through the peer's snapshot list and swaps the replica.
// Dead entries never change, so pages below the current replica size are
// fetched anyway: living entries in them may have heartbeated or died since
// the last sync.
func (m *Mirror) syncFromPeer(peerID peer.ID, peerStatus *reqresp.Status) {
	m.mu.Lock()
	if m.state == SyncStateSyncing {
		m.mu.Unlock()
		return // Already syncing
	}
	m.state = SyncStateSyncing
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.state = SyncStateIdle
		m.mu.Unlock()
	}()

	total := peerStatus.Registrations
	fresh := make([]types.Snapshot, 0, total)

	for start := uint64(0); start < total; start += reqresp.MaxRequestSnapshots {
		end := start + reqresp.MaxRequestSnapshots - 1
		if end >= total {
			end = total - 1
		}

		snaps, err := m.requestRangeWithRetry(peerID, start, end)
		if err != nil {
			m.logger.Warn("snapshot page request failed",
				"peer", peerID,
				"start", start,
				"error", err,
			)
			return
		}

		for i := range snaps {
			if snaps[i].Index != uint64(len(fresh)) {
				m.logger.Warn("snapshot page out of order, aborting sync",
					"peer", peerID,
					"index", snaps[i].Index,
					"expected", len(fresh),
				)
				return
			}
			fresh = append(fresh, snaps[i])
		}
	}

	if uint64(len(fresh)) < total {
		m.logger.Warn("peer returned short snapshot list",
			"peer", peerID,
			"got", len(fresh),
			"want", total,
		)
		return
	}

	m.mu.Lock()
	m.snapshots = fresh
	if peerStatus.Epoch > m.epoch {
		m.epoch = peerStatus.Epoch
	}
	m.mu.Unlock()

	m.logger.Info("replica synced",
		"peer", peerID,
		"count", len(fresh),
		"epoch", peerStatus.Epoch,
	)
}

// requestRangeWithRetry wraps RequestSnapshotsByRange with exponential
// backoff retry. Retries up to maxSyncRetries times with delays of 1s, 2s,
// 4s to ride out transient stream resets.
func (m *Mirror) requestRangeWithRetry(peerID peer.ID, start, end uint64) ([]types.Snapshot, error) {
	var lastErr error
	for attempt := 0; attempt <= maxSyncRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1))
			m.logger.Debug("retrying snapshot request",
				"peer", peerID,
				"attempt", attempt+1,
				"delay", delay,
			)
			select {
			case <-m.ctx.Done():
				return nil, m.ctx.Err()
			case <-time.After(delay):
			}
		}

		ctx, cancel := context.WithTimeout(m.ctx, reqrespTimeout)
		snaps, err := m.streamHandler.RequestSnapshotsByRange(ctx, peerID, start, end)
		cancel()
		if err == nil {
			return snaps, nil
		}
		lastErr = err
		m.logger.Debug("snapshot request failed",
			"peer", peerID,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return nil, fmt.Errorf("after %d retries: %w", maxSyncRetries, lastErr)
}

// Poke triggers a resync from the best-known peer if one is ahead. The node
// calls this when gossip hints at new activity.
func (m *Mirror) Poke() {
	m.mu.RLock()
	var bestPeer peer.ID
	var bestStatus *reqresp.Status
	for pid, status := range m.peerStatus {
		if bestStatus == nil || status.Registrations > bestStatus.Registrations {
			bestPeer = pid
			bestStatus = status
		}
	}
	m.mu.RUnlock()

	if bestStatus == nil {
		return
	}
	go m.syncFromPeer(bestPeer, bestStatus)
}

// RemovePeer removes a peer from tracking.
func (m *Mirror) RemovePeer(peerID peer.ID) {
	m.mu.Lock()
	delete(m.peerStatus, peerID)
	m.mu.Unlock()
}

// connectionNotifier listens for peer connection events.
type connectionNotifier struct {
	mirror *Mirror
	logger *slog.Logger
}

// Listen implements network.Notifiee
func (n *connectionNotifier) Listen(network.Network, multiaddr.Multiaddr) {}

// ListenClose implements network.Notifiee
func (n *connectionNotifier) ListenClose(network.Network, multiaddr.Multiaddr) {}

// Connected is called when a new peer connection is established.
// The dialer sends Status first; the listener responds with its own.
func (n *connectionNotifier) Connected(net network.Network, conn network.Conn) {
	peerID := conn.RemotePeer()

	if conn.Stat().Direction == network.DirOutbound {
		n.logger.Debug("new outbound connection, initiating status exchange", "peer", peerID)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), reqrespTimeout)
			defer cancel()
			if err := n.mirror.InitiateStatusExchange(ctx, peerID); err != nil {
				n.logger.Warn("status exchange failed", "peer", peerID, "error", err)
			}
		}()
	} else {
		n.logger.Debug("new inbound connection", "peer", peerID)
		// The listener waits for the dialer's Status stream.
	}
}

// Disconnected is called when a peer disconnects.
func (n *connectionNotifier) Disconnected(net network.Network, conn network.Conn) {
	peerID := conn.RemotePeer()
	n.logger.Debug("peer disconnected", "peer", peerID)
	n.mirror.RemovePeer(peerID)
}

var _ network.Notifiee = (*connectionNotifier)(nil)
