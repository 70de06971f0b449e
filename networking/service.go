package networking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/tontinelabs/tontine/types"
)

// Service runs the gossip side of the node: it joins the event topic,
// publishes local events and feeds received events to the handlers.
type Service struct {
	host     host.Host
	pubsub   *pubsub.PubSub
	handlers *MessageHandlers
	logger   *slog.Logger

	eventTopic *pubsub.Topic
	eventSub   *pubsub.Subscription

	// Bootnodes that failed initial connection, to be retried.
	failedBootnodes []peer.AddrInfo

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ServiceConfig holds configuration for the networking service.
type ServiceConfig struct {
	Host     host.Host
	Handlers *MessageHandlers
	// Network selects the gossip topic namespace. Defaults to
	// DefaultNetworkName.
	Network   string
	Bootnodes []peer.AddrInfo
	// EpochDuration sizes the gossip dedup window.
	EpochDuration time.Duration
	Logger        *slog.Logger
}

// NewService creates a new networking service.
func NewService(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	ctx, cancel := context.WithCancel(ctx)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	network := cfg.Network
	if network == "" {
		network = DefaultNetworkName
	}
	seenTTL := 2 * cfg.EpochDuration
	if seenTTL <= 0 {
		seenTTL = 2 * time.Minute
	}

	ps, err := NewGossipSub(ctx, cfg.Host, seenTTL)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create gossipsub: %w", err)
	}

	eventTopic, err := ps.Join(EventTopic(network))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("join event topic: %w", err)
	}

	eventSub, err := eventTopic.Subscribe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe event topic: %w", err)
	}

	svc := &Service{
		host:       cfg.Host,
		pubsub:     ps,
		handlers:   cfg.Handlers,
		logger:     logger,
		eventTopic: eventTopic,
		eventSub:   eventSub,
		ctx:        ctx,
		cancel:     cancel,
	}

	// Connect to bootnodes, track failures for retry.
	for _, pi := range cfg.Bootnodes {
		if err := cfg.Host.Connect(ctx, pi); err != nil {
			logger.Warn("failed to connect to bootnode",
				"peer", pi.ID,
				"error", err,
			)
			svc.failedBootnodes = append(svc.failedBootnodes, pi)
		} else {
			logger.Info("connected to bootnode", "peer", pi.ID)
		}
	}

	return svc, nil
}

func (s *Service) Start() {
	s.wg.Add(1)
	go s.processEvents()

	if len(s.failedBootnodes) > 0 {
		s.wg.Add(1)
		go s.retryBootnodes()
	}

	s.logger.Info("networking service started",
		"peer_id", s.host.ID(),
		"addrs", s.host.Addrs(),
	)
}

// Stop shuts down the networking service.
func (s *Service) Stop() {
	s.cancel()
	s.eventSub.Cancel()
	s.wg.Wait()
	s.host.Close()
	s.logger.Info("networking service stopped")
}

// PublishEvent publishes a ledger event to the network.
func (s *Service) PublishEvent(ctx context.Context, ev *types.Event) error {
	data, err := ev.MarshalSSZ()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	compressed := CompressMessage(data)
	return s.eventTopic.Publish(ctx, compressed)
}

// PeerCount returns the number of connected peers.
func (s *Service) PeerCount() int {
	return len(s.host.Network().Peers())
}

const bootnodeRetryInterval = 30 * time.Second

// retryBootnodes periodically retries connecting to failed bootnodes.
func (s *Service) retryBootnodes() {
	defer s.wg.Done()

	ticker := time.NewTicker(bootnodeRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			var remaining []peer.AddrInfo
			for _, pi := range s.failedBootnodes {
				if err := s.host.Connect(s.ctx, pi); err != nil {
					s.logger.Debug("bootnode reconnect failed", "peer", pi.ID, "error", err)
					remaining = append(remaining, pi)
				} else {
					s.logger.Info("reconnected to bootnode", "peer", pi.ID)
				}
			}
			s.failedBootnodes = remaining
			if len(s.failedBootnodes) == 0 {
				s.logger.Debug("all bootnodes connected, stopping retry")
				return
			}
		}
	}
}

// processEvents handles incoming event messages.
func (s *Service) processEvents() {
	defer s.wg.Done()

	for {
		msg, err := s.eventSub.Next(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil {
				return // context cancelled
			}
			s.logger.Error("event subscription error", "error", err)
			continue
		}

		// Skip self-published messages
		if msg.ReceivedFrom == s.host.ID() {
			continue
		}

		if s.handlers != nil {
			if err := s.handlers.HandleEventMessage(s.ctx, msg.Data, msg.ReceivedFrom); err != nil {
				s.logger.Debug("handle event error", "error", err)
			}
		}
	}
}
