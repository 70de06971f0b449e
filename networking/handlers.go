package networking

import (
	"context"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/tontinelabs/tontine/types"
)

// EventHandler processes incoming ledger events from gossipsub.
type EventHandler func(ctx context.Context, ev *types.Event, from peer.ID) error

// MessageHandlers holds handlers for different message types.
type MessageHandlers struct {
	OnEvent EventHandler
}

// HandleEventMessage decodes and processes an incoming event message.
func (h *MessageHandlers) HandleEventMessage(ctx context.Context, data []byte, from peer.ID) error {
	decoded, err := DecompressMessage(data)
	if err != nil {
		return fmt.Errorf("decompress event: %w", err)
	}

	var ev types.Event
	if err := ev.UnmarshalSSZ(decoded); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if ev.Kind < types.EventBorn || ev.Kind > types.EventFeeRecipientChanged {
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}

	if h.OnEvent != nil {
		return h.OnEvent(ctx, &ev, from)
	}
	return nil
}
